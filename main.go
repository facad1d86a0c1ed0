package main

import (
	"fmt"
	"os"

	"github.com/jtrack/jtrack/cmd"
	"github.com/jtrack/jtrack/internal/logging"
	"github.com/jtrack/jtrack/internal/paths"
)

func main() {
	closer, err := logging.Setup(paths.DefaultLogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: diagnostic log unavailable: %v\n", err)
		logging.Discard()
	} else {
		defer closer.Close()
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
