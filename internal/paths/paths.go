package paths

import (
	"os"
	"path/filepath"
)

func DefaultStateDir() string {
	if x := os.Getenv("XDG_STATE_HOME"); x != "" {
		return filepath.Join(x, "jtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "jtrack")
}

func DefaultLogPath() string { return filepath.Join(DefaultStateDir(), "jtrack.log") }
