package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/jtrack/jtrack/internal/command"
)

const toolName = "jtrack"

// ContextKey joins the tokens preceding a help trigger into a help context
// string. An empty token list maps to the top-level summary.
func ContextKey(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return toolName + " " + strings.Join(tokens, " ")
}

// Render writes the help block for the given context to w. The known contexts
// are fixed; anything else falls back to the top-level summary. Render is
// pure output and has no failure mode.
func Render(w io.Writer, context string) {
	fmt.Fprintln(w, "jtrack - Jira command-line client")
	fmt.Fprintln(w)

	switch context {
	case toolName:
		fmt.Fprintln(w, "Available Commands:")
		fmt.Fprintln(w, "  project   Manage Jira projects")
		fmt.Fprintln(w, "  task      Manage Jira tasks")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use 'jtrack [command] help' for more information about a command.")
	case toolName + " project":
		fmt.Fprintln(w, "Project Commands:")
		fmt.Fprintln(w, "  list      List all Jira projects")
		fmt.Fprintln(w, "  create    Create a new Jira project")
		fmt.Fprintln(w, "  statuses  List available statuses for a Jira project")
	case toolName + " task":
		fmt.Fprintln(w, "Task Commands:")
		fmt.Fprintln(w, "  create    Create a new Jira task")
		fmt.Fprintln(w, "  list      List tasks for a project")
	default:
		if d, ok := leafFor(context); ok {
			renderLeaf(w, d)
			return
		}
		renderTop(w)
	}
}

// leafFor resolves a "jtrack group action" context to its registry
// descriptor. Partial or unknown contexts do not resolve.
func leafFor(context string) (command.Descriptor, bool) {
	parts := strings.Fields(context)
	if len(parts) != 3 || parts[0] != toolName {
		return command.Descriptor{}, false
	}
	return command.Find(parts[1], parts[2])
}

func renderLeaf(w io.Writer, d command.Descriptor) {
	fmt.Fprintln(w, d.Description)
	if d.Usage != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Usage:")
		fmt.Fprintf(w, "  %s\n", d.Usage)
	}
	if len(d.Options) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		for _, opt := range d.Options {
			fmt.Fprintf(w, "  --%-12s %s\n", opt.Name, opt.Usage)
		}
	}
}

func renderTop(w io.Writer) {
	fmt.Fprintln(w, "Usage: jtrack [command] [subcommand] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  project   Manage Jira projects")
	fmt.Fprintln(w, "  task      Manage Jira tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'jtrack [command] help' for more information about a command.")
}
