package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jtrack/jtrack/internal/command"
	"github.com/jtrack/jtrack/internal/config"
	"github.com/jtrack/jtrack/internal/help"
	"github.com/jtrack/jtrack/internal/jira"
)

// tracker is the surface of the remote client adapter the handlers use.
type tracker interface {
	ListProjects(ctx context.Context) ([]jira.Project, error)
	CreateProject(ctx context.Context, name, key, projectType string) (*jira.Project, error)
	GetStatuses(ctx context.Context, projectKey string) ([]jira.Status, error)
	ListTasks(ctx context.Context, projectKey string, filter jira.TaskFilter) ([]jira.Task, error)
	CreateTask(ctx context.Context, projectKey, summary, description, taskType string) (*jira.Task, error)
}

// connectTracker loads configuration and builds the adapter. It is a
// package variable so tests can substitute a fake.
var connectTracker = func() (tracker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cfg.JiraBaseURL, cfg.JiraUsername, cfg.JiraAPIToken), nil
}

// Execute runs one CLI invocation against os.Args.
func Execute() error {
	return dispatch(os.Args[1:], os.Stdout)
}

// dispatch routes raw arguments to exactly one of: the help renderer or a
// single command handler. Help triggers are resolved before formal parsing
// so malformed invocations can still reach help.
func dispatch(args []string, out io.Writer) error {
	if len(args) == 0 {
		help.Render(out, "")
		return nil
	}
	if isHelpTrigger(args[len(args)-1]) {
		help.Render(out, help.ContextKey(args[:len(args)-1]))
		return nil
	}
	if isHelpTrigger(args[0]) {
		help.Render(out, "")
		return nil
	}

	root := newRootCmd()
	root.SetOut(out)
	root.SetArgs(args)
	return root.Execute()
}

func isHelpTrigger(token string) bool {
	switch token {
	case "help", "-h", "--help":
		return true
	}
	return false
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jtrack",
		Short: "Jira command-line client",
		Long:  "jtrack manages Jira projects and tasks from the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			help.Render(cmd.OutOrStdout(), "")
			return nil
		},
	}
	// Silence usage and errors to avoid cluttering output with Cobra defaults
	root.SilenceUsage = true
	root.SilenceErrors = true

	// Route cobra's own help paths through the fixed-context renderer
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		help.Render(cmd.OutOrStdout(), cmd.CommandPath())
	})
	root.SetHelpCommand(&cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		RunE: func(cmd *cobra.Command, args []string) error {
			help.Render(cmd.OutOrStdout(), help.ContextKey(args))
			return nil
		},
	})
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newProjectCmd())
	root.AddCommand(newTaskCmd())
	return root
}

// groupHelp renders scoped help when a group is invoked without an action
// and rejects unknown actions.
func groupHelp(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	help.Render(cmd.OutOrStdout(), cmd.CommandPath())
	return nil
}

// newLeafCommand builds a cobra command from the registry descriptor for
// (category, name). The descriptor is the single source of truth for flags,
// defaults, required marks, and allowed values.
func newLeafCommand(category, name string, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	desc, ok := command.Find(category, name)
	if !ok {
		panic(fmt.Sprintf("command %s %s not registered", category, name))
	}

	c := &cobra.Command{
		Use:   desc.Name,
		Short: desc.Description,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateChoices(cmd, desc)
		},
		RunE: run,
	}
	for _, opt := range desc.Options {
		if opt.Multi {
			c.Flags().StringSlice(opt.Name, nil, opt.Usage)
		} else {
			c.Flags().String(opt.Name, opt.Default, opt.Usage)
		}
		if opt.Required {
			cobra.MarkFlagRequired(c.Flags(), opt.Name)
		}
	}
	return c
}

// validateChoices rejects flag values outside their option's allowed set.
func validateChoices(cmd *cobra.Command, desc command.Descriptor) error {
	for _, opt := range desc.Options {
		if len(opt.Choices) == 0 || opt.Multi {
			continue
		}
		v, err := cmd.Flags().GetString(opt.Name)
		if err != nil {
			return err
		}
		if !opt.Allows(v) {
			return fmt.Errorf("invalid value %q for --%s (allowed: %s)",
				v, opt.Name, strings.Join(opt.Choices, ", "))
		}
	}
	return nil
}
