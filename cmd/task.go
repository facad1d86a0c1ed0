package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jtrack/jtrack/internal/jira"
)

func newTaskCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "task",
		Short: "Manage Jira tasks",
		RunE:  groupHelp,
	}

	c.AddCommand(newLeafCommand("task", "create", runTaskCreate))

	list := newLeafCommand("task", "list", runTaskList)
	list.Flags().Bool("json", false, "output JSON")
	c.AddCommand(list)
	return c
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	projectKey, _ := flags.GetString("project")
	summary, _ := flags.GetString("summary")
	description, _ := flags.GetString("description")
	taskType, _ := flags.GetString("type")

	t, err := connectTracker()
	if err != nil {
		return err
	}

	task, err := t.CreateTask(cmd.Context(), projectKey, summary, description, taskType)
	if err != nil {
		logrus.WithError(err).WithField("project", projectKey).Error("task creation failed")
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Task created successfully:")
	fmt.Fprintf(out, "- Key: %s\n", task.Key)
	fmt.Fprintf(out, "- Summary: %s\n", task.Summary)
	fmt.Fprintf(out, "- Project: %s\n", task.ProjectKey)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	projectKey, _ := flags.GetString("project")
	filter := jira.TaskFilter{}
	filter.Assignee, _ = flags.GetString("assignee")
	filter.Status, _ = flags.GetString("status")
	filter.Labels, _ = flags.GetStringSlice("labels")
	filter.Sprint, _ = flags.GetString("sprint")

	t, err := connectTracker()
	if err != nil {
		return err
	}

	tasks, err := t.ListTasks(cmd.Context(), projectKey, filter)
	if err != nil {
		logrus.WithError(err).WithField("project", projectKey).Error("failed to list tasks")
		var invalidStatus *jira.InvalidStatusError
		if errors.As(err, &invalidStatus) {
			return fmt.Errorf("%w\nRun 'jtrack project statuses --project %s' to see valid statuses",
				err, invalidStatus.ProjectKey)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut, _ := flags.GetBool("json"); jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found matching the specified criteria.")
		return nil
	}

	fmt.Fprintf(out, "Tasks for Project %s:\n", strings.ToUpper(projectKey))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSTATUS\tASSIGNEE\tLABELS\tSUMMARY")
	for _, task := range tasks {
		summary := task.Summary
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			task.Key,
			task.Status,
			task.Assignee,
			strings.Join(task.Labels, ","),
			summary,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d task(s)\n", len(tasks))
	return nil
}
