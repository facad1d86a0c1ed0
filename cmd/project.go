package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jtrack/jtrack/internal/jira"
)

func newProjectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "project",
		Short: "Manage Jira projects",
		RunE:  groupHelp,
	}

	list := newLeafCommand("project", "list", runProjectList)
	list.Flags().Bool("json", false, "output JSON")
	c.AddCommand(list)

	c.AddCommand(newLeafCommand("project", "create", runProjectCreate))
	c.AddCommand(newLeafCommand("project", "statuses", runProjectStatuses))
	return c
}

func runProjectList(cmd *cobra.Command, args []string) error {
	t, err := connectTracker()
	if err != nil {
		return err
	}

	projects, err := t.ListProjects(cmd.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list projects")
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tID")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Key, p.Name, p.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d project(s)\n", len(projects))
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	key, _ := flags.GetString("key")
	projectType, _ := flags.GetString("type")

	t, err := connectTracker()
	if err != nil {
		return err
	}

	project, err := t.CreateProject(cmd.Context(), name, key, projectType)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("project creation failed")
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Project created successfully:")
	fmt.Fprintf(out, "- Key: %s\n", project.Key)
	fmt.Fprintf(out, "- Name: %s\n", project.Name)
	if project.ID != "" {
		fmt.Fprintf(out, "- ID: %s\n", project.ID)
	}
	return nil
}

func runProjectStatuses(cmd *cobra.Command, args []string) error {
	projectKey, _ := cmd.Flags().GetString("project")

	t, err := connectTracker()
	if err != nil {
		return err
	}

	statuses, err := t.GetStatuses(cmd.Context(), projectKey)
	if err != nil {
		logrus.WithError(err).Error("failed to retrieve statuses")
		return err
	}

	out := cmd.OutOrStdout()
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No statuses found")
		return nil
	}

	if projectKey != "" {
		fmt.Fprintf(out, "Statuses for Project %s:\n", strings.ToUpper(projectKey))
	} else {
		fmt.Fprintln(out, "Statuses:")
	}

	// Group by issue type, preserving first-seen order. Global queries have
	// no issue type and print as a single flat list.
	var order []string
	groups := map[string][]jira.Status{}
	for _, s := range statuses {
		if _, ok := groups[s.IssueType]; !ok {
			order = append(order, s.IssueType)
		}
		groups[s.IssueType] = append(groups[s.IssueType], s)
	}

	for _, issueType := range order {
		if issueType != "" {
			fmt.Fprintf(out, "\n%s Issue Type Statuses:\n", issueType)
		}
		for _, s := range groups[issueType] {
			fmt.Fprintf(out, "- %s - %s\n", s.ID, s.Name)
			if s.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", s.Description)
			}
			if s.Category != "" {
				fmt.Fprintf(out, "  Category: %s\n", s.Category)
			}
		}
	}
	return nil
}
