package jira

import (
	"fmt"
	"strings"
)

// BuildJQL composes the search query for a task listing. Filter values are
// quoted so user input cannot escape its clause; labels combine
// conjunctively (every label must match).
func BuildJQL(projectKey string, f TaskFilter) string {
	clauses := []string{fmt.Sprintf("project = %s", quoteJQL(projectKey))}
	if f.Assignee != "" {
		clauses = append(clauses, "assignee = "+quoteJQL(f.Assignee))
	}
	if f.Status != "" {
		clauses = append(clauses, "status = "+quoteJQL(f.Status))
	}
	for _, label := range f.Labels {
		clauses = append(clauses, "labels = "+quoteJQL(label))
	}
	if f.Sprint != "" {
		clauses = append(clauses, "sprint = "+quoteJQL(f.Sprint))
	}
	return strings.Join(clauses, " AND ") + " ORDER BY created DESC"
}

func quoteJQL(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
