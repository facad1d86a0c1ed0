package jira

// Project is the normalized shape of a Jira project.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Task is the normalized shape of a Jira issue.
type Task struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	ProjectKey  string   `json:"project"`
	Labels      []string `json:"labels,omitempty"`
}

// Status describes one workflow status. IssueType is populated only for
// project-scoped status queries.
type Status struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	IssueType   string `json:"issue_type,omitempty"`
}

// TaskFilter narrows a task listing. Zero-value fields are skipped.
type TaskFilter struct {
	Assignee string
	Status   string
	Labels   []string
	Sprint   string
}

// Wire types for Jira REST responses. These never leave this package;
// results are normalized into the entity shapes above at the adapter
// boundary.

type projectResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type statusResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	StatusCategory struct {
		Name string `json:"name"`
	} `json:"statusCategory"`
}

type issueTypeStatusesResponse struct {
	Name     string           `json:"name"`
	Statuses []statusResponse `json:"statuses"`
}

type issueResponse struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Status      struct {
			Name string `json:"name"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Project struct {
			Key string `json:"key"`
		} `json:"project"`
		Labels []string `json:"labels"`
	} `json:"fields"`
}

type searchResponse struct {
	Issues []issueResponse `json:"issues"`
	Total  int             `json:"total"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
