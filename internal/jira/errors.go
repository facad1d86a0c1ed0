package jira

import "fmt"

// RemoteError indicates the tracker rejected or could not complete a
// request. It is the only error shape handlers see for hard remote failures;
// transport details stay inside this package.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: jira API error %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// InvalidStatusError indicates a task-list status filter that is not part of
// the target project's workflow. It is reported separately from RemoteError
// so the caller can point the user at the statuses lookup.
type InvalidStatusError struct {
	ProjectKey string
	Status     string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q is not a valid workflow status for project %s", e.Status, e.ProjectKey)
}
