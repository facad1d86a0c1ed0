package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "user@example.com", "api-token")
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatal(err)
	}
}

func TestListProjectsEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []projectResponse{})
	}))

	projects, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("zero projects should not be an error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected empty slice, got %d projects", len(projects))
	}
}

func TestListProjectsNormalization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/project" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			t.Errorf("missing basic auth header")
		}
		writeJSON(t, w, http.StatusOK, []projectResponse{
			{ID: "10001", Key: "DEMO", Name: "Demo Project"},
			{ID: "10002", Key: "OPS", Name: "Operations"},
		})
	}))

	projects, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Key != "DEMO" || projects[0].Name != "Demo Project" || projects[0].ID != "10001" {
		t.Errorf("unexpected first project: %+v", projects[0])
	}
}

func TestCreateProjectUppercasesKey(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Key            string `json:"key"`
			Name           string `json:"name"`
			ProjectTypeKey string `json:"projectTypeKey"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Key != "DEMO" {
			t.Errorf("request key = %q, want DEMO", body.Key)
		}
		if body.ProjectTypeKey != "software" {
			t.Errorf("request projectTypeKey = %q, want software", body.ProjectTypeKey)
		}
		writeJSON(t, w, http.StatusCreated, map[string]string{"id": "10010", "key": body.Key})
	}))

	project, err := c.CreateProject(context.Background(), "Demo", "demo", "software")
	if err != nil {
		t.Fatal(err)
	}
	if project.Key != "DEMO" {
		t.Errorf("project key = %q, want DEMO", project.Key)
	}
	if project.Name != "Demo" {
		t.Errorf("project name = %q, want Demo", project.Name)
	}
	if project.ID != "10010" {
		t.Errorf("project ID = %q, want 10010", project.ID)
	}
}

func TestCreateProjectDuplicateKey(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, errorResponse{
			Errors: map[string]string{"projectKey": "A project with that project key already exists."},
		})
	}))

	_, err := c.CreateProject(context.Background(), "Demo", "demo", "software")
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RemoteError, got %T: %v", err, err)
	}
	if re.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", re.StatusCode)
	}
	if !strings.Contains(re.Message, "already exists") {
		t.Errorf("message should carry the remote reason: %q", re.Message)
	}
}

func TestCreateAndListProjectRoundTrip(t *testing.T) {
	store := map[string]projectResponse{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			var body struct {
				Key  string `json:"key"`
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			store[body.Key] = projectResponse{ID: "20001", Key: body.Key, Name: body.Name}
			writeJSON(t, w, http.StatusCreated, store[body.Key])
		default:
			all := make([]projectResponse, 0, len(store))
			for _, p := range store {
				all = append(all, p)
			}
			writeJSON(t, w, http.StatusOK, all)
		}
	}))

	created, err := c.CreateProject(context.Background(), "Round Trip", "rt", "software")
	if err != nil {
		t.Fatal(err)
	}
	listed, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 project, got %d", len(listed))
	}
	if listed[0].Key != created.Key || listed[0].Name != created.Name {
		t.Errorf("round trip mismatch: created %+v, listed %+v", created, listed[0])
	}
}

func TestGetStatusesGlobal(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, []map[string]interface{}{
			{"id": "1", "name": "To Do", "statusCategory": map[string]string{"name": "To Do"}},
			{"id": "3", "name": "Done", "description": "Work finished", "statusCategory": map[string]string{"name": "Done"}},
		})
	}))

	statuses, err := c.GetStatuses(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if s.IssueType != "" {
			t.Errorf("global status %s should have no issue type, got %q", s.Name, s.IssueType)
		}
	}
	if statuses[1].Description != "Work finished" || statuses[1].Category != "Done" {
		t.Errorf("unexpected status: %+v", statuses[1])
	}
}

func TestGetStatusesForProject(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/project/PROJ/statuses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, []map[string]interface{}{
			{
				"name": "Task",
				"statuses": []map[string]interface{}{
					{"id": "1", "name": "To Do", "statusCategory": map[string]string{"name": "To Do"}},
					{"id": "2", "name": "In Progress", "statusCategory": map[string]string{"name": "In Progress"}},
				},
			},
			{
				"name": "Epic",
				"statuses": []map[string]interface{}{
					{"id": "1", "name": "To Do", "statusCategory": map[string]string{"name": "To Do"}},
				},
			},
		})
	}))

	statuses, err := c.GetStatuses(context.Background(), "proj")
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].IssueType != "Task" || statuses[2].IssueType != "Epic" {
		t.Errorf("statuses should carry their issue type: %+v", statuses)
	}
}

func TestListTasksNormalization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			JQL string `json:"jql"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if !strings.Contains(body.JQL, `project = "PROJ"`) {
			t.Errorf("jql should reference the uppercased project: %s", body.JQL)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"total": 2,
			"issues": []map[string]interface{}{
				{
					"id":  "1",
					"key": "PROJ-1",
					"fields": map[string]interface{}{
						"summary":  "Fix bug",
						"status":   map[string]string{"name": "In Progress"},
						"assignee": map[string]string{"displayName": "Jane Doe"},
						"project":  map[string]string{"key": "PROJ"},
						"labels":   []string{"bug"},
					},
				},
				{
					"id":  "2",
					"key": "PROJ-2",
					"fields": map[string]interface{}{
						"summary": "Write docs",
						"status":  map[string]string{"name": "To Do"},
						"project": map[string]string{"key": "PROJ"},
					},
				},
			},
		})
	}))

	tasks, err := c.ListTasks(context.Background(), "proj", TaskFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Assignee != "Jane Doe" {
		t.Errorf("assignee = %q, want Jane Doe", tasks[0].Assignee)
	}
	if tasks[1].Assignee != "Unassigned" {
		t.Errorf("missing assignee should normalize to Unassigned, got %q", tasks[1].Assignee)
	}
	if tasks[0].ProjectKey != "PROJ" {
		t.Errorf("project key = %q, want PROJ", tasks[0].ProjectKey)
	}
}

func TestListTasksEmptyResultIsSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"total": 0, "issues": []interface{}{}})
	}))

	tasks, err := c.ListTasks(context.Background(), "PROJ", TaskFilter{Assignee: "nobody"})
	if err != nil {
		t.Fatalf("zero results should not be an error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}

func TestListTasksInvalidStatusFilter(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, errorResponse{
			ErrorMessages: []string{"The value 'Bogus' does not exist for the field 'status'."},
		})
	}))

	_, err := c.ListTasks(context.Background(), "proj", TaskFilter{Status: "Bogus"})
	var ise *InvalidStatusError
	if !errors.As(err, &ise) {
		t.Fatalf("expected *InvalidStatusError, got %T: %v", err, err)
	}
	if ise.ProjectKey != "PROJ" || ise.Status != "Bogus" {
		t.Errorf("unexpected error detail: %+v", ise)
	}
}

func TestListTasksUnrelatedRejectionStaysRemoteError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, errorResponse{
			ErrorMessages: []string{"The value 'NOPE' does not exist for the field 'project'."},
		})
	}))

	_, err := c.ListTasks(context.Background(), "nope", TaskFilter{Status: "Done"})
	var ise *InvalidStatusError
	if errors.As(err, &ise) {
		t.Fatalf("project rejection must not map to InvalidStatusError: %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RemoteError, got %T: %v", err, err)
	}
}

func TestCreateTaskDefaultsAndUppercase(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Fields struct {
				Project   map[string]string `json:"project"`
				Summary   string            `json:"summary"`
				IssueType map[string]string `json:"issuetype"`
			} `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Fields.Project["key"] != "PROJ" {
			t.Errorf("project key = %q, want PROJ", body.Fields.Project["key"])
		}
		if body.Fields.IssueType["name"] != "Task" {
			t.Errorf("issue type = %q, want default Task", body.Fields.IssueType["name"])
		}
		writeJSON(t, w, http.StatusCreated, map[string]string{"id": "30001", "key": "PROJ-7"})
	}))

	task, err := c.CreateTask(context.Background(), "proj", "Fix bug", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if task.Key != "PROJ-7" {
		t.Errorf("task key = %q, want PROJ-7", task.Key)
	}
	if task.ProjectKey != "PROJ" {
		t.Errorf("task project key = %q, want PROJ", task.ProjectKey)
	}
	if task.Summary != "Fix bug" {
		t.Errorf("task summary = %q", task.Summary)
	}
}

func TestErrorMessageFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "error messages",
			raw:  `{"errorMessages":["first","second"]}`,
			want: "first; second",
		},
		{
			name: "field errors are sorted",
			raw:  `{"errors":{"projectKey":"taken","projectName":"too long"}}`,
			want: "projectKey: taken; projectName: too long",
		},
		{
			name: "non-json body passes through",
			raw:  "Service Unavailable\n",
			want: "Service Unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.raw)); got != tt.want {
				t.Errorf("errorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
