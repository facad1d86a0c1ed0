package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jtrack/jtrack/internal/limits"
)

// searchMaxResults is the maximum number of issues fetched per listing
const searchMaxResults = 100

// Client is a lightweight Jira REST API client. Each operation performs a
// single synchronous request and normalizes the response into the entity
// types in this package.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	apiToken   string
}

// NewClient creates a new Jira API client
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		apiToken:   apiToken,
	}
}

// doRequest executes an HTTP request with basic authentication. Responses
// with status >= 400 are drained up to limits.ErrorBody and returned as
// *RemoteError.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Basic auth
	auth := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.apiToken))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, limits.ErrorBody))
		resp.Body.Close()
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	return resp, nil
}

// errorMessage extracts human-readable text from a Jira error payload.
func errorMessage(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		parts := append([]string{}, er.ErrorMessages...)
		fields := make([]string, 0, len(er.Errors))
		for field := range er.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, er.Errors[field]))
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) decode(op string, resp *http.Response, limit int64, out interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(io.LimitReader(resp.Body, limit)).Decode(out); err != nil {
		return &RemoteError{Op: op, Message: "failed to decode response: " + err.Error()}
	}
	return nil
}

// ListProjects returns every project visible to the configured user. An
// empty tracker yields an empty slice, not an error.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	const op = "list projects"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/rest/api/2/project", nil)
	if err != nil {
		return nil, err
	}

	var raw []projectResponse
	if err := c.decode(op, resp, limits.JSON, &raw); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, Project{Key: p.Key, Name: p.Name, ID: p.ID})
	}
	logrus.Debugf("retrieved %d projects", len(projects))
	return projects, nil
}

// CreateProject creates a project. The key is uppercased before the call as
// Jira requires uppercase keys.
func (c *Client) CreateProject(ctx context.Context, name, key, projectType string) (*Project, error) {
	const op = "create project"

	if projectType == "" {
		projectType = "software"
	}
	key = strings.ToUpper(key)

	body := map[string]interface{}{
		"key":            key,
		"name":           name,
		"projectTypeKey": projectType,
	}

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/rest/api/2/project", body)
	if err != nil {
		return nil, err
	}

	var raw projectResponse
	if err := c.decode(op, resp, limits.JSON, &raw); err != nil {
		return nil, err
	}

	project := &Project{Key: raw.Key, Name: name, ID: raw.ID}
	if project.Key == "" {
		project.Key = key
	}
	logrus.Infof("created project %s (%s)", name, project.Key)
	return project, nil
}

// GetStatuses returns workflow statuses. With an empty projectKey it returns
// the tracker's global status list; with a project key it returns the
// project's statuses grouped per issue type, each Status carrying its
// IssueType.
func (c *Client) GetStatuses(ctx context.Context, projectKey string) ([]Status, error) {
	const op = "get statuses"

	if projectKey == "" {
		resp, err := c.doRequest(ctx, op, http.MethodGet, "/rest/api/2/status", nil)
		if err != nil {
			return nil, err
		}
		var raw []statusResponse
		if err := c.decode(op, resp, limits.JSON, &raw); err != nil {
			return nil, err
		}
		statuses := make([]Status, 0, len(raw))
		for _, s := range raw {
			statuses = append(statuses, convertStatus(s, ""))
		}
		return statuses, nil
	}

	projectKey = strings.ToUpper(projectKey)
	resp, err := c.doRequest(ctx, op, http.MethodGet, "/rest/api/2/project/"+projectKey+"/statuses", nil)
	if err != nil {
		return nil, err
	}
	var raw []issueTypeStatusesResponse
	if err := c.decode(op, resp, limits.JSON, &raw); err != nil {
		return nil, err
	}

	var statuses []Status
	for _, group := range raw {
		for _, s := range group.Statuses {
			statuses = append(statuses, convertStatus(s, group.Name))
		}
	}
	return statuses, nil
}

func convertStatus(s statusResponse, issueType string) Status {
	return Status{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.StatusCategory.Name,
		IssueType:   issueType,
	}
}

// ListTasks searches the project's issues with the given filter. A rejected
// status filter is reported as *InvalidStatusError so callers can suggest
// the statuses lookup; an empty result set is success.
func (c *Client) ListTasks(ctx context.Context, projectKey string, filter TaskFilter) ([]Task, error) {
	const op = "list tasks"

	projectKey = strings.ToUpper(projectKey)
	jql := BuildJQL(projectKey, filter)
	logrus.Debugf("searching issues: %s", jql)

	body := map[string]interface{}{
		"jql":        jql,
		"maxResults": searchMaxResults,
		"fields":     []string{"summary", "description", "status", "assignee", "project", "labels"},
	}

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/rest/api/2/search", body)
	if err != nil {
		var re *RemoteError
		if filter.Status != "" && errors.As(err, &re) &&
			re.StatusCode == http.StatusBadRequest && mentionsStatusField(re.Message) {
			return nil, &InvalidStatusError{ProjectKey: projectKey, Status: filter.Status}
		}
		return nil, err
	}

	var raw searchResponse
	if err := c.decode(op, resp, limits.Search, &raw); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(raw.Issues))
	for _, issue := range raw.Issues {
		tasks = append(tasks, convertIssue(issue, projectKey))
	}
	logrus.Debugf("retrieved %d tasks for project %s", len(tasks), projectKey)
	return tasks, nil
}

// mentionsStatusField reports whether a Jira search rejection is about the
// status field, e.g. "The value 'Bogus' does not exist for the field
// 'status'."
func mentionsStatusField(message string) bool {
	return strings.Contains(strings.ToLower(message), "field 'status'")
}

func convertIssue(issue issueResponse, projectKey string) Task {
	task := Task{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Description: issue.Fields.Description,
		Status:      issue.Fields.Status.Name,
		Assignee:    "Unassigned",
		ProjectKey:  issue.Fields.Project.Key,
		Labels:      issue.Fields.Labels,
	}
	if issue.Fields.Assignee != nil && issue.Fields.Assignee.DisplayName != "" {
		task.Assignee = issue.Fields.Assignee.DisplayName
	}
	if task.ProjectKey == "" {
		task.ProjectKey = projectKey
	}
	return task
}

// CreateTask creates an issue in the given project. The task type defaults
// to "Task"; the project key is uppercased.
func (c *Client) CreateTask(ctx context.Context, projectKey, summary, description, taskType string) (*Task, error) {
	const op = "create task"

	if taskType == "" {
		taskType = "Task"
	}
	projectKey = strings.ToUpper(projectKey)

	body := map[string]interface{}{
		"fields": map[string]interface{}{
			"project":     map[string]string{"key": projectKey},
			"summary":     summary,
			"description": description,
			"issuetype":   map[string]string{"name": taskType},
		},
	}

	resp, err := c.doRequest(ctx, op, http.MethodPost, "/rest/api/2/issue", body)
	if err != nil {
		return nil, err
	}

	var raw struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := c.decode(op, resp, limits.JSON, &raw); err != nil {
		return nil, err
	}

	logrus.Infof("created task %s in project %s", raw.Key, projectKey)
	return &Task{
		Key:         raw.Key,
		Summary:     summary,
		Description: description,
		ProjectKey:  projectKey,
	}, nil
}
