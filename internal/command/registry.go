package command

// Descriptor describes one leaf command: the group it belongs to, its action
// name, user-facing help text, and the named options its parser accepts.
// Descriptors are static data; the table below is built once and never
// mutated.
type Descriptor struct {
	Category    string
	Name        string
	Description string
	Usage       string
	Options     []OptionSpec
}

// OptionSpec declares a single named flag on a leaf command.
type OptionSpec struct {
	Name     string
	Usage    string
	Required bool
	Default  string
	Choices  []string
	Multi    bool // flag accepts one or more values
}

// Allows reports whether v is an accepted value for this option.
// Options without a choice set accept any value.
func (o OptionSpec) Allows(v string) bool {
	if len(o.Choices) == 0 {
		return true
	}
	for _, c := range o.Choices {
		if v == c {
			return true
		}
	}
	return false
}

// registry is the full command table. It is the single source of truth for
// building the command tree and for option-level help text.
var registry = []Descriptor{
	{
		Category:    "project",
		Name:        "list",
		Description: "List all Jira projects",
		Usage:       "jtrack project list",
	},
	{
		Category:    "project",
		Name:        "create",
		Description: "Create a new Jira project",
		Usage:       `jtrack project create --name "Project Name" --key PROJ --type software`,
		Options: []OptionSpec{
			{Name: "name", Usage: "Project name (required)", Required: true},
			{Name: "key", Usage: "Project key (required, must be unique)", Required: true},
			{Name: "type", Usage: "Project type (optional, default: software)", Default: "software", Choices: []string{"software", "service"}},
		},
	},
	{
		Category:    "project",
		Name:        "statuses",
		Description: "List available statuses for a Jira project",
		Usage:       "jtrack project statuses [--project PROJECT_KEY]",
		Options: []OptionSpec{
			{Name: "project", Usage: "Project key (optional)"},
		},
	},
	{
		Category:    "task",
		Name:        "create",
		Description: "Create a new Jira task",
		Usage:       `jtrack task create --project PROJ --summary "Task Summary" --type Task`,
		Options: []OptionSpec{
			{Name: "project", Usage: "Project key (required)", Required: true},
			{Name: "summary", Usage: "Task summary (required)", Required: true},
			{Name: "description", Usage: "Task description (optional)"},
			{Name: "type", Usage: "Task type (optional, default: Task)", Default: "Task", Choices: []string{"Task", "Sub-task", "Epic"}},
		},
	},
	{
		Category:    "task",
		Name:        "list",
		Description: "List tasks for a project with optional filters",
		Usage:       "jtrack task list --project KEY [--assignee USER] [--status STATUS] [--labels LABEL1,LABEL2] [--sprint SPRINT]",
		Options: []OptionSpec{
			{Name: "project", Usage: "Project key (required)", Required: true},
			{Name: "assignee", Usage: "Assignee (optional)"},
			{Name: "status", Usage: "Status (optional, use the exact status name from your Jira project)"},
			{Name: "labels", Usage: "Labels (optional, comma-separated or repeated)", Multi: true},
			{Name: "sprint", Usage: "Sprint (optional)"},
		},
	},
}

// All returns every registered descriptor in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Find returns the descriptor for the (category, name) pair.
func Find(category, name string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Category == category && d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
