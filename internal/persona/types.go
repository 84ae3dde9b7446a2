package persona

// Type is the closed classification of the user's stated role.
type Type string

const (
	TypeHR        Type = "hr"
	TypeStudent   Type = "student"
	TypeAnalyst   Type = "analyst"
	TypeDeveloper Type = "developer"
	TypeManager   Type = "manager"
	TypeGeneral   Type = "general"
)

// classificationOrder is the fixed priority order for persona detection.
// The first type whose name or keyword list matches the persona text wins.
var classificationOrder = []Type{TypeHR, TypeStudent, TypeAnalyst, TypeDeveloper, TypeManager}

// typeKeywords maps each persona type to its fixed keyword list. The lists
// double as ranking keywords for sections.
var typeKeywords = map[Type][]string{
	TypeHR: {
		"onboarding", "compliance", "forms", "employee", "hiring", "recruitment",
		"benefits", "payroll", "performance", "policies", "training", "documentation",
		"workflow", "process", "management", "human resources", "staff", "personnel",
	},
	TypeStudent: {
		"study", "exam", "course", "learning", "education", "assignment", "grade",
		"curriculum", "syllabus", "lecture", "tutorial", "research", "academic",
		"knowledge", "concept", "theory", "practical", "skill", "understanding",
	},
	TypeAnalyst: {
		"data", "analysis", "trend", "insight", "metric", "report", "dashboard",
		"visualization", "statistics", "model", "prediction", "pattern", "research",
		"investment", "market", "performance", "roi", "kpi", "business intelligence",
	},
	TypeDeveloper: {
		"code", "programming", "api", "framework", "database", "application",
		"software", "development", "integration", "testing", "deployment",
		"architecture", "design", "implementation", "documentation", "technical",
	},
	TypeManager: {
		"strategy", "planning", "execution", "team", "leadership", "decision",
		"project", "goal", "objective", "budget", "resource", "stakeholder",
		"communication", "coordination", "oversight", "responsibility",
	},
}

// typeSynonyms is the second-pass classification: loose terms that imply a
// persona type when none of the primary keyword lists matched.
var typeSynonyms = map[Type][]string{
	TypeHR:        {"human", "hr", "people", "employee"},
	TypeStudent:   {"student", "learner", "academic"},
	TypeAnalyst:   {"analyst", "data", "research"},
	TypeDeveloper: {"developer", "engineer", "programmer"},
	TypeManager:   {"manager", "director", "supervisor"},
}

// Action is a canonical intent tag extracted from the job description.
type Action string

const (
	ActionCreate    Action = "create"
	ActionManage    Action = "manage"
	ActionAnalyze   Action = "analyze"
	ActionImplement Action = "implement"
	ActionOptimize  Action = "optimize"
)

// actionOrder is the canonical enumeration order used when iterating
// actions, notably for heading template selection.
var actionOrder = []Action{ActionCreate, ActionManage, ActionAnalyze, ActionImplement, ActionOptimize}

// actionSynonyms maps each canonical action to the verbs that imply it.
var actionSynonyms = map[Action][]string{
	ActionCreate:    {"design", "build", "develop", "generate", "make", "construct"},
	ActionManage:    {"organize", "coordinate", "oversee", "control", "administer", "handle"},
	ActionAnalyze:   {"examine", "study", "investigate", "review", "assess", "evaluate"},
	ActionImplement: {"execute", "deploy", "establish", "install", "setup", "configure"},
	ActionOptimize:  {"improve", "enhance", "streamline", "refine", "upgrade", "efficiency"},
}

// verbGroups is the secondary extraction pass: explicit verb groups that
// resolve to the same five canonical actions.
var verbGroups = []struct {
	action Action
	verbs  []string
}{
	{ActionCreate, []string{"create", "make", "build", "develop", "design", "generate"}},
	{ActionManage, []string{"manage", "organize", "coordinate", "oversee", "handle"}},
	{ActionAnalyze, []string{"analyze", "examine", "study", "review", "assess"}},
	{ActionImplement, []string{"implement", "execute", "deploy", "establish"}},
	{ActionOptimize, []string{"optimize", "improve", "enhance", "streamline"}},
}

// contextTrigger adds extra ranking keywords when a substring shows up in
// the job text for a given persona type.
type contextTrigger struct {
	substrings []string
	keywords   []string
}

var contextTriggers = map[Type][]contextTrigger{
	TypeHR: {
		{substrings: []string{"form"}, keywords: []string{"template", "field", "document", "signature", "approval"}},
		{substrings: []string{"onboard"}, keywords: []string{"orientation", "checklist", "welcome", "setup"}},
	},
	TypeStudent: {
		{substrings: []string{"exam", "test"}, keywords: []string{"preparation", "review", "practice", "question"}},
		{substrings: []string{"study"}, keywords: []string{"notes", "summary", "concept", "material"}},
	},
	TypeAnalyst: {
		{substrings: []string{"trend"}, keywords: []string{"pattern", "growth", "decline", "forecast"}},
		{substrings: []string{"data"}, keywords: []string{"dataset", "visualization", "chart", "graph"}},
	},
}
