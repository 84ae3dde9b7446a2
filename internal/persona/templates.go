package persona

// TemplateEntry is one (action -> candidate titles) group. Entries keep the
// fixed table's enumeration order, which the heading adapter depends on.
type TemplateEntry struct {
	Action    Action
	Templates []string
}

// headingTemplates is the fixed template table keyed by persona type. Only
// hr, student and analyst carry curated titles; other types fall through to
// prefix/suffix synthesis.
var headingTemplates = map[Type][]TemplateEntry{
	TypeHR: {
		{Action: ActionCreate, Templates: []string{
			"Onboarding Compliance Forms",
			"Streamlined E-Signature Workflow",
			"Employee Documentation Templates",
			"HR Process Automation",
			"Digital Form Management",
		}},
		{Action: ActionManage, Templates: []string{
			"Employee Lifecycle Management",
			"HR Workflow Optimization",
			"Compliance Tracking System",
			"Personnel Record Management",
			"Policy Administration",
		}},
	},
	TypeStudent: {
		{Action: ActionAnalyze, Templates: []string{
			"Exam-Centric Key Concepts",
			"Simplified Study Guides",
			"Essential Learning Materials",
			"Course Summary Framework",
			"Academic Success Strategies",
			"Critical Concept Analysis",
			"Learning Objective Breakdown",
			"Study Pattern Recognition",
			"Knowledge Gap Assessment",
			"Academic Performance Insights",
		}},
	},
	TypeAnalyst: {
		{Action: ActionAnalyze, Templates: []string{
			"Market Trend Visualizations",
			"R&D Investment Insights",
			"Data-Driven Decision Framework",
			"Performance Analytics Dashboard",
			"Strategic Business Intelligence",
		}},
		{Action: ActionCreate, Templates: []string{
			"Analytical Report Generation",
			"Predictive Model Development",
			"Business Intelligence Solutions",
			"Data Visualization Tools",
			"Insight Generation Framework",
		}},
	},
}

// typePrefixes and typeSuffixes drive the synthesis fallback when no
// template entry qualifies. The first entry of each list is used.
var typePrefixes = map[Type][]string{
	TypeHR:        {"Employee-Focused", "Compliance-Ready", "Workflow-Optimized"},
	TypeStudent:   {"Study-Oriented", "Exam-Focused", "Learning-Centered"},
	TypeAnalyst:   {"Data-Driven", "Insight-Rich", "Analytics-Based"},
	TypeDeveloper: {"Implementation-Ready", "Technical", "Development-Focused"},
	TypeManager:   {"Strategic", "Management-Oriented", "Decision-Supporting"},
}

var typeSuffixes = map[Type][]string{
	TypeHR:        {"for HR Excellence", "in Workplace Management", "for Employee Success"},
	TypeStudent:   {"for Academic Success", "in Learning Context", "for Exam Preparation"},
	TypeAnalyst:   {"for Business Intelligence", "in Data Analysis", "for Strategic Insights"},
	TypeDeveloper: {"for Development Teams", "in Technical Implementation", "for System Design"},
	TypeManager:   {"for Leadership Decisions", "in Strategic Planning", "for Team Management"},
}

// summaryPrefixes provide the persona framing line for refined summaries in
// the subsection analysis output.
var summaryPrefixes = map[Type]map[Action]string{
	TypeHR: {
		ActionCreate: "For HR form creation and management",
		ActionManage: "For employee lifecycle management",
	},
	TypeStudent: {
		ActionAnalyze: "For exam preparation and learning",
	},
	TypeAnalyst: {
		ActionAnalyze: "For data analysis and insights",
		ActionCreate:  "For report and visualization development",
	},
}

var summaryDefaults = map[Type]string{
	TypeHR:      "For HR professionals",
	TypeStudent: "For educational purposes",
	TypeAnalyst: "For analytical work",
}

// SummaryPrefix returns the persona framing for a refined summary, or ""
// when the persona type carries none.
func SummaryPrefix(t Type, actions []Action) string {
	byAction, ok := summaryPrefixes[t]
	if ok {
		for _, a := range actions {
			if p, ok := byAction[a]; ok {
				return p
			}
		}
	}
	return summaryDefaults[t]
}
