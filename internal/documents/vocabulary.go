package documents

type Category string

const (
	Payroll     Category = "payroll"
	Performance Category = "performance"
	Contract    Category = "contract"
	Policy      Category = "policy"
	Training    Category = "training"
	Other       Category = "other"
)

var categories = []Category{Payroll, Performance, Contract, Policy, Training, Other}

// Categories returns the fixed category order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// vocabulary is the keyword list of every category. Keywords are lowercase
// and no keyword is shared between categories.
var vocabulary = map[Category][]string{
	Payroll: {
		"payroll", "salary", "salaries", "payslip", "paycheck", "wage",
		"wages", "bonus", "compensation", "tax", "deductions", "remuneration",
	},
	Performance: {
		"performance", "review", "appraisal", "evaluation", "feedback", "goals",
		"okr", "kpi", "assessment", "rating", "promotion", "objectives",
	},
	Contract: {
		"contract", "agreement", "offer", "nda", "terms", "signed",
		"employment", "amendment", "addendum", "termination", "clause", "hiring",
	},
	Policy: {
		"policy", "handbook", "guidelines", "code", "conduct", "compliance",
		"procedure", "rules", "regulation", "vacation", "leave", "benefits",
	},
	Training: {
		"training", "course", "onboarding", "workshop", "certificate", "certification",
		"learning", "curriculum", "module", "seminar", "webinar", "tutorial",
	},
	Other: {
		"misc", "notes", "memo", "scan", "draft", "copy",
		"untitled", "document", "file", "temp", "backup", "archive",
	},
}
