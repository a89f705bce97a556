package data

// Employee is the record supplied by the HR store. The five risk factors are
// on a 0-100 scale. Resigned and RiskScore are optional.
type Employee struct {
	EmployeeID      string   `json:"employee_id"`
	Name            string   `json:"name"`
	Department      string   `json:"department"`
	Overtime        float64  `json:"overtime" binding:"min=0,max=100"`
	Compensation    float64  `json:"compensation" binding:"min=0,max=100"`
	Satisfaction    float64  `json:"satisfaction" binding:"min=0,max=100"`
	Growth          float64  `json:"growth" binding:"min=0,max=100"`
	WorkLifeBalance float64  `json:"work_life_balance" binding:"min=0,max=100"`
	Resigned        *bool    `json:"resigned,omitempty"`
	RiskScore       *float64 `json:"risk_score,omitempty"`
}

func BoolPtr(b bool) *bool { return &b }

func FloatPtr(f float64) *float64 { return &f }
