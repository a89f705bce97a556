package data

import (
	"math"
	"math/rand"
	"strconv"
)

var departments = []string{"Engineering", "Sales", "Operations", "Finance", "HR"}
var firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabi", "Hugo", "Iris", "Joao"}

// GenerateEmployees produces n synthetic records. About labeledRate of them
// carry an explicit resignation flag; every record carries a risk score.
func GenerateEmployees(n int, labeledRate float64, r *rand.Rand) []Employee {
	out := make([]Employee, 0, n)
	for i := 0; i < n; i++ {
		// a latent stress level drives all five factors so the classes overlap
		stress := r.Float64()
		factor := func(invert bool) float64 {
			v := stress*70 + r.Float64()*30
			if invert {
				v = 100 - v
			}
			return math.Round(clamp(v)*100) / 100
		}
		e := Employee{
			EmployeeID:      "E" + strconv.Itoa(100000+i),
			Name:            firstNames[r.Intn(len(firstNames))] + " " + strconv.Itoa(i),
			Department:      departments[r.Intn(len(departments))],
			Overtime:        factor(false),
			Compensation:    factor(false),
			Satisfaction:    factor(true),
			Growth:          factor(false),
			WorkLifeBalance: factor(true),
		}
		risk := math.Round(clamp(stress*100+r.NormFloat64()*8)*100) / 100
		e.RiskScore = &risk
		if r.Float64() < labeledRate {
			resigned := r.Float64() < 0.15+0.7*stress
			e.Resigned = &resigned
		}
		out = append(out, e)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
