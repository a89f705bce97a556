package report

import (
	"fmt"
	"math"
	"math/rand"

	"attrition/internal/evaluation"
	"attrition/internal/features"
	"attrition/internal/training"
)

// CurvePoint holds the test metrics of both ensembles fitted on the first
// Size training samples.
type CurvePoint struct {
	Size         int
	RandomForest evaluation.Metrics
	ExtraTrees   evaluation.Metrics
}

// CurveSizes spreads points training sizes linearly up to total, never below
// min. Repeated sizes are dropped.
func CurveSizes(total, points, min int) []int {
	if total <= 0 || points <= 0 {
		return nil
	}
	sizes := make([]int, 0, points)
	for i := 1; i <= points; i++ {
		frac := float64(i) / float64(points)
		s := int(math.Max(float64(min), frac*float64(total)))
		if s > total {
			s = total
		}
		if len(sizes) > 0 && sizes[len(sizes)-1] == s {
			continue
		}
		sizes = append(sizes, s)
	}
	return sizes
}

// LearningCurve refits both ensembles on growing prefixes of train and scores
// each on the full test split.
func LearningCurve(train, test []features.LabeledSample, sizes []int, cfg training.Config, r *rand.Rand) ([]CurvePoint, error) {
	out := make([]CurvePoint, 0, len(sizes))
	for _, s := range sizes {
		if s > len(train) {
			s = len(train)
		}
		X, y := features.Matrix(train[:s])
		rf, et := cfg.NewModels(r)
		if err := rf.Fit(X, y); err != nil {
			return nil, fmt.Errorf("size %d: random forest: %w", s, err)
		}
		if err := et.Fit(X, y); err != nil {
			return nil, fmt.Errorf("size %d: extra trees: %w", s, err)
		}
		out = append(out, CurvePoint{
			Size:         s,
			RandomForest: evaluation.Evaluate(rf, test),
			ExtraTrees:   evaluation.Evaluate(et, test),
		})
	}
	return out, nil
}
