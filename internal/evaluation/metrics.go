package evaluation

import (
	"sort"

	"attrition/internal/features"
	"attrition/internal/models"
)

// Metrics are fractions in [0, 1].
type Metrics struct {
	TP, FP, TN, FN int
	Accuracy       float64
	Precision      float64
	Recall         float64
	F1             float64
	ROCAUC         float64
}

func Evaluate(m models.Classifier, test []features.LabeledSample) Metrics {
	X, y := features.Matrix(test)
	out := FromPredictions(y, models.PredictBatch(m, X))
	out.ROCAUC = ROCAUC(y, models.PredictProbaBatch(m, X))
	return out
}

// FromPredictions fills the confusion matrix and the threshold metrics.
// Every ratio with a zero denominator is 0.
func FromPredictions(y, preds []int) Metrics {
	var m Metrics
	for i := range y {
		switch {
		case preds[i] == 1 && y[i] == 1:
			m.TP++
		case preds[i] == 1 && y[i] == 0:
			m.FP++
		case preds[i] == 0 && y[i] == 0:
			m.TN++
		default:
			m.FN++
		}
	}
	if total := len(y); total > 0 {
		m.Accuracy = float64(m.TP+m.TN) / float64(total)
	}
	if m.TP+m.FP > 0 {
		m.Precision = float64(m.TP) / float64(m.TP+m.FP)
	}
	if m.TP+m.FN > 0 {
		m.Recall = float64(m.TP) / float64(m.TP+m.FN)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// ROCAUC ranks samples by descending score and counts, for every negative,
// the positives ranked above it. With a single class present it returns 0.5.
func ROCAUC(y []int, scores []float64) float64 {
	type pair struct {
		s float64
		y int
	}
	pairs := make([]pair, len(y))
	var pos, neg int
	for i := range y {
		pairs[i] = pair{scores[i], y[i]}
		if y[i] == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0.5
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].s > pairs[j].s })
	tpSeen, sum := 0, 0
	for _, p := range pairs {
		if p.y == 1 {
			tpSeen++
		} else {
			sum += tpSeen
		}
	}
	return float64(sum) / float64(pos*neg)
}
