package features

import "attrition/internal/data"

const NumFeatures = 5

// FeatureNames is the fixed column order of a FeatureVector.
var FeatureNames = [NumFeatures]string{"overtime", "compensation", "satisfaction", "growth", "workLifeBalance"}

// FeatureVector is [overtime, compensation, satisfaction, growth, workLifeBalance].
type FeatureVector [NumFeatures]float64

func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

type LabeledSample struct {
	Features FeatureVector
	Label    int
}

// Weights of the synthetic label, in FeatureVector order. Satisfaction and
// work-life balance enter inverted (100 - x).
var labelWeights = [NumFeatures]float64{0.25, 0.20, 0.25, 0.15, 0.15}

const SyntheticLabelThreshold = 55.0

func ExtractFeatures(e data.Employee) FeatureVector {
	return FeatureVector{e.Overtime, e.Compensation, e.Satisfaction, e.Growth, e.WorkLifeBalance}
}

// RiskIndex is the weighted average of the risk factors with satisfaction and
// work-life balance inverted. labelWeights sum to 1.
func RiskIndex(v FeatureVector) float64 {
	risk := [NumFeatures]float64{v[0], v[1], 100 - v[2], v[3], 100 - v[4]}
	sum := 0.0
	for i, w := range labelWeights {
		sum += w * risk[i]
	}
	return sum
}

// DeriveLabel uses the explicit resignation flag when present and otherwise
// labels the record 1 when RiskIndex exceeds SyntheticLabelThreshold.
func DeriveLabel(e data.Employee) int {
	if e.Resigned != nil {
		if *e.Resigned {
			return 1
		}
		return 0
	}
	if RiskIndex(ExtractFeatures(e)) > SyntheticLabelThreshold {
		return 1
	}
	return 0
}

func BuildTrainingSet(records []data.Employee) []LabeledSample {
	out := make([]LabeledSample, len(records))
	for i, e := range records {
		out[i] = LabeledSample{Features: ExtractFeatures(e), Label: DeriveLabel(e)}
	}
	return out
}

// Matrix splits samples into the row-major X and label y used by models.
func Matrix(samples []LabeledSample) ([][]float64, []int) {
	X := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		X[i] = s.Features.Slice()
		y[i] = s.Label
	}
	return X, y
}
