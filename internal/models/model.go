package models

// Classifier is a binary model over fixed-width feature vectors.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(x []float64) int
	PredictProba(x []float64) float64
	FeatureImportances() []float64
	Name() string
}

func PredictBatch(m Classifier, X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = m.Predict(X[i])
	}
	return out
}

func PredictProbaBatch(m Classifier, X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = m.PredictProba(X[i])
	}
	return out
}

func validate(X [][]float64, y []int) (int, error) {
	if len(X) == 0 {
		return 0, ErrEmptyData
	}
	if len(X) != len(y) {
		return 0, ErrDimMismatch
	}
	nFeats := len(X[0])
	if nFeats == 0 {
		return 0, ErrEmptyData
	}
	for i := range X {
		if len(X[i]) != nFeats {
			return 0, ErrDimMismatch
		}
		if y[i] != 0 && y[i] != 1 {
			return 0, ErrInvalidLabel
		}
	}
	return nFeats, nil
}
