package models

// RandomForest fits every tree on a bootstrap sample of the rows with
// exhaustive threshold search.
type RandomForest struct {
	ensemble
}

func NewRandomForest() *RandomForest {
	return &RandomForest{ensemble: newEnsemble()}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	return rf.fit(X, y, bootstrapSample, false)
}
