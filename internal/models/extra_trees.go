package models

// ExtraTrees fits every tree on the full training set and draws a single
// random threshold per candidate feature.
type ExtraTrees struct {
	ensemble
}

func NewExtraTrees() *ExtraTrees {
	return &ExtraTrees{ensemble: newEnsemble()}
}

func (et *ExtraTrees) Name() string { return "ExtraTrees" }

func (et *ExtraTrees) Fit(X [][]float64, y []int) error {
	return et.fit(X, y, fullSample, true)
}
