package training

import (
	"sync"

	"attrition/internal/data"
	"attrition/internal/features"
	"attrition/internal/models"
)

const FallbackModel = "fallback"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func RiskLevelFor(p float64) RiskLevel {
	switch {
	case p >= 0.7:
		return RiskHigh
	case p >= 0.4:
		return RiskMedium
	default:
		return RiskLow
	}
}

type Prediction struct {
	Prediction  int       `json:"prediction"`
	Probability float64   `json:"probability"`
	RiskLevel   RiskLevel `json:"riskLevel"`
	ModelUsed   string    `json:"modelUsed"`
	Fallback    bool      `json:"fallback"`
}

type entry struct {
	rf     *models.RandomForest
	et     *models.ExtraTrees
	result *Result
}

// Registry holds the ensembles of the latest training run. Store replaces
// both ensembles and their scores in one step.
type Registry struct {
	mu  sync.RWMutex
	cur *entry
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Store(res *Result) {
	if res == nil || res.RFModel == nil || res.ETModel == nil {
		return
	}
	e := &entry{rf: res.RFModel, et: res.ETModel, result: res}
	r.mu.Lock()
	r.cur = e
	r.mu.Unlock()
}

func (r *Registry) Trained() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cur != nil
}

// Best returns the higher-F1 ensemble of the latest run, Random Forest on a
// tie. ok is false before the first Store.
func (r *Registry) Best() (m models.Classifier, ok bool) {
	r.mu.RLock()
	e := r.cur
	r.mu.RUnlock()
	if e == nil {
		return nil, false
	}
	if e.result.ExtraTrees.f1 > e.result.RandomForest.f1 {
		return e.et, true
	}
	return e.rf, true
}

// Snapshot returns the metrics of the latest run.
func (r *Registry) Snapshot() (rf, et ModelInfo, ok bool) {
	r.mu.RLock()
	e := r.cur
	r.mu.RUnlock()
	if e == nil {
		return ModelInfo{}, ModelInfo{}, false
	}
	return e.result.RandomForest, e.result.ExtraTrees, true
}

// PredictWithBestModel scores the record with the best ensemble. Before any
// training run it falls back to the record's own risk score (0-100, missing
// counts as 0) and marks the result as such.
func (r *Registry) PredictWithBestModel(e data.Employee) Prediction {
	m, ok := r.Best()
	if !ok {
		p := 0.0
		if e.RiskScore != nil {
			p = *e.RiskScore / 100
		}
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		return Prediction{
			Prediction:  pred,
			Probability: p,
			RiskLevel:   RiskLevelFor(p),
			ModelUsed:   FallbackModel,
			Fallback:    true,
		}
	}
	x := features.ExtractFeatures(e).Slice()
	p := m.PredictProba(x)
	return Prediction{
		Prediction:  m.Predict(x),
		Probability: p,
		RiskLevel:   RiskLevelFor(p),
		ModelUsed:   m.Name(),
	}
}
