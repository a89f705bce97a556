package training

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"attrition/internal/data"
	"attrition/internal/evaluation"
	"attrition/internal/features"
	"attrition/internal/models"
)

var (
	ErrNoRecords    = errors.New("no training records")
	ErrEmptySplit   = errors.New("train or test split is empty")
	ErrTestFraction = errors.New("test fraction must be in (0, 1)")
)

type Config struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     models.MaxFeatures
	TestFraction    float64
	Workers         int
}

func DefaultConfig() Config {
	return Config{
		NEstimators:     15,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MaxFeatures:     models.MaxFeaturesSqrt,
		TestFraction:    evaluation.DefaultTestFraction,
	}
}

// Importances names each entry of the ensemble importance vector.
type Importances struct {
	Overtime        float64 `json:"overtime"`
	Compensation    float64 `json:"compensation"`
	Satisfaction    float64 `json:"satisfaction"`
	Growth          float64 `json:"growth"`
	WorkLifeBalance float64 `json:"workLifeBalance"`
}

func (im Importances) Values() [features.NumFeatures]float64 {
	return [features.NumFeatures]float64{im.Overtime, im.Compensation, im.Satisfaction, im.Growth, im.WorkLifeBalance}
}

// ModelInfo reports an evaluated ensemble. Metric values are percentages.
type ModelInfo struct {
	Name               string      `json:"name"`
	Accuracy           float64     `json:"accuracy"`
	Precision          float64     `json:"precision"`
	Recall             float64     `json:"recall"`
	F1Score            float64     `json:"f1Score"`
	ROCAUC             float64     `json:"rocAuc"`
	FeatureImportances Importances `json:"featureImportance"`
	Trees              int         `json:"trees"`
	TrainSize          int         `json:"trainSize"`
	TestSize           int         `json:"testSize"`
	TrainingMillis     int64       `json:"trainingMs"`

	// f1 is the unrounded fraction used for model selection.
	f1 float64
}

type Result struct {
	RandomForest ModelInfo            `json:"randomForest"`
	ExtraTrees   ModelInfo            `json:"extraTrees"`
	RFModel      *models.RandomForest `json:"-"`
	ETModel      *models.ExtraTrees   `json:"-"`
}

// Best returns the name of the ensemble with the higher F1; Random Forest
// wins ties.
func (r *Result) Best() string {
	if r.ExtraTrees.f1 > r.RandomForest.f1 {
		return r.ETModel.Name()
	}
	return r.RFModel.Name()
}

type Trainer struct {
	cfg    Config
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTrainer takes ownership of rng; a nil logger discards output.
func NewTrainer(cfg Config, rng *rand.Rand, logger *zap.Logger) *Trainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Trainer{cfg: cfg, rng: rng, logger: logger}
}

// TrainModels splits the records, fits Random Forest and Extra Trees on the
// same train split and evaluates both on the same test split.
func (t *Trainer) TrainModels(records []data.Employee) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if t.cfg.TestFraction <= 0 || t.cfg.TestFraction >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrTestFraction, t.cfg.TestFraction)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	samples := features.BuildTrainingSet(records)
	train, test := evaluation.TrainTestSplit(samples, t.cfg.TestFraction, t.rng)
	if len(train) == 0 || len(test) == 0 {
		return nil, fmt.Errorf("%w: %d train, %d test", ErrEmptySplit, len(train), len(test))
	}
	X, y := features.Matrix(train)

	rf, et := t.cfg.NewModels(t.rng)

	res := &Result{RFModel: rf, ETModel: et}
	var err error
	if res.RandomForest, err = t.fitAndEvaluate(rf, X, y, test); err != nil {
		return nil, fmt.Errorf("random forest: %w", err)
	}
	if res.ExtraTrees, err = t.fitAndEvaluate(et, X, y, test); err != nil {
		return nil, fmt.Errorf("extra trees: %w", err)
	}
	t.logger.Info("training finished",
		zap.Int("records", len(records)),
		zap.Int("train", len(train)),
		zap.Int("test", len(test)),
		zap.String("best", res.Best()),
	)
	return res, nil
}

// NewModels builds an unfitted Random Forest and Extra Trees pair from the
// config. Zero fields keep the model defaults. Each ensemble gets its own
// generator seeded from r.
func (c Config) NewModels(r *rand.Rand) (*models.RandomForest, *models.ExtraTrees) {
	rf := models.NewRandomForest()
	c.apply(&rf.NEstimators, &rf.MaxDepth, &rf.MinSamplesSplit, &rf.MaxFeatures, &rf.Workers)
	rf.Rand = rand.New(rand.NewSource(r.Int63()))
	et := models.NewExtraTrees()
	c.apply(&et.NEstimators, &et.MaxDepth, &et.MinSamplesSplit, &et.MaxFeatures, &et.Workers)
	et.Rand = rand.New(rand.NewSource(r.Int63()))
	return rf, et
}

func (c Config) apply(nEst, depth, minSplit *int, maxFeat *models.MaxFeatures, workers *int) {
	if c.NEstimators > 0 {
		*nEst = c.NEstimators
	}
	if c.MaxDepth > 0 {
		*depth = c.MaxDepth
	}
	if c.MinSamplesSplit > 0 {
		*minSplit = c.MinSamplesSplit
	}
	if c.MaxFeatures != "" {
		*maxFeat = c.MaxFeatures
	}
	*workers = c.Workers
}

type ensembleModel interface {
	models.Classifier
	TreeCount() int
}

func (t *Trainer) fitAndEvaluate(m ensembleModel, X [][]float64, y []int, test []features.LabeledSample) (ModelInfo, error) {
	start := time.Now()
	if err := m.Fit(X, y); err != nil {
		return ModelInfo{}, err
	}
	elapsed := time.Since(start)
	met := evaluation.Evaluate(m, test)
	info := newModelInfo(m, met, len(X), len(test))
	info.TrainingMillis = elapsed.Milliseconds()
	t.logger.Info("model evaluated",
		zap.String("model", m.Name()),
		zap.Float64("accuracy", info.Accuracy),
		zap.Float64("precision", info.Precision),
		zap.Float64("recall", info.Recall),
		zap.Float64("f1", info.F1Score),
		zap.Float64("roc_auc", info.ROCAUC),
		zap.Duration("elapsed", elapsed),
	)
	return info, nil
}

func newModelInfo(m ensembleModel, met evaluation.Metrics, trainSize, testSize int) ModelInfo {
	imp := m.FeatureImportances()
	at := func(i int) float64 {
		if i < len(imp) {
			return round2(imp[i])
		}
		return 0
	}
	return ModelInfo{
		Name:      m.Name(),
		Accuracy:  pct(met.Accuracy),
		Precision: pct(met.Precision),
		Recall:    pct(met.Recall),
		F1Score:   pct(met.F1),
		ROCAUC:    pct(met.ROCAUC),
		FeatureImportances: Importances{
			Overtime:        at(0),
			Compensation:    at(1),
			Satisfaction:    at(2),
			Growth:          at(3),
			WorkLifeBalance: at(4),
		},
		Trees:     m.TreeCount(),
		TrainSize: trainSize,
		TestSize:  testSize,
		f1:        met.F1,
	}
}

func pct(f float64) float64 { return math.Round(f*10000) / 100 }

func round2(f float64) float64 { return math.Round(f*10000) / 10000 }
