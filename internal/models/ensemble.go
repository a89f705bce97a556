package models

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

type sampler func(X [][]float64, y []int, r *rand.Rand) ([][]float64, []int)

// ensemble holds the configuration and fitted trees shared by RandomForest
// and ExtraTrees. The row sampler and split mode are chosen by the concrete
// type, never by a flag on this struct.
type ensemble struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     MaxFeatures
	// Workers bounds concurrent tree fits; 0 means GOMAXPROCS.
	Workers int
	Rand    *rand.Rand

	Trees       []*DecisionTree
	Importances []float64
}

func newEnsemble() ensemble {
	return ensemble{
		NEstimators:     15,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MaxFeatures:     MaxFeaturesSqrt,
	}
}

func (e *ensemble) fit(X [][]float64, y []int, sample sampler, randomSplits bool) error {
	nFeats, err := validate(X, y)
	if err != nil {
		return err
	}
	if e.NEstimators <= 0 {
		e.NEstimators = 15
	}
	subset, err := e.MaxFeatures.Resolve(nFeats)
	if err != nil {
		return err
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Seeds are drawn before any goroutine starts so the fitted forest does
	// not depend on scheduling.
	seeds := make([]int64, e.NEstimators)
	for i := range seeds {
		seeds[i] = e.Rand.Int63()
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	trees := make([]*DecisionTree, e.NEstimators)
	var g errgroup.Group
	g.SetLimit(workers)
	for k := 0; k < e.NEstimators; k++ {
		k := k
		g.Go(func() error {
			r := rand.New(rand.NewSource(seeds[k]))
			Xs, ys := sample(X, y, r)
			dt := NewDecisionTree()
			dt.MaxDepth = e.MaxDepth
			dt.MinSamplesSplit = e.MinSamplesSplit
			dt.FeatureSubset = subset
			dt.RandomSplits = randomSplits
			dt.Rand = r
			if err := dt.Fit(Xs, ys); err != nil {
				return fmt.Errorf("tree %d: %w", k, err)
			}
			trees[k] = dt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.Trees = trees
	e.Importances = make([]float64, nFeats)
	for _, dt := range trees {
		for f, v := range dt.Importances {
			e.Importances[f] += v
		}
	}
	for f := range e.Importances {
		e.Importances[f] /= float64(len(trees))
	}
	// Trees that never split contribute zeros to the average.
	normalize(e.Importances)
	return nil
}

func (e *ensemble) votes(x []float64) (ones, total int) {
	for _, dt := range e.Trees {
		ones += dt.Predict(x)
	}
	return ones, len(e.Trees)
}

// Predict is the majority vote; an exact half goes to class 1.
func (e *ensemble) Predict(x []float64) int {
	ones, total := e.votes(x)
	if total == 0 {
		return 0
	}
	if 2*ones >= total {
		return 1
	}
	return 0
}

// PredictProba is the fraction of trees voting for class 1.
func (e *ensemble) PredictProba(x []float64) float64 {
	ones, total := e.votes(x)
	if total == 0 {
		return 0
	}
	return float64(ones) / float64(total)
}

func (e *ensemble) FeatureImportances() []float64 {
	out := make([]float64, len(e.Importances))
	copy(out, e.Importances)
	return out
}

func (e *ensemble) TreeCount() int { return len(e.Trees) }
