package models

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func separable(n int, r *rand.Rand) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		label := i % 2
		base := 20.0
		if label == 1 {
			base = 70
		}
		X[i] = []float64{base + r.Float64()*10, 50, 50, 50, 50}
		y[i] = label
	}
	return X, y
}

func sumOf(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}

func TestDecisionTreeFitsSeparableData(t *testing.T) {
	for _, randomSplits := range []bool{false, true} {
		r := rand.New(rand.NewSource(3))
		X, y := separable(40, r)
		dt := NewDecisionTree()
		dt.RandomSplits = randomSplits
		dt.Rand = r
		if err := dt.Fit(X, y); err != nil {
			t.Fatalf("fit: %v", err)
		}
		for i := range X {
			if got := dt.Predict(X[i]); got != y[i] {
				t.Fatalf("randomSplits=%v: sample %d predicted %d, want %d", randomSplits, i, got, y[i])
			}
		}
		imp := dt.FeatureImportances()
		if math.Abs(sumOf(imp)-1) > 1e-9 {
			t.Fatalf("importances sum %v, want 1", sumOf(imp))
		}
		if imp[0] != 1 {
			t.Fatalf("importance should sit entirely on feature 0, got %v", imp)
		}
	}
}

func TestDecisionTreeOptimalThresholdIsMidpoint(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []int{0, 0, 1, 1}
	dt := NewDecisionTree()
	dt.Rand = rand.New(rand.NewSource(1))
	if err := dt.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	root := dt.Nodes[0]
	if root.IsLeaf || root.Threshold != 2.5 || root.Samples != 4 {
		t.Fatalf("unexpected root %+v", root)
	}
	if dt.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", dt.Depth())
	}
}

func TestDecisionTreeNoSplitLeavesZeroImportance(t *testing.T) {
	X := [][]float64{{5, 5}, {5, 5}, {5, 5}, {5, 5}}
	y := []int{0, 1, 1, 0}
	dt := NewDecisionTree()
	dt.Rand = rand.New(rand.NewSource(1))
	if err := dt.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if len(dt.Nodes) != 1 || !dt.Nodes[0].IsLeaf {
		t.Fatalf("expected a single leaf, got %d nodes", len(dt.Nodes))
	}
	// tie: first-seen label wins
	if dt.Nodes[0].Prediction != 0 {
		t.Fatalf("tie should resolve to first-seen label 0, got %d", dt.Nodes[0].Prediction)
	}
	for _, v := range dt.FeatureImportances() {
		if v != 0 {
			t.Fatalf("importances should be all zero, got %v", dt.FeatureImportances())
		}
	}
}

func TestDecisionTreeStoppingRules(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	X, y := separable(30, r)

	dt := NewDecisionTree()
	dt.MaxDepth = 0
	dt.Rand = r
	if err := dt.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if !dt.Nodes[0].IsLeaf {
		t.Fatal("max depth 0 must yield a leaf root")
	}

	dt = NewDecisionTree()
	dt.MinSamplesSplit = 31
	dt.Rand = r
	if err := dt.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if !dt.Nodes[0].IsLeaf {
		t.Fatal("too few samples must yield a leaf root")
	}
}

func TestDecisionTreeArenaOwnership(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	X := make([][]float64, 60)
	y := make([]int, 60)
	for i := range X {
		X[i] = []float64{r.Float64() * 100, r.Float64() * 100, r.Float64() * 100}
		y[i] = r.Intn(2)
	}
	dt := NewDecisionTree()
	dt.Rand = r
	if err := dt.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	parents := make([]int, len(dt.Nodes))
	for i, n := range dt.Nodes {
		if n.IsLeaf {
			continue
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= i || c >= len(dt.Nodes) {
				t.Fatalf("node %d has invalid child %d", i, c)
			}
			parents[c]++
		}
	}
	for i := 1; i < len(parents); i++ {
		if parents[i] != 1 {
			t.Fatalf("node %d has %d parents", i, parents[i])
		}
	}
	if dt.Depth() > dt.MaxDepth {
		t.Fatalf("depth %d exceeds max %d", dt.Depth(), dt.MaxDepth)
	}
}

func TestDecisionTreeRejectsBadInput(t *testing.T) {
	dt := NewDecisionTree()
	if err := dt.Fit(nil, nil); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("want ErrEmptyData, got %v", err)
	}
	if err := dt.Fit([][]float64{{1}}, []int{0, 1}); !errors.Is(err, ErrDimMismatch) {
		t.Fatalf("want ErrDimMismatch, got %v", err)
	}
	if err := dt.Fit([][]float64{{1}}, []int{2}); !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("want ErrInvalidLabel, got %v", err)
	}
}

func TestDecisionTreeUnfittedPredictsZero(t *testing.T) {
	dt := NewDecisionTree()
	if dt.Predict([]float64{1, 2}) != 0 || dt.PredictProba([]float64{1, 2}) != 0 {
		t.Fatal("unfitted tree should predict class 0")
	}
}
