package evaluation

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"attrition/internal/features"
)

func samples(n int) []features.LabeledSample {
	out := make([]features.LabeledSample, n)
	for i := range out {
		out[i] = features.LabeledSample{Features: features.FeatureVector{float64(i)}, Label: i % 2}
	}
	return out
}

func TestTrainTestSplitSizesAndDisjoint(t *testing.T) {
	s := samples(23)
	train, test := TrainTestSplit(s, 0.2, rand.New(rand.NewSource(1)))
	if len(train) != 18 || len(test) != 5 {
		t.Fatalf("split %d/%d, want 18/5", len(train), len(test))
	}
	seen := map[float64]bool{}
	for _, x := range append(append([]features.LabeledSample{}, train...), test...) {
		if seen[x.Features[0]] {
			t.Fatalf("sample %v appears twice", x.Features[0])
		}
		seen[x.Features[0]] = true
	}
	if len(seen) != 23 {
		t.Fatalf("partition covers %d samples, want 23", len(seen))
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	s := samples(40)
	for i := 0; i < 3; i++ {
		a1, b1 := TrainTestSplit(s, 0.2, rand.New(rand.NewSource(77)))
		a2, b2 := TrainTestSplit(s, 0.2, rand.New(rand.NewSource(77)))
		if !reflect.DeepEqual(a1, a2) || !reflect.DeepEqual(b1, b2) {
			t.Fatal("same seed produced different partitions")
		}
	}
}

func TestFromPredictions(t *testing.T) {
	y := []int{1, 1, 1, 0, 0, 0, 0, 1}
	p := []int{1, 1, 0, 0, 0, 1, 0, 1}
	m := FromPredictions(y, p)
	if m.TP != 3 || m.FN != 1 || m.FP != 1 || m.TN != 3 {
		t.Fatalf("confusion %+v", m)
	}
	if m.Accuracy != 0.75 || m.Precision != 0.75 || m.Recall != 0.75 || math.Abs(m.F1-0.75) > 1e-12 {
		t.Fatalf("metrics %+v", m)
	}
}

func TestFromPredictionsZeroDenominators(t *testing.T) {
	m := FromPredictions([]int{0, 0}, []int{0, 0})
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 || m.Accuracy != 1 {
		t.Fatalf("metrics %+v", m)
	}
	if empty := FromPredictions(nil, nil); empty.Accuracy != 0 {
		t.Fatalf("empty accuracy %v", empty.Accuracy)
	}
}

func TestROCAUC(t *testing.T) {
	cases := []struct {
		name   string
		y      []int
		scores []float64
		want   float64
	}{
		{"perfect", []int{1, 1, 0, 0}, []float64{0.9, 0.8, 0.2, 0.1}, 1},
		{"inverted", []int{0, 0, 1, 1}, []float64{0.9, 0.8, 0.2, 0.1}, 0},
		{"mixed", []int{1, 0, 1, 0}, []float64{0.9, 0.8, 0.7, 0.1}, 0.75},
		{"only positives", []int{1, 1}, []float64{0.3, 0.9}, 0.5},
		{"only negatives", []int{0, 0, 0}, []float64{0.3, 0.9, 0.1}, 0.5},
		{"empty", nil, nil, 0.5},
	}
	for _, tc := range cases {
		if got := ROCAUC(tc.y, tc.scores); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s: ROCAUC = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestROCAUCRange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		n := 2 + r.Intn(30)
		y := make([]int, n)
		s := make([]float64, n)
		for i := range y {
			y[i] = r.Intn(2)
			s[i] = float64(r.Intn(5)) / 4
		}
		if auc := ROCAUC(y, s); auc < 0 || auc > 1 {
			t.Fatalf("auc %v out of range", auc)
		}
	}
}

type stubModel struct{ threshold float64 }

func (s stubModel) Fit([][]float64, []int) error { return nil }
func (s stubModel) Predict(x []float64) int {
	if x[0] >= s.threshold {
		return 1
	}
	return 0
}
func (s stubModel) PredictProba(x []float64) float64 { return x[0] / 100 }
func (s stubModel) FeatureImportances() []float64   { return []float64{1, 0, 0, 0, 0} }
func (s stubModel) Name() string                    { return "stub" }

func TestEvaluate(t *testing.T) {
	test := []features.LabeledSample{
		{Features: features.FeatureVector{90}, Label: 1},
		{Features: features.FeatureVector{60}, Label: 1},
		{Features: features.FeatureVector{55}, Label: 0},
		{Features: features.FeatureVector{10}, Label: 0},
	}
	m := Evaluate(stubModel{threshold: 50}, test)
	if m.TP != 2 || m.FP != 1 || m.TN != 1 || m.FN != 0 {
		t.Fatalf("confusion %+v", m)
	}
	if m.ROCAUC != 1 {
		t.Fatalf("auc %v, want 1", m.ROCAUC)
	}
}
