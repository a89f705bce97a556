package features

import (
	"math"
	"testing"

	"attrition/internal/data"
)

func TestExtractFeaturesOrder(t *testing.T) {
	e := data.Employee{Overtime: 1, Compensation: 2, Satisfaction: 3, Growth: 4, WorkLifeBalance: 5}
	if got := ExtractFeatures(e); got != (FeatureVector{1, 2, 3, 4, 5}) {
		t.Fatalf("ExtractFeatures = %v", got)
	}
}

func TestRiskIndex(t *testing.T) {
	// all risk high: overtime etc. 100, satisfaction and balance 0
	if got := RiskIndex(FeatureVector{100, 100, 0, 100, 0}); math.Abs(got-100) > 1e-9 {
		t.Fatalf("max risk = %v", got)
	}
	if got := RiskIndex(FeatureVector{0, 0, 100, 0, 100}); math.Abs(got) > 1e-9 {
		t.Fatalf("min risk = %v", got)
	}
	// 0.25*60 + 0.2*50 + 0.25*(100-40) + 0.15*50 + 0.15*(100-50) = 55
	if got := RiskIndex(FeatureVector{60, 50, 40, 50, 50}); math.Abs(got-55) > 1e-9 {
		t.Fatalf("risk = %v, want 55", got)
	}
}

func TestDeriveLabel(t *testing.T) {
	cases := []struct {
		name string
		e    data.Employee
		want int
	}{
		{"explicit resigned", data.Employee{Resigned: data.BoolPtr(true)}, 1},
		{"explicit retained overrides risk", data.Employee{Overtime: 100, Compensation: 100, Growth: 100, Resigned: data.BoolPtr(false)}, 0},
		{"just below threshold", data.Employee{Overtime: 56, Compensation: 50, Satisfaction: 40, Growth: 50, WorkLifeBalance: 50}, 0},
		{"above threshold attrites", data.Employee{Overtime: 80, Compensation: 60, Satisfaction: 20, Growth: 60, WorkLifeBalance: 30}, 1},
		{"low risk", data.Employee{Overtime: 10, Compensation: 20, Satisfaction: 90, Growth: 10, WorkLifeBalance: 85}, 0},
	}
	for _, tc := range cases {
		if got := DeriveLabel(tc.e); got != tc.want {
			t.Errorf("%s: DeriveLabel = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBuildTrainingSetAndMatrix(t *testing.T) {
	recs := []data.Employee{
		{Overtime: 1, Resigned: data.BoolPtr(true)},
		{Overtime: 2, Resigned: data.BoolPtr(false)},
	}
	set := BuildTrainingSet(recs)
	X, y := Matrix(set)
	if len(X) != 2 || X[0][0] != 1 || X[1][0] != 2 || y[0] != 1 || y[1] != 0 {
		t.Fatalf("unexpected matrix %v %v", X, y)
	}
	X[0][0] = 99
	if set[0].Features[0] != 1 {
		t.Fatal("feature vectors must not alias the matrix rows")
	}
}
