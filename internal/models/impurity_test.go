package models

import (
	"math"
	"math/rand"
	"testing"
)

func TestGiniImpurity(t *testing.T) {
	cases := []struct {
		name   string
		labels []int
		want   float64
	}{
		{"empty", nil, 0},
		{"pure zeros", []int{0, 0, 0}, 0},
		{"pure ones", []int{1, 1}, 0},
		{"balanced", []int{0, 1, 0, 1}, 0.5},
		{"one in four", []int{1, 0, 0, 0}, 0.375},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GiniImpurity(tc.labels); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("GiniImpurity(%v) = %v, want %v", tc.labels, got, tc.want)
			}
		})
	}
}

func TestGiniImpurityBinaryBound(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + r.Intn(50)
		labels := make([]int, n)
		for i := range labels {
			labels[i] = r.Intn(2)
		}
		g := GiniImpurity(labels)
		if g < 0 || g > 0.5+1e-12 {
			t.Fatalf("gini %v out of [0, 0.5] for %v", g, labels)
		}
	}
}

func TestInformationGainNonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		n := 2 + r.Intn(40)
		parent := make([]int, n)
		for i := range parent {
			parent[i] = r.Intn(2)
		}
		cut := 1 + r.Intn(n-1)
		if g := InformationGain(parent, parent[:cut], parent[cut:]); g < 0 {
			t.Fatalf("negative gain %v", g)
		}
	}
}

func TestInformationGainPerfectSplit(t *testing.T) {
	parent := []int{0, 0, 1, 1}
	if g := InformationGain(parent, []int{0, 0}, []int{1, 1}); math.Abs(g-0.5) > 1e-12 {
		t.Fatalf("gain = %v, want 0.5", g)
	}
}

func TestGainCountsMatchesSliceVersion(t *testing.T) {
	parent := []int{0, 1, 1, 0, 1, 1, 0}
	left, right := parent[:3], parent[3:]
	want := InformationGain(parent, left, right)
	got := gainCounts([2]int{3, 4}, [2]int{1, 2}, [2]int{2, 2})
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("gainCounts = %v, InformationGain = %v", got, want)
	}
}

func TestMaxFeaturesResolve(t *testing.T) {
	cases := []struct {
		policy MaxFeatures
		n      int
		want   int
	}{
		{MaxFeaturesSqrt, 5, 2},
		{MaxFeaturesLog2, 5, 2},
		{MaxFeaturesAll, 5, 5},
		{"3", 5, 3},
		{"9", 5, 5},
		{MaxFeaturesLog2, 1, 1},
	}
	for _, tc := range cases {
		got, err := tc.policy.Resolve(tc.n)
		if err != nil {
			t.Fatalf("Resolve(%q, %d): %v", tc.policy, tc.n, err)
		}
		if got != tc.want {
			t.Errorf("Resolve(%q, %d) = %d, want %d", tc.policy, tc.n, got, tc.want)
		}
	}
	if _, err := ParseMaxFeatures("half"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
