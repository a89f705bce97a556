package models

// GiniImpurity returns 1 - sum(p_c^2) over the classes present in labels.
// An empty label set has impurity 0.
func GiniImpurity(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	n := float64(len(labels))
	g := 1.0
	for _, c := range counts {
		p := float64(c) / n
		g -= p * p
	}
	return g
}

// InformationGain is the parent impurity minus the size-weighted impurity of
// the two children.
func InformationGain(parent, left, right []int) float64 {
	if len(parent) == 0 {
		return 0
	}
	n := float64(len(parent))
	wl := float64(len(left)) / n
	wr := float64(len(right)) / n
	gain := GiniImpurity(parent) - (wl*GiniImpurity(left) + wr*GiniImpurity(right))
	if gain < 0 {
		return 0
	}
	return gain
}

// binary-label fast paths used during tree induction

func giniCounts(c [2]int) float64 {
	n := c[0] + c[1]
	if n == 0 {
		return 0
	}
	p0 := float64(c[0]) / float64(n)
	p1 := float64(c[1]) / float64(n)
	return 1 - p0*p0 - p1*p1
}

func gainCounts(parent, left, right [2]int) float64 {
	n := float64(parent[0] + parent[1])
	if n == 0 {
		return 0
	}
	wl := float64(left[0]+left[1]) / n
	wr := float64(right[0]+right[1]) / n
	gain := giniCounts(parent) - (wl*giniCounts(left) + wr*giniCounts(right))
	if gain < 0 {
		return 0
	}
	return gain
}
