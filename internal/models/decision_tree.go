package models

import (
	"math/rand"
	"sort"
	"time"
)

const noChild = -1

// DTNode is one entry of the tree's node arena. Internal nodes reference
// their children by index into DecisionTree.Nodes; leaves have Left and
// Right set to noChild.
type DTNode struct {
	Feature    int
	Threshold  float64
	Left       int
	Right      int
	Samples    int
	IsLeaf     bool
	Prediction int
}

type DecisionTree struct {
	MaxDepth        int
	MinSamplesSplit int
	// FeatureSubset is the number of features drawn at each node; 0 means all.
	FeatureSubset int
	RandomSplits  bool
	Rand          *rand.Rand

	Nodes       []DTNode
	Importances []float64
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MaxDepth: 10, MinSamplesSplit: 2}
}

func (dt *DecisionTree) Name() string { return "DecisionTree" }

type buildTask struct {
	node  int
	idx   []int
	depth int
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

func (dt *DecisionTree) Fit(X [][]float64, y []int) error {
	nFeats, err := validate(X, y)
	if err != nil {
		return err
	}
	if dt.Rand == nil {
		dt.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	dt.Importances = make([]float64, nFeats)
	dt.Nodes = append(dt.Nodes[:0], DTNode{Left: noChild, Right: noChild})

	stack := []buildTask{{node: 0, idx: idx, depth: 0}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		counts := classCounts(y, t.idx)
		majority := majorityLabel(y, t.idx)
		n := len(t.idx)
		if t.depth >= dt.MaxDepth || n < dt.MinSamplesSplit || counts[0] == 0 || counts[1] == 0 {
			dt.setLeaf(t.node, majority, n)
			continue
		}

		s, ok := dt.bestSplit(X, y, t.idx, counts, nFeats)
		if !ok {
			dt.setLeaf(t.node, majority, n)
			continue
		}
		lIdx, rIdx := splitIdx(X, t.idx, s.feature, s.threshold)
		if len(lIdx) == 0 || len(rIdx) == 0 {
			dt.setLeaf(t.node, majority, n)
			continue
		}

		dt.Importances[s.feature] += s.gain * float64(n)
		left := len(dt.Nodes)
		right := left + 1
		dt.Nodes = append(dt.Nodes,
			DTNode{Left: noChild, Right: noChild},
			DTNode{Left: noChild, Right: noChild},
		)
		dt.Nodes[t.node] = DTNode{
			Feature:   s.feature,
			Threshold: s.threshold,
			Left:      left,
			Right:     right,
			Samples:   n,
		}
		stack = append(stack,
			buildTask{node: right, idx: rIdx, depth: t.depth + 1},
			buildTask{node: left, idx: lIdx, depth: t.depth + 1},
		)
	}

	normalize(dt.Importances)
	return nil
}

func (dt *DecisionTree) setLeaf(node, label, samples int) {
	dt.Nodes[node] = DTNode{
		Left:       noChild,
		Right:      noChild,
		Samples:    samples,
		IsLeaf:     true,
		Prediction: label,
	}
}

func (dt *DecisionTree) bestSplit(X [][]float64, y []int, idx []int, counts [2]int, nFeats int) (split, bool) {
	best := split{feature: -1}
	for _, f := range dt.pickFeatures(nFeats) {
		var s split
		var ok bool
		if dt.RandomSplits {
			s, ok = dt.randomSplit(X, y, idx, counts, f)
		} else {
			s, ok = optimalSplit(X, y, idx, counts, f)
		}
		if ok && s.gain > best.gain {
			best = s
		}
	}
	return best, best.feature >= 0 && best.gain > 0
}

// optimalSplit tries the midpoint between every pair of adjacent distinct
// values of feature f and keeps the one with the highest gain.
func optimalSplit(X [][]float64, y []int, idx []int, counts [2]int, f int) (split, bool) {
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.SliceStable(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

	best := split{feature: -1}
	var left [2]int
	for k := 0; k < len(sorted)-1; k++ {
		left[y[sorted[k]]]++
		v, next := X[sorted[k]][f], X[sorted[k+1]][f]
		if v == next {
			continue
		}
		right := [2]int{counts[0] - left[0], counts[1] - left[1]}
		gain := gainCounts(counts, left, right)
		if gain > best.gain {
			best = split{feature: f, threshold: (v + next) / 2, gain: gain}
		}
	}
	return best, best.feature >= 0
}

// randomSplit draws a single threshold uniformly between the observed min and
// max of feature f.
func (dt *DecisionTree) randomSplit(X [][]float64, y []int, idx []int, counts [2]int, f int) (split, bool) {
	lo, hi := X[idx[0]][f], X[idx[0]][f]
	for _, i := range idx[1:] {
		v := X[i][f]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return split{feature: -1}, false
	}
	thr := lo + dt.Rand.Float64()*(hi-lo)
	var left, right [2]int
	for _, i := range idx {
		if X[i][f] <= thr {
			left[y[i]]++
		} else {
			right[y[i]]++
		}
	}
	if left[0]+left[1] == 0 || right[0]+right[1] == 0 {
		return split{feature: -1}, false
	}
	return split{feature: f, threshold: thr, gain: gainCounts(counts, left, right)}, true
}

// Predict walks the tree to a leaf and returns its majority label. An unfitted
// tree predicts 0.
func (dt *DecisionTree) Predict(x []float64) int {
	if len(dt.Nodes) == 0 {
		return 0
	}
	n := 0
	for !dt.Nodes[n].IsLeaf {
		node := dt.Nodes[n]
		if x[node.Feature] <= node.Threshold {
			n = node.Left
		} else {
			n = node.Right
		}
	}
	return dt.Nodes[n].Prediction
}

// PredictProba returns the hard class of the reached leaf as 0 or 1; leaves
// do not keep class frequencies. Ensembles derive probabilities from votes.
func (dt *DecisionTree) PredictProba(x []float64) float64 {
	return float64(dt.Predict(x))
}

func (dt *DecisionTree) FeatureImportances() []float64 {
	out := make([]float64, len(dt.Importances))
	copy(out, dt.Importances)
	return out
}

// Depth is the number of edges on the longest root-to-leaf path.
func (dt *DecisionTree) Depth() int {
	if len(dt.Nodes) == 0 {
		return 0
	}
	type item struct{ node, depth int }
	deepest := 0
	stack := []item{{0, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > deepest {
			deepest = it.depth
		}
		if n := dt.Nodes[it.node]; !n.IsLeaf {
			stack = append(stack, item{n.Left, it.depth + 1}, item{n.Right, it.depth + 1})
		}
	}
	return deepest
}

func (dt *DecisionTree) pickFeatures(nFeats int) []int {
	idx := make([]int, nFeats)
	for i := range idx {
		idx[i] = i
	}
	k := dt.FeatureSubset
	if k <= 0 || k >= nFeats {
		return idx
	}
	for i := 0; i < k; i++ {
		j := i + dt.Rand.Intn(nFeats-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func classCounts(y []int, idx []int) [2]int {
	var c [2]int
	for _, i := range idx {
		c[y[i]]++
	}
	return c
}

// majorityLabel returns the most frequent label; on a tie the label seen
// first in idx wins. An empty set yields 0.
func majorityLabel(y []int, idx []int) int {
	if len(idx) == 0 {
		return 0
	}
	c := classCounts(y, idx)
	if c[0] == c[1] {
		return y[idx[0]]
	}
	if c[1] > c[0] {
		return 1
	}
	return 0
}

func splitIdx(X [][]float64, idx []int, f int, thr float64) ([]int, []int) {
	l := make([]int, 0, len(idx))
	r := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][f] <= thr {
			l = append(l, i)
		} else {
			r = append(r, i)
		}
	}
	return l, r
}

func normalize(v []float64) {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total == 0 {
		return
	}
	for i := range v {
		v[i] /= total
	}
}
