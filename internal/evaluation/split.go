package evaluation

import (
	"math"
	"math/rand"

	"attrition/internal/features"
)

const DefaultTestFraction = 0.2

// TrainTestSplit shuffles sample indices with a Fisher-Yates pass driven by r
// and cuts at floor(n * (1 - testFraction)).
func TrainTestSplit(samples []features.LabeledSample, testFraction float64, r *rand.Rand) (train, test []features.LabeledSample) {
	n := len(samples)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	cut := int(math.Floor(float64(n) * (1 - testFraction)))
	if cut < 0 {
		cut = 0
	}
	if cut > n {
		cut = n
	}
	train = make([]features.LabeledSample, 0, cut)
	test = make([]features.LabeledSample, 0, n-cut)
	for k, i := range perm {
		if k < cut {
			train = append(train, samples[i])
		} else {
			test = append(test, samples[i])
		}
	}
	return train, test
}
