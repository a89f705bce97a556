package models

import "math/rand"

// bootstrapSample draws len(X) rows with replacement.
func bootstrapSample(X [][]float64, y []int, r *rand.Rand) ([][]float64, []int) {
	n := len(X)
	Xb := make([][]float64, n)
	yb := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.Intn(n)
		Xb[i] = X[j]
		yb[i] = y[j]
	}
	return Xb, yb
}

// fullSample hands every tree the training set as given.
func fullSample(X [][]float64, y []int, _ *rand.Rand) ([][]float64, []int) {
	return X, y
}
