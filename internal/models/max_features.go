package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxFeatures is the per-node feature subsampling policy of an ensemble:
// "sqrt", "log2", "all" or a fixed positive integer.
type MaxFeatures string

const (
	MaxFeaturesSqrt MaxFeatures = "sqrt"
	MaxFeaturesLog2 MaxFeatures = "log2"
	MaxFeaturesAll  MaxFeatures = "all"
)

func ParseMaxFeatures(s string) (MaxFeatures, error) {
	m := MaxFeatures(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return MaxFeaturesSqrt, nil
	}
	if _, err := m.Resolve(1); err != nil {
		return "", err
	}
	return m, nil
}

// Resolve returns how many features each node considers, in [1, nFeatures].
func (m MaxFeatures) Resolve(nFeatures int) (int, error) {
	if nFeatures <= 0 {
		return 0, ErrEmptyData
	}
	var k int
	switch m {
	case MaxFeaturesSqrt, "":
		k = int(math.Floor(math.Sqrt(float64(nFeatures))))
	case MaxFeaturesLog2:
		k = int(math.Floor(math.Log2(float64(nFeatures))))
	case MaxFeaturesAll:
		k = nFeatures
	default:
		n, err := strconv.Atoi(string(m))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFeatures, string(m))
		}
		k = n
	}
	if k < 1 {
		k = 1
	}
	if k > nFeatures {
		k = nFeatures
	}
	return k, nil
}
