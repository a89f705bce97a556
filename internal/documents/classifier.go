package documents

import (
	"math"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
)

const (
	temperature       = 0.5
	minWinningProb    = 0.2
	fallbackConfident = 0.25
)

type Result struct {
	Category      Category             `json:"category"`
	Confidence    int                  `json:"confidence"`
	Probabilities map[Category]float64 `json:"probabilities"`
}

// NaiveBayes is a multinomial model over the keyword lists with uniform
// priors and Laplace smoothing. It is read-only after construction.
type NaiveBayes struct {
	categories []Category
	priors     map[Category]float64
	counts     map[Category]map[string]int
	totals     map[Category]int
	vocab      map[string]struct{}
}

func NewNaiveBayes(vocab map[Category][]string, order []Category) *NaiveBayes {
	nb := &NaiveBayes{
		categories: order,
		priors:     make(map[Category]float64, len(order)),
		counts:     make(map[Category]map[string]int, len(order)),
		totals:     make(map[Category]int, len(order)),
		vocab:      make(map[string]struct{}),
	}
	for _, c := range order {
		nb.priors[c] = 1 / float64(len(order))
		nb.counts[c] = make(map[string]int)
		for _, w := range vocab[c] {
			nb.counts[c][w]++
			nb.totals[c]++
			nb.vocab[w] = struct{}{}
		}
	}
	return nb
}

var (
	defaultModel *NaiveBayes
	defaultOnce  sync.Once
)

// Default returns the model built from the fixed vocabulary; it is
// constructed on first use.
func Default() *NaiveBayes {
	defaultOnce.Do(func() {
		defaultModel = NewNaiveBayes(vocabulary, categories)
	})
	return defaultModel
}

func ClassifyDocument(filename string) Result {
	return Default().Classify(filename)
}

func (nb *NaiveBayes) VocabularySize() int { return len(nb.vocab) }

// Likelihood is (count + 1) / (categoryWordTotal + vocabularySize); unseen
// words have count 0.
func (nb *NaiveBayes) Likelihood(word string, c Category) float64 {
	return float64(nb.counts[c][word]+1) / float64(nb.totals[c]+len(nb.vocab))
}

// Classify tokenizes the filename, scores every category in log space and
// turns the scores into a distribution with a temperature-scaled softmax.
// With no tokens or a winner below 0.2 the result is Other at 25%.
func (nb *NaiveBayes) Classify(filename string) Result {
	tokens := Tokenize(filename)
	if len(tokens) == 0 {
		return nb.fallback()
	}

	logp := make([]float64, len(nb.categories))
	maxLog := math.Inf(-1)
	for i, c := range nb.categories {
		lp := math.Log(nb.priors[c])
		for _, w := range tokens {
			lp += math.Log(nb.Likelihood(w, c))
		}
		logp[i] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}

	sum := 0.0
	for i := range logp {
		logp[i] = math.Exp((logp[i] - maxLog) / temperature)
		sum += logp[i]
	}
	probs := make(map[Category]float64, len(nb.categories))
	best, bestP := Other, -1.0
	for i, c := range nb.categories {
		p := logp[i] / sum
		probs[c] = p
		if p > bestP {
			best, bestP = c, p
		}
	}
	if bestP < minWinningProb {
		return nb.fallback()
	}
	return Result{
		Category:      best,
		Confidence:    int(math.Round(bestP * 100)),
		Probabilities: probs,
	}
}

func (nb *NaiveBayes) ClassifyBatch(filenames []string) []Result {
	out := make([]Result, len(filenames))
	for i, f := range filenames {
		out[i] = nb.Classify(f)
	}
	return out
}

func (nb *NaiveBayes) fallback() Result {
	probs := make(map[Category]float64, len(nb.categories))
	for _, c := range nb.categories {
		probs[c] = 0
	}
	probs[Other] = 1
	return Result{
		Category:      Other,
		Confidence:    int(math.Round(fallbackConfident * 100)),
		Probabilities: probs,
	}
}

// Tokenize drops the extension, splits on '-', '_', '.' and whitespace,
// discards single-character tokens and lowercases the rest.
func Tokenize(filename string) []string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) <= 1 {
			continue
		}
		out = append(out, strings.ToLower(p))
	}
	return out
}
