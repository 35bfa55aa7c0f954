package textsim

import (
	"hash/fnv"
	"math"
)

const (
	embeddingDim = 256
	bigramWeight = 1.35
)

// Embed builds a fixed-dimension hashed bag-of-features vector from the
// text's unigrams and bigrams. Bigrams are up-weighted because adjacent-word
// phrases carry more topical signal than single tokens, and each feature
// gets a crude inverse-length weight standing in for idf. The result is
// L2-normalized; an empty text yields the zero vector.
func Embed(text string) []float64 {
	tokens := Tokenize(text)
	vec := make([]float64, embeddingDim)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		vec[bucket(tok)] += featureWeight(tok)
	}
	for i := 0; i+1 < len(tokens); i++ {
		bi := tokens[i] + " " + tokens[i+1]
		vec[bucket(bi)] += featureWeight(bi) * bigramWeight
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func bucket(feature string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % embeddingDim)
}

// featureWeight favors longer, more specific features, capped so no single
// feature dominates the vector.
func featureWeight(feature string) float64 {
	return math.Min(2.5, 1+float64(len(feature))/8)
}

// Cosine computes cosine similarity between two equal-length vectors,
// clamped to [0,1].
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return clamp01(sim)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
