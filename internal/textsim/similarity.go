package textsim

import "strings"

const (
	lexicalWeight   = 0.35
	embeddingWeight = 0.65
)

// Lexical scores token-set overlap divided by the smaller set's size. This
// is containment, not symmetric Jaccard: a module description is usually
// much longer than a resource title, and a title fully contained in the
// description should score high regardless of the length gap.
func Lexical(a, b string) float64 {
	setA := tokenSet(Tokenize(a))
	setB := tokenSet(Tokenize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	small, large := setA, setB
	if len(setB) < len(setA) {
		small, large = setB, setA
	}

	overlap := 0
	for t := range small {
		if _, ok := large[t]; ok {
			overlap++
		}
	}
	return clamp01(float64(overlap) / float64(len(small)))
}

// Hybrid blends lexical containment with hashed-embedding cosine. The
// embedding side carries more weight because it tolerates vocabulary
// mismatch between an abstract module description and a concrete title.
// Texts made only of sub-minimum tokens (a topic like "Go") tokenize to
// nothing and would score 0 against themselves, so equal non-empty inputs
// short-circuit to 1 before tokenization.
func Hybrid(a, b string) float64 {
	if ta, tb := strings.TrimSpace(a), strings.TrimSpace(b); ta != "" && strings.EqualFold(ta, tb) {
		return 1
	}
	lex := Lexical(a, b)
	emb := Cosine(Embed(a), Embed(b))
	return clamp01(lexicalWeight*lex + embeddingWeight*emb)
}
