package ports

// SimilarityScorer computes an integer similarity percentage in [0,100]
// between a claimed and an extracted value.
type SimilarityScorer interface {
	Score(claimed, extracted string) int
}
