package reuse

// Document is the read-only token stream view the pipeline consumes.
// Implementations must not mutate the returned slices for the lifetime
// of a run; the pipeline shares them across alignment workers.
type Document interface {
	// ID identifies the document within the corpus.
	ID() uint32
	// TokenCount is the stream length.
	TokenCount() int
	// Lemmas returns the flat lemma-id sequence, one per token.
	Lemmas() []uint32
	// Roots returns the flat root-id sequence, one per token. A zero
	// root id means the token has no root.
	Roots() []uint32
	// Location renders a human-readable label for a half-open global
	// token range.
	Location(start, end int) string
}
