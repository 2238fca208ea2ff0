package siteask

import "context"

// Generator provides text embeddings and completions from a language
// model provider.
type Generator interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns embedding vectors for texts, one per input, in
	// input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// EmbeddingModelID identifies the embedding model. The identifier is
	// recorded on every collection at index time and compared at query
	// time to detect incompatible vector spaces.
	EmbeddingModelID() string

	// Complete generates a completion for the prompt.
	// Returns EUNAVAILABLE when the provider rate limits or is down.
	Complete(ctx context.Context, prompt string) (string, error)
}
