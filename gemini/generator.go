// Package gemini implements embeddings and answer generation using the
// Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/siteask/siteask"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	completionModel = "gemini-2.5-flash"
	embeddingModel  = "text-embedding-004"
)

// DefaultRequestsPerSecond bounds outbound Gemini API calls. The limiter
// applies to embeddings and completions alike.
const DefaultRequestsPerSecond = 2

// Ensure Generator implements siteask.Generator at compile time.
var _ siteask.Generator = (*Generator)(nil)

// Generator implements siteask.Generator using Google Gemini.
type Generator struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// Option configures a Generator.
type Option func(*Generator)

// WithRateLimit overrides the client-side request rate.
func WithRateLimit(rps float64, burst int) Option {
	return func(g *Generator) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 2*DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EmbeddingModelID identifies the embedding model recorded on collections.
func (g *Generator) EmbeddingModelID() string {
	return embeddingModel
}

// Embed returns the embedding vector for a single text.
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns embedding vectors for texts, one per input, in input
// order.
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, siteask.Errorf(siteask.EINVALID, "cannot embed empty text")
		}
	}

	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	result, err := g.client.Models.EmbedContent(ctx, embeddingModel, contents, nil)
	if err != nil {
		return nil, mapError(err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, siteask.Errorf(siteask.EINTERNAL, "gemini returned %d embeddings for %d texts",
			embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, siteask.Errorf(siteask.EINTERNAL, "gemini returned an empty embedding")
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}

// Complete generates an answer for the prompt.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", siteask.Errorf(siteask.EINVALID, "prompt required")
	}

	if err := g.wait(ctx); err != nil {
		return "", err
	}

	result, err := g.client.Models.GenerateContent(ctx, completionModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", mapError(err)
	}
	if result == nil {
		return "", siteask.Errorf(siteask.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a website's content. Answer based only on the provided excerpts. If the answer is not in the excerpts, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// wait blocks until the rate limiter admits another request.
func (g *Generator) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}

// mapError converts Gemini transport failures into application error
// codes, so callers can tell retryable upstream trouble from bad input.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return siteask.Errorf(siteask.ETIMEOUT, "gemini request timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return siteask.Errorf(siteask.EUNAVAILABLE, "gemini request failed: %v", err)
	}
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
