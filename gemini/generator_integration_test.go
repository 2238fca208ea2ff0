//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/siteask/siteask/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newIntegrationClient(t *testing.T) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestGenerator_Integration_Embed(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(newIntegrationClient(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vector, err := g.Embed(ctx, "The quick brown fox jumps over the lazy dog.")

	require.NoError(t, err)
	assert.NotEmpty(t, vector)
}

func TestGenerator_Integration_EmbedBatch(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(newIntegrationClient(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vectors, err := g.EmbedBatch(ctx, []string{"first text", "second text"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[1], len(vectors[0]), "vectors share one dimension")
}

func TestGenerator_Integration_Complete(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(newIntegrationClient(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	answer, err := g.Complete(ctx, "Excerpts: The Acme Anvil weighs 50 kilograms.\n\nQuestion: How much does the Acme Anvil weigh?")

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}
