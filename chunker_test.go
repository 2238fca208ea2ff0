package siteask_test

import (
	"strings"
	"testing"

	"github.com/siteask/siteask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reassemble concatenates chunks with the shared overlap removed.
func reassemble(chunks []string, overlap int) string {
	var sb strings.Builder
	for i, c := range chunks {
		if i == 0 {
			sb.WriteString(c)
			continue
		}
		sb.WriteString(c[overlap:])
	}
	return sb.String()
}

func TestSplitText_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, siteask.SplitText("", 1000, 200))
	assert.Nil(t, siteask.SplitText("   \n\t  ", 1000, 200))
}

func TestSplitText_ShortInputSingleChunk(t *testing.T) {
	t.Parallel()

	text := "A short paragraph that fits in one chunk."
	chunks := siteask.SplitText(text, 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitText_Lossless(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	text := sb.String()

	chunks := siteask.SplitText(text, 1000, 200)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1000)
	}
	assert.Equal(t, text, reassemble(chunks, 200))
}

func TestSplitText_ConsecutiveChunksShareOverlap(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. ", 100)
	chunks := siteask.SplitText(text, 500, 100)
	require.Greater(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		assert.Equal(t, prev[len(prev)-100:], cur[:100])
	}
}

func TestSplitText_Deterministic(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("Some repeated sentence for splitting. ", 120)

	first := siteask.SplitText(text, 800, 160)
	second := siteask.SplitText(text, 800, 160)

	assert.Equal(t, first, second)
}

func TestSplitText_Idempotent(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("Chunks already within the size fit unchanged. ", 80)
	for _, c := range siteask.SplitText(text, 600, 120) {
		again := siteask.SplitText(c, 600, 120)
		require.Len(t, again, 1)
		assert.Equal(t, c, again[0])
	}
}

func TestSplitText_PrefersParagraphBoundary(t *testing.T) {
	t.Parallel()

	para1 := strings.Repeat("a", 60)
	para2 := strings.Repeat("b", 60)
	text := para1 + "\n\n" + para2

	chunks := siteask.SplitText(text, 100, 20)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"), "first chunk should end at the paragraph break")
	assert.Equal(t, text, reassemble(chunks, 20))
}

func TestSplitText_PrefersSentenceBoundary(t *testing.T) {
	t.Parallel()

	// No paragraph breaks; a sentence ends inside the second half of the
	// first window.
	text := strings.Repeat("x", 70) + ". " + strings.Repeat("y", 70)

	chunks := siteask.SplitText(text, 100, 10)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], ". "), "first chunk should end after the sentence")
	assert.Equal(t, text, reassemble(chunks, 10))
}

func TestSplitText_HardCutWithoutBoundaries(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("z", 2500)
	chunks := siteask.SplitText(text, 1000, 200)

	require.Greater(t, len(chunks), 1)
	assert.Len(t, chunks[0], 1000)
	assert.Equal(t, text, reassemble(chunks, 200))
}
