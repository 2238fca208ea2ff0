package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/siteask/siteask"
)

// DefaultMaxPromptTokens bounds the assembled prompt when a TokenCounter
// is configured.
const DefaultMaxPromptTokens = 4096

// imageSampleLimit is the number of images listed in an image answer.
const imageSampleLimit = 6

// Ensure Synthesizer implements siteask.Asker at compile time.
var _ siteask.Asker = (*Synthesizer)(nil)

// Synthesizer answers questions by retrieving relevant chunks and asking
// the language model to synthesize an answer grounded in them. Questions
// about images are answered from the stored image inventory without
// calling the model.
type Synthesizer struct {
	Retriever siteask.Retriever
	Generator siteask.Generator
	Store     siteask.Store

	// TokenCounter, if set, trims lowest-ranked chunks until the prompt
	// fits MaxPromptTokens.
	TokenCounter siteask.TokenCounter

	// MaxPromptTokens is the prompt token budget. Zero means
	// DefaultMaxPromptTokens.
	MaxPromptTokens int

	// TopK bounds retrieval. Zero means siteask.DefaultTopK.
	TopK int
}

// Ask answers a natural language question from a collection's indexed
// content.
func (s *Synthesizer) Ask(ctx context.Context, collection string, question string) (*siteask.Answer, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, siteask.Errorf(siteask.EINVALID, "collection name required")
	}
	if strings.TrimSpace(question) == "" {
		return nil, siteask.Errorf(siteask.EINVALID, "question required")
	}

	if IsImageQuestion(question) {
		return s.askImages(ctx, collection)
	}

	matches, err := s.Retriever.Retrieve(ctx, collection, question, siteask.RetrieveOptions{TopK: s.TopK})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, siteask.Errorf(siteask.ENOCONTEXT, "no relevant content found in collection %q", collection)
	}

	used := s.fitToBudget(ctx, matches, question)

	text, err := s.Generator.Complete(ctx, BuildUserPrompt(used, question))
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(used))
	for i, m := range used {
		urls[i] = m.Chunk.SourcePageURL
	}

	return &siteask.Answer{
		Text:    text,
		Sources: distinctSources(urls),
	}, nil
}

// fitToBudget drops lowest-ranked matches until the assembled prompt fits
// the token budget. At least one match is always kept; a token counting
// error ends trimming early.
func (s *Synthesizer) fitToBudget(ctx context.Context, matches []*siteask.ChunkMatch, question string) []*siteask.ChunkMatch {
	if s.TokenCounter == nil {
		return matches
	}

	budget := s.MaxPromptTokens
	if budget <= 0 {
		budget = DefaultMaxPromptTokens
	}

	used := matches
	for len(used) > 1 {
		tokens, err := s.TokenCounter.CountTokens(ctx, BuildUserPrompt(used, question))
		if err != nil || tokens <= budget {
			break
		}
		used = used[:len(used)-1]
	}
	return used
}

// BuildUserPrompt builds the user prompt containing the retrieved excerpts
// and the question. Each excerpt is tagged with its source page URL so the
// model can ground its answer.
func BuildUserPrompt(matches []*siteask.ChunkMatch, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, m := range matches {
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<source>%s</source>\n", m.Chunk.SourcePageURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", m.Chunk.Text)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// imageKeywords routes a question to the image inventory instead of text
// retrieval.
var imageKeywords = []string{"image", "picture", "photo", "show me", "display", "visual"}

// IsImageQuestion reports whether the question asks about images rather
// than text content.
func IsImageQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range imageKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// askImages answers an image question from the stored inventory.
func (s *Synthesizer) askImages(ctx context.Context, collection string) (*siteask.Answer, error) {
	sample, total, err := s.Store.Images(ctx, collection, siteask.ImageFilter{Limit: imageSampleLimit})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &siteask.Answer{
			Text:    "I couldn't find any images on this site.",
			Sources: []string{},
		}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d %s on this site.", total, plural(total, "image"))

	if counts, err := s.categoryCounts(ctx, collection); err == nil && len(counts) > 0 {
		parts := make([]string, len(counts))
		for i, c := range counts {
			name := string(c.category)
			if c.category == siteask.CategoryNone {
				name = "uncategorized"
			}
			parts[i] = fmt.Sprintf("%d %s %s", c.count, name, plural(c.count, "image"))
		}
		fmt.Fprintf(&sb, " These include %s.", strings.Join(parts, ", "))
	}

	sb.WriteString("\n\nA few examples:")
	for _, img := range sample {
		alt := img.Alt
		if alt == "" {
			alt = "untitled"
		}
		fmt.Fprintf(&sb, "\n- %s (%s)", alt, img.URL)
	}
	if total > len(sample) {
		fmt.Fprintf(&sb, "\n\nShowing %d of %d.", len(sample), total)
	}

	urls := make([]string, len(sample))
	for i, img := range sample {
		urls[i] = img.SourcePageURL
	}

	return &siteask.Answer{
		Text:    sb.String(),
		Sources: distinctSources(urls),
	}, nil
}

// categoryCount pairs a category with its image total.
type categoryCount struct {
	category siteask.ImageCategory
	count    int
}

// categoryCounts returns per-category totals in the store's category
// order.
func (s *Synthesizer) categoryCounts(ctx context.Context, collection string) ([]categoryCount, error) {
	categories, err := s.Store.ImageCategories(ctx, collection)
	if err != nil {
		return nil, err
	}

	counts := make([]categoryCount, 0, len(categories))
	for _, category := range categories {
		category := category
		_, total, err := s.Store.Images(ctx, collection, siteask.ImageFilter{
			Category: &category,
			Limit:    1,
		})
		if err != nil {
			return nil, err
		}
		if total > 0 {
			counts = append(counts, categoryCount{category: category, count: total})
		}
	}
	return counts, nil
}

// distinctSources returns urls with duplicates removed, preserving first
// appearance order. Each page is cited once, ranked by its best chunk.
func distinctSources(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
