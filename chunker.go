package siteask

import "strings"

// Chunking defaults used by the indexer.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitText splits text into overlapping chunks of at most size bytes.
// Each chunk is a literal substring of the input and consecutive chunks
// share exactly overlap bytes, so concatenating the chunks with the
// overlap removed reconstructs the input. Splitting is deterministic.
//
// Chunk boundaries prefer paragraph breaks, then sentence ends, then word
// breaks, searched within the last half of the size window; a hard cut is
// used when no boundary is found. Text that fits in a single chunk is
// returned unsplit. Whitespace-only input returns nil.
func SplitText(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		limit := start + size
		if limit >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		end := limit
		window := text[start+size/2 : limit]
		if i := strings.LastIndex(window, "\n\n"); i >= 0 {
			end = start + size/2 + i + 2
		} else if i := lastSentenceEnd(window); i >= 0 {
			end = start + size/2 + i + 2
		} else if i := strings.LastIndexAny(window, " \n\t"); i >= 0 {
			end = start + size/2 + i + 1
		}
		chunks = append(chunks, text[start:end])

		next := end - overlap
		if next <= start {
			// Degenerate parameters; forgo the overlap rather than stall.
			next = end
		}
		start = next
	}

	return chunks
}

// lastSentenceEnd returns the index of the last sentence-ending punctuation
// in s that is followed by a space or newline, or -1 if none exists.
func lastSentenceEnd(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			if s[i+1] == ' ' || s[i+1] == '\n' {
				return i
			}
		}
	}
	return -1
}
