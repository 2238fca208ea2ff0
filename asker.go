package siteask

import "context"

// Answer represents a synthesized answer with its source citations.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"text"`

	// Sources lists the distinct source page URLs of the chunks used to
	// build the answer, in rank order.
	Sources []string `json:"sources"`
}

// Asker provides natural language question answering over an indexed
// website.
type Asker interface {
	// Ask answers a natural language question from a collection's
	// indexed content.
	//
	// Returns ENOTFOUND if the collection does not exist, ENOCONTEXT if
	// no relevant content can be retrieved, and EMISMATCH if the
	// collection was indexed with a different embedding model.
	Ask(ctx context.Context, collection string, question string) (*Answer, error)
}
