package mock

import "github.com/siteask/siteask"

var _ siteask.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of siteask.Extractor.
type Extractor struct {
	ExtractFn func(body []byte, contentType string, pageURL string) (*siteask.PageRecord, error)
}

func (e *Extractor) Extract(body []byte, contentType string, pageURL string) (*siteask.PageRecord, error) {
	return e.ExtractFn(body, contentType, pageURL)
}
