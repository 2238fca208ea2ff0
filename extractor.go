package siteask

// Extractor extracts structured content from fetched pages.
type Extractor interface {
	// Extract parses the fetched bytes and returns a page record with
	// title, headings, visible body text, outbound links, and image
	// metadata. The pageURL is used to resolve relative references and
	// as the title fallback.
	//
	// Returns EUNSUPPORTED if the content type is not HTML or the bytes
	// cannot be decoded as text. Malformed HTML is tolerated.
	Extract(body []byte, contentType string, pageURL string) (*PageRecord, error)
}
