// Package goquery implements HTML content extraction using the goquery
// HTML parsing library.
package goquery

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/siteask/siteask"
	"golang.org/x/net/html/charset"
)

// removedElements are stripped before body text extraction. They carry
// page chrome and machinery, not content.
const removedElements = "script, style, noscript, nav, header, footer, iframe, svg"

// blockElements delimit paragraphs in the extracted body text.
const blockElements = "p, h1, h2, h3, h4, h5, h6, li, pre, blockquote, td, th, dt, dd"

// Extractor parses HTML documents into page records.
type Extractor struct {
	// Classifier assigns categories to extracted images. Defaults to the
	// keyword classifier.
	Classifier siteask.ImageClassifier
}

var _ siteask.Extractor = (*Extractor)(nil)

// NewExtractor returns an Extractor using the default keyword classifier.
func NewExtractor() *Extractor {
	return &Extractor{Classifier: siteask.NewKeywordClassifier()}
}

// Extract parses an HTML document into a page record. Only HTML content
// types are accepted; an empty content type is sniffed from the body.
// Malformed markup is tolerated, so extraction fails only for non-HTML or
// undecodable input, both reported as EUNSUPPORTED.
func (e *Extractor) Extract(body []byte, contentType string, pageURL string) (*siteask.PageRecord, error) {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	if !isHTMLType(contentType) {
		return nil, siteask.Errorf(siteask.EUNSUPPORTED, "unsupported content type %q for %s", contentType, pageURL)
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, siteask.Errorf(siteask.EUNSUPPORTED, "undecodable document at %s: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, siteask.Errorf(siteask.EUNSUPPORTED, "failed to parse HTML at %s: %v", pageURL, err)
	}

	return &siteask.PageRecord{
		URL:      pageURL,
		Title:    extractTitle(doc, pageURL),
		Headings: extractHeadings(doc),
		BodyText: extractBodyText(doc),
		Links:    extractLinks(doc, pageURL),
		Images:   e.extractImages(doc, pageURL),
	}, nil
}

// isHTMLType reports whether a content type labels an HTML document.
func isHTMLType(contentType string) bool {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// extractTitle returns the document title, falling back to the first h1
// and finally the page URL itself.
func extractTitle(doc *goquery.Document, pageURL string) string {
	if title := collapseWhitespace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := collapseWhitespace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return pageURL
}

// extractHeadings returns h1-h3 texts in document order, empties dropped.
func extractHeadings(doc *goquery.Document) []string {
	var headings []string
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := collapseWhitespace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}

// extractBodyText returns the visible text of the document body with
// paragraph breaks between block elements. Chrome elements are removed
// from a clone, so link and image extraction still see the full document.
func extractBodyText(doc *goquery.Document) string {
	cleaned := doc.Clone()
	cleaned.Find(removedElements).Remove()
	body := cleaned.Find("body")

	var blocks []string
	body.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		// Nested blocks are covered by their outermost ancestor.
		if sel.ParentsFiltered(blockElements).Length() > 0 {
			return
		}
		if text := collapseWhitespace(sel.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return collapseWhitespace(body.Text())
	}
	return strings.Join(blocks, "\n\n")
}

// extractLinks returns anchor targets resolved against the page URL,
// deduplicated in first-seen order. Self-references and non-HTTP schemes
// are dropped; scope filtering is the frontier's job, not ours.
func extractLinks(doc *goquery.Document, pageURL string) []string {
	self, _ := siteask.NormalizeURL(pageURL, "")

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, err := siteask.NormalizeURL(href, pageURL)
		if err != nil {
			return
		}
		if resolved == self || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}

// extractImages returns img elements with resolvable absolute sources,
// deduplicated by URL. Dimensions are recorded only when both attributes
// parse as positive integers; unknown stays nil.
func (e *Extractor) extractImages(doc *goquery.Document, pageURL string) []siteask.ImageRecord {
	classifier := e.Classifier
	if classifier == nil {
		classifier = siteask.NewKeywordClassifier()
	}

	seen := make(map[string]bool)
	var images []siteask.ImageRecord
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, exists := sel.Attr("src")
		if !exists {
			return
		}
		resolved, err := siteask.NormalizeURL(src, pageURL)
		if err != nil {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		img := siteask.ImageRecord{
			URL:           resolved,
			Alt:           alt,
			SourcePageURL: pageURL,
			Category:      classifier.Classify(alt, resolved),
		}
		if w, h, ok := parseDimensions(sel); ok {
			img.Width, img.Height = &w, &h
		}
		images = append(images, img)
	})
	return images
}

// parseDimensions returns the width and height attributes when both are
// positive integers.
func parseDimensions(sel *goquery.Selection) (int, int, bool) {
	w, err := strconv.Atoi(strings.TrimSpace(sel.AttrOr("width", "")))
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(sel.AttrOr("height", "")))
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
