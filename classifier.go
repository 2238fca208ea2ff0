package siteask

import "strings"

// ImageClassifier assigns a category to an image based on its metadata.
// Implementations must be safe for concurrent use.
type ImageClassifier interface {
	// Classify returns the category for an image given its alt text and
	// absolute URL. Returns CategoryNone when no rule matches.
	Classify(alt string, imageURL string) ImageCategory
}

// KeywordClassifier categorizes images by keyword matches over the alt
// text and the URL path. Rules are checked in order; the first match wins.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default keyword-based classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// classifierRules map keywords to categories. Order matters: more specific
// roles (logo, icon) are checked before generic content markers.
var classifierRules = []struct {
	category ImageCategory
	keywords []string
}{
	{CategoryLogo, []string{"logo", "brand"}},
	{CategoryIcon, []string{"icon", "favicon", "avatar"}},
	{CategoryBanner, []string{"banner", "hero", "cover", "header-image"}},
	{CategoryProduct, []string{"product", "item", "sku", "thumbnail", "thumb"}},
	{CategoryChart, []string{"chart", "graph", "diagram", "plot"}},
	{CategoryPhoto, []string{"photo", "picture", "img_", "image-", "gallery"}},
	{CategoryContent, []string{"figure", "illustration", "screenshot", "content"}},
}

// Classify matches keywords against the lowercased alt text and URL.
func (c *KeywordClassifier) Classify(alt string, imageURL string) ImageCategory {
	haystack := strings.ToLower(alt) + " " + strings.ToLower(imageURL)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}
	return CategoryNone
}
