package mock

import "github.com/siteask/siteask"

var _ siteask.ImageClassifier = (*ImageClassifier)(nil)

// ImageClassifier is a mock implementation of siteask.ImageClassifier.
type ImageClassifier struct {
	ClassifyFn func(alt string, imageURL string) siteask.ImageCategory
}

func (c *ImageClassifier) Classify(alt string, imageURL string) siteask.ImageCategory {
	return c.ClassifyFn(alt, imageURL)
}
