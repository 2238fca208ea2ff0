package siteask

import (
	"fmt"
	"time"
)

// PageRecord represents the extracted content of a single crawled page.
type PageRecord struct {
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Headings    []string      `json:"headings,omitempty"`
	BodyText    string        `json:"bodyText"`
	Depth       int           `json:"depth"`
	Links       []string      `json:"links,omitempty"`
	Images      []ImageRecord `json:"images,omitempty"`
	ContentHash string        `json:"contentHash"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the page record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Depth < 0 {
		return Errorf(EINVALID, "page depth must not be negative")
	}
	return nil
}

// ImageCategory classifies an image by its likely role on the page.
type ImageCategory string

// Image categories. CategoryNone is a first-class bucket for images no
// classifier rule matched; it is filterable and never an error.
const (
	CategoryNone    ImageCategory = ""
	CategoryLogo    ImageCategory = "logo"
	CategoryBanner  ImageCategory = "banner"
	CategoryProduct ImageCategory = "product"
	CategoryIcon    ImageCategory = "icon"
	CategoryPhoto   ImageCategory = "photo"
	CategoryChart   ImageCategory = "chart"
	CategoryContent ImageCategory = "content"
)

// ImageCategories lists every category a classifier may assign, excluding
// CategoryNone.
func ImageCategories() []ImageCategory {
	return []ImageCategory{
		CategoryLogo,
		CategoryBanner,
		CategoryProduct,
		CategoryIcon,
		CategoryPhoto,
		CategoryChart,
		CategoryContent,
	}
}

// ImageRecord represents an image discovered on a crawled page.
// Width, Height and FileSize are nil when unknown; zero is never used as
// an unknown marker.
type ImageRecord struct {
	ID            string        `json:"id"`
	URL           string        `json:"url"`
	Alt           string        `json:"alt"`
	Width         *int          `json:"width,omitempty"`
	Height        *int          `json:"height,omitempty"`
	FileSize      *int64        `json:"fileSize,omitempty"`
	SourcePageURL string        `json:"sourcePageUrl"`
	Category      ImageCategory `json:"category,omitempty"`
	IndexedAt     time.Time     `json:"indexedAt"`
}

// Validate returns an error if the image record contains invalid fields.
func (img *ImageRecord) Validate() error {
	if img.URL == "" {
		return Errorf(EINVALID, "image URL required")
	}
	if img.SourcePageURL == "" {
		return Errorf(EINVALID, "image source page URL required")
	}
	return nil
}

// Dimensions returns the image size as "WIDTHxHEIGHT", or "" when either
// dimension is unknown.
func (img *ImageRecord) Dimensions() string {
	if img.Width == nil || img.Height == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", *img.Width, *img.Height)
}
