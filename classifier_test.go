package siteask_test

import (
	"testing"

	"github.com/siteask/siteask"
	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		alt  string
		url  string
		want siteask.ImageCategory
	}{
		{
			name: "logo from alt",
			alt:  "Acme Company Logo",
			url:  "https://example.com/assets/header.png",
			want: siteask.CategoryLogo,
		},
		{
			name: "banner from url",
			alt:  "",
			url:  "https://example.com/images/banner-home.jpg",
			want: siteask.CategoryBanner,
		},
		{
			name: "product beats photo when both match",
			alt:  "Product photo of running shoes",
			url:  "https://example.com/shop/shoes.jpg",
			want: siteask.CategoryProduct,
		},
		{
			name: "icon from favicon",
			alt:  "",
			url:  "https://example.com/favicon.ico",
			want: siteask.CategoryIcon,
		},
		{
			name: "chart from alt",
			alt:  "Revenue chart for Q3",
			url:  "https://example.com/static/q3.png",
			want: siteask.CategoryChart,
		},
		{
			name: "no match is the none bucket",
			alt:  "decorative element",
			url:  "https://example.com/static/deco.png",
			want: siteask.CategoryNone,
		},
	}

	c := siteask.NewKeywordClassifier()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.Classify(tt.alt, tt.url))
		})
	}
}

func TestKeywordClassifier_CaseInsensitive(t *testing.T) {
	t.Parallel()

	c := siteask.NewKeywordClassifier()

	assert.Equal(t, siteask.CategoryLogo, c.Classify("ACME LOGO", ""))
	assert.Equal(t, siteask.CategoryBanner, c.Classify("", "https://example.com/BANNER.PNG"))
}
