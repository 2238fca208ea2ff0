package mock

import "github.com/siteask/siteask"

var _ siteask.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of siteask.Frontier.
type Frontier struct {
	PushFn func(url string, depth int) bool
	PopFn  func() (siteask.CrawlTask, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(url string, depth int) bool {
	return f.PushFn(url, depth)
}

func (f *Frontier) Pop() (siteask.CrawlTask, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}
