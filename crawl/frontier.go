package crawl

import (
	"container/heap"
	"sync"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/bloom"
)

// Compile-time interface verification.
var _ siteask.Frontier = (*Frontier)(nil)

// Frontier configuration.
const (
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// frontierSizingFactor over-provisions the Bloom filter relative to the
	// page budget, since many more URLs are seen than fetched.
	frontierSizingFactor = 64
	// frontierMinCapacity is the smallest Bloom filter size used.
	frontierMinCapacity = 4096
)

// Frontier is an in-memory breadth-first crawl frontier with Bloom filter
// deduplication and depth and page bounds.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu       sync.Mutex
	scope    *siteask.SiteScope
	seen     *bloom.Filter
	queue    *taskHeap
	seq      int
	popped   int
	maxDepth int
	maxPages int
}

// NewFrontier creates a frontier bounded by maxDepth and maxPages,
// admitting only URLs within scope. A nil scope admits every URL.
func NewFrontier(scope *siteask.SiteScope, maxDepth, maxPages int) *Frontier {
	h := &taskHeap{}
	heap.Init(h)

	capacity := maxPages * frontierSizingFactor
	if capacity < frontierMinCapacity {
		capacity = frontierMinCapacity
	}

	return &Frontier{
		scope:    scope,
		seen:     bloom.NewFilter(uint(capacity), frontierFalsePositiveRate),
		queue:    h,
		maxDepth: maxDepth,
		maxPages: maxPages,
	}
}

// Push adds a URL to the frontier at the given depth. The URL is
// normalized before any checks, so variants differing only by fragment or
// default port are considered duplicates.
//
// Returns false if the URL is invalid, out of scope, beyond the depth
// bound, already seen, or if admitting it would exceed the page budget
// (queued plus popped URLs never exceed maxPages, which also bounds the
// total number of fetch attempts in a run).
func (f *Frontier) Push(rawURL string, depth int) bool {
	url, err := siteask.NormalizeURL(rawURL, "")
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.scope != nil && !f.scope.Contains(url) {
		return false
	}
	if depth > f.maxDepth {
		return false
	}
	if f.queue.Len()+f.popped >= f.maxPages {
		return false
	}
	if f.seen.TestAndAdd(url) {
		return false
	}

	heap.Push(f.queue, frontierTask{
		task: siteask.CrawlTask{URL: url, Depth: depth},
		seq:  f.seq,
	})
	f.seq++
	return true
}

// Pop returns the next task in breadth-first order: lowest depth first,
// insertion order within a depth.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (siteask.CrawlTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return siteask.CrawlTask{}, false
	}
	item, _ := heap.Pop(f.queue).(frontierTask)
	f.popped++
	return item.task, true
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued or popped.
func (f *Frontier) Seen(rawURL string) bool {
	url, err := siteask.NormalizeURL(rawURL, "")
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}

// frontierTask pairs a crawl task with its insertion sequence number.
type frontierTask struct {
	task siteask.CrawlTask
	seq  int
}

// taskHeap implements heap.Interface for breadth-first ordering.
type taskHeap []frontierTask

func (h taskHeap) Len() int { return len(h) }

// Less orders by depth, then by insertion order within a depth.
func (h taskHeap) Less(i, j int) bool {
	if h[i].task.Depth != h[j].task.Depth {
		return h[i].task.Depth < h[j].task.Depth
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	item, _ := x.(frontierTask)
	*h = append(*h, item)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
