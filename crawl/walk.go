package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/siteask/siteask"
)

// drainTimeout bounds how long the coordinator waits for in-flight workers
// after the crawl loop ends.
const drainTimeout = 5 * time.Second

// walkFrontier manages concurrent task processing until the page budget is
// met, the frontier is exhausted, or the context is canceled.
//
// Workers fetch and extract concurrently; every frontier mutation and
// result mutation happens on the coordinator goroutine, so the visited
// check, the enqueue of discovered links, and the success accounting form
// a single serialized critical section per completed fetch.
func (c *Crawler) walkFrontier(ctx context.Context, frontier *Frontier, maxPages int, result *Result, progress ProgressFunc) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}

	// Channels for worker coordination
	workCh := make(chan siteask.CrawlTask, concurrency)
	resultCh := make(chan crawlResult)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range workCh {
				res := c.processTask(ctx, task)
				select {
				case resultCh <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Coordinator loop
	seenHashes := make(map[string]struct{})
	pending := 0
	var next *siteask.CrawlTask

	if task, ok := frontier.Pop(); ok {
		next = &task
	}

coordinatorLoop:
	for {
		// Check termination conditions
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}
		if len(result.Pages) >= maxPages {
			break coordinatorLoop
		}

		// Try to dispatch work or receive results
		if next != nil {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				c.handleResult(&res, frontier, seenHashes, maxPages, result, progress)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				c.handleResult(&res, frontier, seenHashes, maxPages, result, progress)
			}
		}

		// Try to get next task if we don't have one
		if next == nil {
			if task, ok := frontier.Pop(); ok {
				next = &task
			}
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	timeout := time.After(drainTimeout)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			c.handleResult(&res, frontier, seenHashes, maxPages, result, progress)
		case <-timeout:
			break drainLoop
		}
	}
}

// handleResult processes a completed fetch on the coordinator goroutine.
func (c *Crawler) handleResult(res *crawlResult, frontier *Frontier, seenHashes map[string]struct{}, maxPages int, result *Result, progress ProgressFunc) {
	if res.err != nil {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: len(result.Pages),
				URL:       res.task.URL,
				Error:     res.err,
			})
		}
		return
	}

	page := res.page

	// Same content under a different URL adds nothing; its links were
	// already pushed by the first instance.
	if _, dup := seenHashes[page.ContentHash]; dup {
		result.Duplicates++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressSkipped,
				Completed: len(result.Pages),
				URL:       page.URL,
			})
		}
		return
	}

	// Budget may have been met while this fetch was in flight.
	if len(result.Pages) >= maxPages {
		return
	}

	seenHashes[page.ContentHash] = struct{}{}
	result.Pages = append(result.Pages, page)
	result.Bytes += len(page.BodyText)

	for _, link := range page.Links {
		frontier.Push(link, page.Depth+1)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: len(result.Pages),
			URL:       page.URL,
		})
	}
}
