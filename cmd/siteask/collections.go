package main

import (
	"fmt"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/crawl"
)

// Run executes the collections command.
func (c *CollectionsCmd) Run(deps *Dependencies) error {
	collections, err := deps.Store.ListCollections(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	if len(collections) == 0 {
		fmt.Fprintln(deps.Stdout, "No collections found. Use 'siteask index' to create one.")
		return nil
	}

	for _, col := range collections {
		stats, err := deps.Store.Stats(deps.Ctx, col.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages, %d chunks, %d images, %s\n",
			col.Name, col.SourceURL,
			stats.PageCount, stats.ChunkCount, stats.ImageCount,
			crawl.FormatBytes(int(stats.ContentSize)))
	}

	return nil
}
