package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/siteask/siteask"
	"github.com/siteask/siteask/rag"
	"github.com/siteask/siteask/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Store    siteask.Store
	Sitemaps siteask.SitemapService
	Indexer  *rag.Indexer
	Asker    siteask.Asker
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service activity to stderr"`

	Serve       ServeCmd       `cmd:"" help:"Start the HTTP API server"`
	Index       IndexCmd       `cmd:"" help:"Crawl a website and index its content"`
	Ask         AskCmd         `cmd:"" help:"Ask a question about an indexed site"`
	Collections CollectionsCmd `cmd:"" help:"List indexed collections"`
	Delete      DeleteCmd      `cmd:"" help:"Delete a collection and its contents"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" default:":8000" env:"SITEASK_ADDR" help:"HTTP listen address"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URL         string `arg:"" help:"Website URL to crawl"`
	Depth       int    `short:"d" default:"2" help:"Maximum link depth from the seed"`
	Pages       int    `short:"p" default:"50" help:"Maximum pages to index"`
	Images      bool   `short:"i" help:"Index image metadata as well"`
	Sitemap     bool   `short:"s" help:"Seed the crawl from the site's sitemap"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Collection string `arg:"" help:"Collection name"`
	Question   string `arg:"" help:"Question to ask about the site"`
}

// CollectionsCmd is the "collections" subcommand.
type CollectionsCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Collection name"`
	Force bool   `help:"Confirm deletion"`
}
