package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/siteask/siteask"
	"github.com/siteask/siteask/crawl"
	"github.com/siteask/siteask/gemini"
	"github.com/siteask/siteask/goquery"
	siteaskhttp "github.com/siteask/siteask/http"
	"github.com/siteask/siteask/rag"
	siteaskslog "github.com/siteask/siteask/slog"
	"github.com/siteask/siteask/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the store.
	DB *sqlite.DB

	// Store service for end-to-end testing.
	Store siteask.Store
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteask"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteask --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the command, so resolve it from the parse
	// rather than from args[0]. Command() includes positional
	// placeholders, e.g. "index <url>".
	cmd, _, _ = strings.Cut(kongCtx.Command(), " ")

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEASK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// The server always logs; one-shot commands stay quiet unless -v.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose || cmd == "serve" {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire core services into dependencies
	m.Store = sqlite.NewStore(m.DB)
	deps.DB = m.DB
	deps.Store = m.Store
	deps.Logger = logger

	deps.Sitemaps = siteaskhttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Sitemaps = siteaskslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	// Wire command-specific dependencies based on command. Indexing,
	// asking, and serving all call the Gemini API.
	var generator siteask.Generator
	if cmd == "index" || cmd == "ask" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		generator = gemini.NewGenerator(client)
		if cli.Verbose {
			generator = siteaskslog.NewLoggingGenerator(generator, logger)
		}
	}

	if cmd == "index" || cmd == "serve" {
		var fetcher siteask.Fetcher = siteaskhttp.NewFetcher()
		if cli.Verbose {
			fetcher = siteaskslog.NewLoggingFetcher(fetcher, logger)
		}

		deps.Indexer = &rag.Indexer{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher,
				Extractor: goquery.NewExtractor(),
				Sitemaps:  deps.Sitemaps,
			},
			Generator: generator,
			Store:     m.Store,
			Logger:    logger,
		}
	}

	if cmd == "ask" || cmd == "serve" {
		tokenCounter, err := gemini.NewTokenCounter(gemini.TokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		var asker siteask.Asker = &rag.Synthesizer{
			Retriever:    &rag.Retriever{Generator: generator, Store: m.Store},
			Generator:    generator,
			Store:        m.Store,
			TokenCounter: tokenCounter,
		}
		if cli.Verbose {
			asker = siteaskslog.NewLoggingAsker(asker, logger)
		}
		deps.Asker = asker
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SITEASK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteask.db"
	}
	dir := filepath.Join(home, ".siteask")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteask.db")
}
