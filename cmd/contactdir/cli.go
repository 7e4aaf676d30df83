package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/extract"
	"github.com/fwojciec/contactdir/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// OutDir holds the results file, per-locality files and the JSONL logs.
	OutDir string
	Store  *fs.ContactStore

	Builder        *extract.Builder
	Transliterator *extract.Transliterator
	Sitemaps       contactdir.SitemapService
	Exclusions     contactdir.ExclusionSet
	NewFetcher     func(ctx context.Context) (contactdir.Fetcher, error)

	NamesSource NamesSource
	NamesStore  NamesStore
}

// NamesSource downloads the given names dataset.
type NamesSource interface {
	Download(ctx context.Context) (map[string]string, error)
}

// NamesStore persists the given names dataset.
type NamesStore interface {
	ReplaceAll(ctx context.Context, names map[string]string) error
	Count(ctx context.Context) (int, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out        string `short:"o" env:"CONTACTDIR_OUT" default:"output" type:"path" help:"Output directory"`
	DB         string `env:"CONTACTDIR_DB" type:"path" help:"Cache database (default: <out>/cache.db)"`
	GeminiKey  string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key; name and department guessing is off without it"`
	Exclusions string `type:"existingfile" help:"File of localities to skip, one per line (default: built-in list)"`
	Verbose    bool   `short:"v" help:"Log debug output"`

	Crawl      CrawlCmd      `cmd:"" help:"Crawl locality websites and extract contacts"`
	Extract    ExtractCmd    `cmd:"" help:"Extract contacts from a saved text or HTML file"`
	Discover   DiscoverCmd   `cmd:"" help:"List the contact pages a crawl would visit"`
	Names      NamesCmd      `cmd:"" help:"Collect the unique Hebrew names found so far"`
	Empty      EmptyCmd      `cmd:"" help:"List localities with no contacts"`
	FetchNames FetchNamesCmd `cmd:"" name:"fetch-names" help:"Download the given names dataset into the cache"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Localities  string        `arg:"" type:"existingfile" help:"Localities CSV or XLSX file (columns עיר, איזור, קישור)"`
	Only        []string      `short:"l" name:"locality" help:"Crawl only these localities (repeatable)"`
	Concurrency int           `short:"c" default:"5" help:"Localities crawled at once"`
	Timeout     time.Duration `default:"60s" help:"Time limit per locality"`
	Depth       int           `default:"2" help:"Link hops followed from the home page"`
	MaxPages    int           `default:"200" help:"Page limit per locality"`
	Force       bool          `short:"f" help:"Re-crawl localities that already have contacts"`
	Render      bool          `help:"Render pages in headless Chrome"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" help:"Text or HTML file, or - for stdin"`
	Locality string `short:"l" help:"Locality name recorded on contacts"`
	URL      string `short:"u" help:"Source URL recorded on contacts"`
	HTML     bool   `help:"Parse input as HTML (default: by file extension)"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL    string `arg:"" help:"Locality home page"`
	Depth  int    `default:"2" help:"Link hops followed from the home page"`
	Render bool   `help:"Render pages in headless Chrome"`
}

// NamesCmd is the "names" subcommand.
type NamesCmd struct {
	Audit  string `type:"path" help:"Audit log (default: <out>/audit.jsonl)"`
	Output string `short:"w" type:"path" help:"Write names to this file instead of stdout"`
}

// EmptyCmd is the "empty" subcommand.
type EmptyCmd struct{}

// FetchNamesCmd is the "fetch-names" subcommand.
type FetchNamesCmd struct{}
