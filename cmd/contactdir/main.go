// Command contactdir builds a contact directory of Israeli local
// authorities by crawling their websites.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/extract"
	"github.com/fwojciec/contactdir/fs"
	"github.com/fwojciec/contactdir/gemini"
	cdhttp "github.com/fwojciec/contactdir/http"
	"github.com/fwojciec/contactdir/levenshtein"
	"github.com/fwojciec/contactdir/rod"
	cdslog "github.com/fwojciec/contactdir/slog"
	"github.com/fwojciec/contactdir/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

//go:embed exclusions.txt
var defaultExclusions []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the guess cache and names dataset.
	DB *sqlite.DB

	// HTTPClient is used for sitemaps and the names dataset download.
	HTTPClient *http.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{HTTPClient: http.DefaultClient}
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("contactdir"),
		kong.Description("Contact directory extractor for Israeli local authority websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'contactdir --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.OutDir = cli.Out
	deps.Store = fs.NewContactStore(cli.Out)

	deps.Exclusions, err = loadExclusions(cli.Exclusions)
	if err != nil {
		return err
	}

	switch cmd {
	case "crawl <localities>", "extract <file>", "names", "fetch-names":
		if err := m.openDB(cli); err != nil {
			fmt.Fprintln(stderr, "Hint: Set CONTACTDIR_DB to use a different database path")
			return err
		}
		defer m.Close()
	}

	switch cmd {
	case "crawl <localities>", "extract <file>", "names":
		if err := m.wireExtraction(ctx, cli, deps); err != nil {
			return err
		}
	case "fetch-names":
		deps.NamesSource = cdhttp.NewNamesClient(m.HTTPClient)
		deps.NamesStore = sqlite.NewNameService(m.DB)
	}

	switch cmd {
	case "crawl <localities>":
		deps.Sitemaps = cdslog.NewLoggingSitemapService(cdhttp.NewSitemapService(m.HTTPClient), deps.Logger)
		deps.NewFetcher = newFetcherFunc(cli.Crawl.Render, deps.Logger)
	case "discover <url>":
		deps.Sitemaps = cdslog.NewLoggingSitemapService(cdhttp.NewSitemapService(m.HTTPClient), deps.Logger)
		deps.NewFetcher = newFetcherFunc(cli.Discover.Render, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(cli *CLI) error {
	path := cli.DB
	if path == "" {
		if err := os.MkdirAll(cli.Out, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		path = filepath.Join(cli.Out, "cache.db")
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// wireExtraction builds the contact builder. Without an API key the
// language model is simply absent and the heuristics run alone.
func (m *Main) wireExtraction(ctx context.Context, cli *CLI, deps *Dependencies) error {
	cache := sqlite.NewGuessCache(m.DB)

	var guesser cdslog.Guesser
	if cli.GeminiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		guesser = cdslog.NewLoggingGuesser(gemini.NewGuesser(client, cache), deps.Logger)
	} else {
		deps.Logger.Info("GEMINI_API_KEY not set, name and department guessing disabled")
	}

	deps.Transliterator = &extract.Transliterator{
		Cache:   cache,
		Dataset: sqlite.NewNameService(m.DB),
		Guesser: guesser,
	}
	deps.Builder = extract.NewBuilder(guesser, guesser, deps.Transliterator)
	return nil
}

// newFetcherFunc returns the per-locality fetcher factory. Static HTTP is
// the default; rendering launches one browser per locality.
func newFetcherFunc(render bool, logger *slog.Logger) func(context.Context) (contactdir.Fetcher, error) {
	return func(ctx context.Context) (contactdir.Fetcher, error) {
		if !render {
			return cdslog.NewLoggingFetcher(cdhttp.NewFetcher(), logger), nil
		}
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, err
		}
		return cdslog.NewLoggingFetcher(f, logger), nil
	}
}

func loadExclusions(path string) (*levenshtein.ExclusionSet, error) {
	if path == "" {
		return levenshtein.ReadExclusionSet(bytes.NewReader(defaultExclusions))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exclusions: %w", err)
	}
	defer f.Close()
	return levenshtein.ReadExclusionSet(f)
}
