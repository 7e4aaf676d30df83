package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/crawl"
	"github.com/fwojciec/contactdir/excelize"
	"github.com/fwojciec/contactdir/fs"
	"github.com/fwojciec/contactdir/goquery"
	cdslog "github.com/fwojciec/contactdir/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	localities, err := localitySource(c.Localities).Localities(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}
	if len(c.Only) > 0 {
		localities = slices.DeleteFunc(localities, func(l *contactdir.Locality) bool {
			return !slices.Contains(c.Only, l.Name)
		})
		if len(localities) == 0 {
			err := contactdir.Errorf(contactdir.ENOTFOUND, "no matching localities in %s", c.Localities)
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
			return err
		}
	}

	audit, err := fs.OpenAuditLog(filepath.Join(deps.OutDir, fs.AuditFile))
	if err != nil {
		return err
	}
	defer audit.Close()
	failures, err := fs.OpenFailureLog(filepath.Join(deps.OutDir, fs.FailuresFile))
	if err != nil {
		return err
	}
	defer failures.Close()

	store := cdslog.NewLoggingContactStore(deps.Store, deps.Logger)
	runner := &crawl.Runner{
		Crawler: crawl.Crawler{
			Parser:      goquery.NewParser(),
			Links:       crawl.NewKeywordSelector(),
			Builder:     deps.Builder,
			Sitemaps:    deps.Sitemaps,
			RateLimiter: crawl.NewDomainLimiter(1.0),
			Store:       store,
			Audit:       audit,
			Logger:      deps.Logger,
			MaxDepth:    c.Depth,
			MaxPages:    c.MaxPages,
		},
		NewFetcher:  deps.NewFetcher,
		Store:       store,
		Failures:    failures,
		Exclusions:  deps.Exclusions,
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
		Timeout:     c.Timeout,
		Force:       c.Force,
	}

	deps.Logger.Info("crawl started", "run", audit.RunID(), "localities", len(localities))
	summary, err := runner.Run(deps.Ctx, localities)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d localities, found %d contacts (%d skipped)\n",
		summary.Localities, summary.Contacts, summary.Skipped)
	for _, reason := range slices.Sorted(maps.Keys(summary.Failed)) {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", reasonLabel(reason), summary.Failed[reason])
	}
	fmt.Fprintf(deps.Stdout, "Results written to %s\n", deps.Store.ResultsPath())
	return deps.Ctx.Err()
}

// localitySource picks the reader for path by its extension.
func localitySource(path string) contactdir.LocalitySource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return excelize.NewLocalityWorkbook(path)
	default:
		return fs.NewLocalityFile(path)
	}
}

func reasonLabel(r contactdir.FailureReason) string {
	if r == contactdir.FailureEmpty {
		return "no contacts"
	}
	return string(r)
}
