package mock

import (
	"context"

	"github.com/fwojciec/contactdir"
)

// Compile-time interface verification.
var (
	_ contactdir.NameGuesser       = (*NameGuesser)(nil)
	_ contactdir.DepartmentGuesser = (*DepartmentGuesser)(nil)
	_ contactdir.NamesDataset      = (*NamesDataset)(nil)
	_ contactdir.GuessCache        = (*GuessCache)(nil)
)

// NameGuesser is a mock implementation of contactdir.NameGuesser.
type NameGuesser struct {
	AvailableFn func() bool
	GuessNameFn func(ctx context.Context, text string) (string, error)
}

func (g *NameGuesser) Available() bool {
	return g.AvailableFn()
}

func (g *NameGuesser) GuessName(ctx context.Context, text string) (string, error) {
	return g.GuessNameFn(ctx, text)
}

// DepartmentGuesser is a mock implementation of contactdir.DepartmentGuesser.
type DepartmentGuesser struct {
	AvailableFn       func() bool
	GuessDepartmentFn func(ctx context.Context, text, url string) (string, error)
}

func (g *DepartmentGuesser) Available() bool {
	return g.AvailableFn()
}

func (g *DepartmentGuesser) GuessDepartment(ctx context.Context, text, url string) (string, error) {
	return g.GuessDepartmentFn(ctx, text, url)
}

// NamesDataset is a mock implementation of contactdir.NamesDataset.
type NamesDataset struct {
	LookupFn func(ctx context.Context, latin string) (string, error)
}

func (d *NamesDataset) Lookup(ctx context.Context, latin string) (string, error) {
	return d.LookupFn(ctx, latin)
}

// GuessCache is a mock implementation of contactdir.GuessCache.
type GuessCache struct {
	GetFn func(ctx context.Context, kind contactdir.GuessKind, input string) (string, error)
	PutFn func(ctx context.Context, kind contactdir.GuessKind, input, output string) error
}

func (c *GuessCache) Get(ctx context.Context, kind contactdir.GuessKind, input string) (string, error) {
	return c.GetFn(ctx, kind, input)
}

func (c *GuessCache) Put(ctx context.Context, kind contactdir.GuessKind, input, output string) error {
	return c.PutFn(ctx, kind, input, output)
}
