package main

import (
	"fmt"

	"github.com/fwojciec/contactdir"
)

// Run executes the fetch-names command.
func (c *FetchNamesCmd) Run(deps *Dependencies) error {
	names, err := deps.NamesSource.Download(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}
	if err := deps.NamesStore.ReplaceAll(deps.Ctx, names); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}
	n, err := deps.NamesStore.Count(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Stored %d given names\n", n)
	return nil
}
