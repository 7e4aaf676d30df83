package main

import (
	"fmt"

	"github.com/fwojciec/contactdir"
)

// Run executes the empty command.
func (c *EmptyCmd) Run(deps *Dependencies) error {
	results, err := deps.Store.LoadResults(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
		return err
	}

	var empty []string
	for _, name := range results.Empty() {
		if deps.Exclusions != nil && deps.Exclusions.Excludes(name) {
			continue
		}
		empty = append(empty, name)
	}

	for _, name := range empty {
		fmt.Fprintln(deps.Stdout, name)
	}
	fmt.Fprintf(deps.Stderr, "%d of %d localities have no contacts\n", len(empty), len(results))
	return nil
}
