package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/extract"
	"github.com/fwojciec/contactdir/fs"
)

// Run executes the names command.
func (c *NamesCmd) Run(deps *Dependencies) error {
	path := c.Audit
	if path == "" {
		path = filepath.Join(deps.OutDir, fs.AuditFile)
	}
	entries, err := fs.ReadAuditLog(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if name := c.hebrewName(deps, e.Contact); name != "" {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)

	w := deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}
	if err := writeLines(w, names); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %d names to %s\n", len(names), c.Output)
	}
	return nil
}

// hebrewName returns the contact's name in Hebrew script. Placeholder names
// fall back to the email address; Latin names are transliterated.
func (c *NamesCmd) hebrewName(deps *Dependencies, contact *contactdir.Contact) string {
	if contact == nil {
		return ""
	}
	name := contact.Name
	if contactdir.IsSentinelName(name) {
		name = extract.NameFromEmail(contact.Email)
	}
	if name == "" || extract.HasHebrew(name) {
		return name
	}
	if heb := deps.Transliterator.Transliterate(deps.Ctx, name); heb != "" {
		return heb
	}
	return extract.BasicTransliterate(name)
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}
