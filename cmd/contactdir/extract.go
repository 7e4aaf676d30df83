package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/contactdir"
	"github.com/fwojciec/contactdir/goquery"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := readInput(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	text := string(data)
	if c.HTML || isHTMLFile(c.File) {
		page, err := goquery.NewParser().ParsePage(text, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactdir.ErrorMessage(err))
			return err
		}
		text = page.Text
	}

	set := contactdir.NewContactSet()
	for _, contact := range deps.Builder.ExtractText(deps.Ctx, text, c.Locality, c.URL) {
		set.Add(contact)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
