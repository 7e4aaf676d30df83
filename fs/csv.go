package fs

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/contactdir"
)

const utf8BOM = "\ufeff"

var _ contactdir.LocalitySource = (*LocalityFile)(nil)

// LocalityFile reads localities from a CSV file with the columns עיר,
// איזור and קישור in any order.
type LocalityFile struct {
	path string
}

// NewLocalityFile creates a LocalityFile for path.
func NewLocalityFile(path string) *LocalityFile {
	return &LocalityFile{path: path}
}

// Localities reads and returns all usable rows.
func (l *LocalityFile) Localities(ctx context.Context) ([]*contactdir.Locality, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, contactdir.Errorf(contactdir.ENOTFOUND, "localities file %s not found", l.path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLocalities(f)
}

// ReadLocalities parses a localities CSV. A leading byte order mark, as
// written by spreadsheet programs, is ignored.
func ReadLocalities(r io.Reader) ([]*contactdir.Locality, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "reading localities: %v", err)
	}
	return contactdir.ParseLocalityTable(rows)
}
