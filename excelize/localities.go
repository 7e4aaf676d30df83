// Package excelize reads locality lists from Excel workbooks, the format
// government registries of local authorities are published in.
package excelize

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/contactdir"
	"github.com/xuri/excelize/v2"
)

var _ contactdir.LocalitySource = (*LocalityWorkbook)(nil)

// LocalityWorkbook reads localities from the first worksheet of an .xlsx
// file whose header row holds the columns עיר, איזור and קישור.
type LocalityWorkbook struct {
	path string

	// Sheet selects a worksheet by name instead of the first one.
	Sheet string
}

// NewLocalityWorkbook creates a LocalityWorkbook for path.
func NewLocalityWorkbook(path string) *LocalityWorkbook {
	return &LocalityWorkbook{path: path}
}

// Localities reads and returns all usable rows.
func (w *LocalityWorkbook) Localities(ctx context.Context) ([]*contactdir.Locality, error) {
	f, err := os.Open(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, contactdir.Errorf(contactdir.ENOTFOUND, "localities workbook %s not found", w.path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLocalities(f, w.Sheet)
}

// ReadLocalities parses a workbook from r. An empty sheet name selects the
// first worksheet.
func ReadLocalities(r io.Reader, sheet string) ([]*contactdir.Locality, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "opening workbook: %v", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, contactdir.Errorf(contactdir.ENOTFOUND, "worksheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "reading worksheet %q: %v", sheet, err)
	}
	return contactdir.ParseLocalityTable(rows)
}
