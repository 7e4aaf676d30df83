package contactdir

import (
	"context"
	"slices"
	"strings"
)

// Locality is a local authority whose website is crawled.
type Locality struct {
	Name   string
	Region string
	URL    string
}

// LocalitySource lists the localities to crawl.
type LocalitySource interface {
	Localities(ctx context.Context) ([]*Locality, error)
}

// ExclusionSet decides which localities are skipped without crawling.
type ExclusionSet interface {
	Excludes(locality string) bool
}

// Locality table column headers.
const (
	ColumnLocality = "עיר"
	ColumnRegion   = "איזור"
	ColumnURL      = "קישור"
)

// localityHeaders lists the accepted spellings of each column.
var localityHeaders = map[string][]string{
	ColumnLocality: {ColumnLocality, "name", "locality", "city"},
	ColumnRegion:   {ColumnRegion, "region"},
	ColumnURL:      {ColumnURL, "url", "link"},
}

// ParseLocalityTable maps a table whose first row is a header onto
// localities. Columns are found by header in any order, Hebrew or English;
// the region column is optional. Rows without a name or URL are skipped.
func ParseLocalityTable(rows [][]string) ([]*Locality, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := make(map[string]int)
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		for col, names := range localityHeaders {
			if _, seen := cols[col]; !seen && slices.Contains(names, h) {
				cols[col] = i
			}
		}
	}
	nameCol, ok := cols[ColumnLocality]
	if !ok {
		return nil, Errorf(EINVALID, "missing column %q", ColumnLocality)
	}
	urlCol, ok := cols[ColumnURL]
	if !ok {
		return nil, Errorf(EINVALID, "missing column %q", ColumnURL)
	}
	regionCol, hasRegion := cols[ColumnRegion]

	field := func(rec []string, i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var out []*Locality
	for _, rec := range rows[1:] {
		loc := &Locality{
			Name: field(rec, nameCol),
			URL:  field(rec, urlCol),
		}
		if hasRegion {
			loc.Region = field(rec, regionCol)
		}
		if loc.Name == "" || loc.URL == "" {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}
