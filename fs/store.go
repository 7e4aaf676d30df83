package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/contactdir"
)

// File names under the output directory.
const (
	ResultsFile  = "contacts.json"
	AuditFile    = "audit.jsonl"
	FailuresFile = "failures.jsonl"
)

var _ contactdir.ContactStore = (*ContactStore)(nil)

// ContactStore implements contactdir.ContactStore under a directory:
// dir/contacts.json holds all localities, dir/localities/<name>.json one
// locality each. Every write replaces its file atomically.
type ContactStore struct {
	dir string
}

// NewContactStore creates a ContactStore rooted at dir.
func NewContactStore(dir string) *ContactStore {
	return &ContactStore{dir: dir}
}

// ResultsPath returns the path of the combined results file.
func (s *ContactStore) ResultsPath() string {
	return filepath.Join(s.dir, ResultsFile)
}

// LocalityPath returns the path of one locality's file.
func (s *ContactStore) LocalityPath(locality string) string {
	return filepath.Join(s.dir, "localities", FileName(locality)+".json")
}

// SaveLocality writes the contacts of one locality.
func (s *ContactStore) SaveLocality(ctx context.Context, locality string, set *contactdir.ContactSet) error {
	if locality == "" {
		return contactdir.Errorf(contactdir.EINVALID, "locality required")
	}
	if set == nil {
		set = contactdir.NewContactSet()
	}
	data, err := marshalJSON(set)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", locality, err)
	}
	return writeFileAtomic(s.LocalityPath(locality), data)
}

// LoadLocality reads one locality's file. Returns ENOTFOUND if it was never
// saved.
func (s *ContactStore) LoadLocality(ctx context.Context, locality string) (*contactdir.ContactSet, error) {
	data, err := os.ReadFile(s.LocalityPath(locality))
	if errors.Is(err, os.ErrNotExist) {
		return nil, contactdir.Errorf(contactdir.ENOTFOUND, "no saved contacts for %s", locality)
	}
	if err != nil {
		return nil, err
	}
	set := contactdir.NewContactSet()
	if err := json.Unmarshal(data, set); err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "%s: %v", s.LocalityPath(locality), err)
	}
	return set, nil
}

// LoadResults reads the combined results file. A missing file yields empty
// results.
func (s *ContactStore) LoadResults(ctx context.Context) (contactdir.Results, error) {
	data, err := os.ReadFile(s.ResultsPath())
	if errors.Is(err, os.ErrNotExist) {
		return contactdir.Results{}, nil
	}
	if err != nil {
		return nil, err
	}
	results := contactdir.Results{}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, contactdir.Errorf(contactdir.EINVALID, "%s: %v", s.ResultsPath(), err)
	}
	return results, nil
}

// SaveResults writes the combined results file. Localities are written in
// sorted order.
func (s *ContactStore) SaveResults(ctx context.Context, results contactdir.Results) error {
	if results == nil {
		results = contactdir.Results{}
	}
	data, err := marshalJSON(results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return writeFileAtomic(s.ResultsPath(), data)
}
