package mock

import (
	"context"

	"github.com/fwojciec/contactdir"
)

// Compile-time interface verification.
var (
	_ contactdir.ContactStore   = (*ContactStore)(nil)
	_ contactdir.AuditLog       = (*AuditLog)(nil)
	_ contactdir.FailureLog     = (*FailureLog)(nil)
	_ contactdir.LocalitySource = (*LocalitySource)(nil)
	_ contactdir.ExclusionSet   = (*ExclusionSet)(nil)
)

// ContactStore is a mock implementation of contactdir.ContactStore.
type ContactStore struct {
	SaveLocalityFn func(ctx context.Context, locality string, set *contactdir.ContactSet) error
	LoadResultsFn  func(ctx context.Context) (contactdir.Results, error)
	SaveResultsFn  func(ctx context.Context, results contactdir.Results) error
}

func (s *ContactStore) SaveLocality(ctx context.Context, locality string, set *contactdir.ContactSet) error {
	return s.SaveLocalityFn(ctx, locality, set)
}

func (s *ContactStore) LoadResults(ctx context.Context) (contactdir.Results, error) {
	return s.LoadResultsFn(ctx)
}

func (s *ContactStore) SaveResults(ctx context.Context, results contactdir.Results) error {
	return s.SaveResultsFn(ctx, results)
}

// AuditLog is a mock implementation of contactdir.AuditLog.
type AuditLog struct {
	RecordFn func(ctx context.Context, entry contactdir.AuditEntry) error
}

func (l *AuditLog) Record(ctx context.Context, entry contactdir.AuditEntry) error {
	return l.RecordFn(ctx, entry)
}

// FailureLog is a mock implementation of contactdir.FailureLog.
type FailureLog struct {
	RecordFailureFn func(ctx context.Context, f contactdir.Failure) error
}

func (l *FailureLog) RecordFailure(ctx context.Context, f contactdir.Failure) error {
	return l.RecordFailureFn(ctx, f)
}

// LocalitySource is a mock implementation of contactdir.LocalitySource.
type LocalitySource struct {
	LocalitiesFn func(ctx context.Context) ([]*contactdir.Locality, error)
}

func (s *LocalitySource) Localities(ctx context.Context) ([]*contactdir.Locality, error) {
	return s.LocalitiesFn(ctx)
}

// ExclusionSet is a mock implementation of contactdir.ExclusionSet.
type ExclusionSet struct {
	ExcludesFn func(locality string) bool
}

func (s *ExclusionSet) Excludes(locality string) bool {
	return s.ExcludesFn(locality)
}
