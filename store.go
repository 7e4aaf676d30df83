package contactdir

import (
	"context"
	"time"
)

// ContactStore persists extracted contacts as JSON.
type ContactStore interface {
	// SaveLocality writes the contacts of one locality, replacing any
	// previous file for it. Called incrementally while the locality is
	// being crawled.
	SaveLocality(ctx context.Context, locality string, set *ContactSet) error

	// LoadResults reads the combined results file.
	// A missing file yields empty results, not an error.
	LoadResults(ctx context.Context) (Results, error)

	// SaveResults writes the combined results file.
	SaveResults(ctx context.Context, results Results) error
}

// AuditEntry is one audit log line, written per retained contact.
type AuditEntry struct {
	Time    time.Time `json:"time"`
	RunID   string    `json:"run_id,omitempty"`
	Contact *Contact  `json:"contact"`
	Span    string    `json:"span,omitempty"`
}

// AuditLog is an append-only log of extracted contacts.
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// FailureReason tags why a locality produced no contacts.
type FailureReason string

// Failure reasons.
const (
	FailureEmpty     FailureReason = "empty"
	FailureException FailureReason = "exception"
	FailureTimeout   FailureReason = "timeout"
	FailureSkip      FailureReason = "skip"
)

// Failure is one failed-locality log line.
type Failure struct {
	Time     time.Time     `json:"time"`
	Locality string        `json:"locality"`
	URL      string        `json:"url,omitempty"`
	Reason   FailureReason `json:"reason"`
	Detail   string        `json:"detail,omitempty"`
}

// FailureLog is an append-only log of failed localities.
type FailureLog interface {
	RecordFailure(ctx context.Context, f Failure) error
}
