package fs

import (
	"context"

	"github.com/fwojciec/contactdir"
	"github.com/google/uuid"
)

var _ contactdir.AuditLog = (*AuditLog)(nil)

// AuditLog implements contactdir.AuditLog as a JSONL file. Every entry is
// stamped with the log's run ID unless it already carries one.
type AuditLog struct {
	file  *jsonlFile
	runID string
}

// OpenAuditLog opens path for appending with a fresh run ID.
func OpenAuditLog(path string) (*AuditLog, error) {
	f, err := openJSONL(path)
	if err != nil {
		return nil, err
	}
	return &AuditLog{file: f, runID: uuid.NewString()}, nil
}

// RunID returns the ID stamped on this run's entries.
func (l *AuditLog) RunID() string {
	return l.runID
}

// Record appends entry.
func (l *AuditLog) Record(ctx context.Context, entry contactdir.AuditEntry) error {
	if entry.Contact == nil {
		return contactdir.Errorf(contactdir.EINVALID, "audit entry without contact")
	}
	if entry.RunID == "" {
		entry.RunID = l.runID
	}
	return l.file.append(entry)
}

// Close closes the underlying file.
func (l *AuditLog) Close() error {
	return l.file.Close()
}

// ReadAuditLog returns every entry in the audit log at path.
func ReadAuditLog(path string) ([]contactdir.AuditEntry, error) {
	return readJSONL[contactdir.AuditEntry](path)
}
