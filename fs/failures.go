package fs

import (
	"context"

	"github.com/fwojciec/contactdir"
)

var _ contactdir.FailureLog = (*FailureLog)(nil)

// FailureLog implements contactdir.FailureLog as a JSONL file.
type FailureLog struct {
	file *jsonlFile
}

// OpenFailureLog opens path for appending.
func OpenFailureLog(path string) (*FailureLog, error) {
	f, err := openJSONL(path)
	if err != nil {
		return nil, err
	}
	return &FailureLog{file: f}, nil
}

// RecordFailure appends f.
func (l *FailureLog) RecordFailure(ctx context.Context, f contactdir.Failure) error {
	if f.Locality == "" || f.Reason == "" {
		return contactdir.Errorf(contactdir.EINVALID, "failure requires locality and reason")
	}
	return l.file.append(f)
}

// Close closes the underlying file.
func (l *FailureLog) Close() error {
	return l.file.Close()
}

// ReadFailureLog returns every entry in the failure log at path.
func ReadFailureLog(path string) ([]contactdir.Failure, error) {
	return readJSONL[contactdir.Failure](path)
}
