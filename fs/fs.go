// Package fs provides file-based storage: the JSON contact store, JSONL
// audit and failure logs, and the CSV locality list.
package fs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// marshalJSON encodes v indented, without escaping HTML characters.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unsafeFileChars are replaced when a locality name becomes a file name.
var unsafeFileChars = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// FileName turns a locality name into a safe file name stem.
// Example: "תל אביב-יפו" → "תל_אביב-יפו"
func FileName(locality string) string {
	name := strings.Join(strings.Fields(locality), "_")
	name = unsafeFileChars.Replace(name)
	name = strings.Trim(name, ".")
	if name == "" {
		return "_"
	}
	return name
}
