// Package runlog records checker invocations as newline-delimited JSON
// and aggregates them into reports.
package runlog

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Entry is one checker invocation.
type Entry struct {
	Time       time.Time `json:"time"`
	Argv       []string  `json:"argv"`
	ExitCode   int       `json:"exit_code"`
	DurationMs int64     `json:"duration_ms"`
}

// Writer appends entries to an invocation log.
type Writer struct {
	fd  afero.File
	enc *json.Encoder
}

// Open opens the invocation log at path in append-only mode, creating it
// if needed.
func Open(fsys afero.Fs, path string) (*Writer, error) {
	fd, err := fsys.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Writer{fd: fd, enc: json.NewEncoder(fd)}, nil
}

// Record appends a single entry.
func (w *Writer) Record(entry Entry) error {
	return w.enc.Encode(entry)
}

func (w *Writer) Close() error {
	return w.fd.Close()
}

// Read streams entries from a newline-delimited JSON log.
func Read(r io.Reader, handler func(e *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return err
		}
		handler(&entry)
	}
	return nil
}
