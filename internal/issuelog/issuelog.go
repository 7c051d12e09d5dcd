// Package issuelog keeps a running CSV history of data-quality issues found
// by `finance check --record`, so recurring problems in a source can be
// compared across runs.
package issuelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/uillasnr/mobilefinance/internal/ledger"
)

// Entry is one recorded issue.
type Entry struct {
	CheckedAt     time.Time
	Source        string
	Kind          ledger.IssueKind
	TransactionID string
	Index         int
	Description   string
}

// Header is the CSV header of the issue log.
const Header = "checked_at,source,kind,transaction_id,index,description"

// FileName is the log file inside the project directory.
const FileName = "check-log.csv"

const (
	numFields    = 6
	colCheckedAt = 0
	colSource    = 1
	colKind      = 2
	colTxnID     = 3
	colIndex     = 4
	colDesc      = 5
)

// FromIssues stamps ledger issues for the log.
func FromIssues(checkedAt time.Time, src string, issues []ledger.Issue) []Entry {
	entries := make([]Entry, len(issues))
	for i, is := range issues {
		entries[i] = Entry{
			CheckedAt:     checkedAt,
			Source:        src,
			Kind:          is.Kind,
			TransactionID: is.TransactionID,
			Index:         is.Index,
			Description:   is.Description,
		}
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colCheckedAt] = e.CheckedAt.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colKind] = string(e.Kind)
	row[colTxnID] = e.TransactionID
	row[colIndex] = strconv.Itoa(e.Index)
	row[colDesc] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colCheckedAt])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing checked_at %q: %w", record[colCheckedAt], err)
	}
	idx, err := strconv.Atoi(record[colIndex])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing index %q: %w", record[colIndex], err)
	}

	return Entry{
		CheckedAt:     ts,
		Source:        record[colSource],
		Kind:          ledger.IssueKind(record[colKind]),
		TransactionID: record[colTxnID],
		Index:         idx,
		Description:   record[colDesc],
	}, nil
}

// Append adds entries to dir/check-log.csv, writing the header on first use.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	_, statErr := os.Stat(path)
	needsHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening issue log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every entry in dir/check-log.csv; nil when there is no log yet.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening issue log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading issue log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
