package table

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Table is an ordered sequence of rows sharing one header.
type Table struct {
	Header []string
	Rows   []Row
	index  map[string]int
}

// Row is one data row. Values are looked up by exact (case-sensitive)
// header name.
type Row struct {
	t      *Table
	values []string
}

// New builds a table from a header and raw records. Records shorter than the
// header read as empty strings for the missing columns; extra values are
// dropped. When a header name repeats, the first column wins.
func New(header []string, records [][]string) *Table {
	t := &Table{
		Header: header,
		index:  make(map[string]int, len(header)),
		Rows:   make([]Row, 0, len(records)),
	}
	for i, h := range header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, Row{t: t, values: rec})
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Get returns the value of column name and whether the column exists.
func (r Row) Get(name string) (string, bool) {
	i, ok := r.t.index[name]
	if !ok {
		return "", false
	}
	if i >= len(r.values) {
		return "", true
	}
	return r.values[i], true
}

// Columns returns the row as (name, value) pairs in header order.
func (r Row) Columns() [][2]string {
	out := make([][2]string, len(r.t.Header))
	for i, h := range r.t.Header {
		v := ""
		if i < len(r.values) {
			v = r.values[i]
		}
		out[i] = [2]string{h, v}
	}
	return out
}

// Options configures Load.
type Options struct {
	// Sheet names the worksheet of .xlsx tables; empty reads the first sheet.
	Sheet string
	// LazyQuotes accepts stray quotes in unquoted CSV fields.
	LazyQuotes bool
}

// Load reads the table at path. The format follows the extension: .xlsx is
// read from opts.Sheet (or the first sheet), .tsv is tab-delimited, anything
// else is CSV.
//
// A missing file is not an error: it is logged and an empty table returned.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("table: file not found", zap.String("path", path))
			return New(nil, nil), nil
		}
		return nil, eris.Wrapf(err, "table: stat %s", path)
	}

	var records [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err := ReadXLSX(path, XLSXOptions{SheetName: opts.Sheet})
		if err != nil {
			return nil, eris.Wrapf(err, "table: read %s", path)
		}
		records = rows
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "table: open %s", path)
		}
		defer f.Close() //nolint:errcheck

		csvOpts := CSVOptions{LazyQuotes: opts.LazyQuotes}
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			csvOpts.Delimiter = '\t'
		}
		rows, err := collect(StreamCSV(ctx, f, csvOpts))
		if err != nil {
			return nil, eris.Wrapf(err, "table: read %s", path)
		}
		records = rows
	}

	if len(records) == 0 {
		return New(nil, nil), nil
	}

	t := New(records[0], records[1:])
	zap.L().Debug("table: loaded",
		zap.String("path", path),
		zap.Int("columns", len(t.Header)),
		zap.Int("rows", t.Len()),
	)
	return t, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
