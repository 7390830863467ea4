// Package output appends metric rows to per-territory CSV files.
package output

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Append writes rows to the CSV file at path, creating the file and its
// directory as needed. The header, derived from the csv tags of proto, is
// written only when the file does not exist yet, so an empty batch still
// leaves a header-only file behind. Rows must share proto's struct type.
//
// Appending never rewrites existing content: running twice against the same
// file repeats every row.
func Append(path string, proto any, rows []any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "output: create directory")
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)
	if statErr != nil && !isNew {
		return eris.Wrapf(statErr, "output: stat %s", path)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "output: open %s", path)
	}

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false

	if isNew {
		if err := enc.EncodeHeader(proto); err != nil {
			f.Close() //nolint:errcheck
			return eris.Wrap(err, "output: write header")
		}
	}
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			f.Close() //nolint:errcheck
			return eris.Wrap(err, "output: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrap(err, "output: flush")
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "output: close %s", path)
	}
	return nil
}

// Header returns the CSV column names of a row type.
func Header(proto any) ([]string, error) {
	h, err := csvutil.Header(proto, "csv")
	if err != nil {
		return nil, eris.Wrap(err, "output: header")
	}
	return h, nil
}
