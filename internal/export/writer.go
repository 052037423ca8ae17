// Package export persists record sets under the output directory, one file
// per enabled format. Formats write independently: a failure in one is
// logged and collected but never suppresses the others.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gcouto/sarwrangler/internal/sar"
)

// Formats toggles each output format. Field order is also the write order.
type Formats struct {
	CSV    bool
	JSON   bool
	SQLite bool
	Gob    bool
}

// Any reports whether at least one format is enabled.
func (f Formats) Any() bool {
	return f.CSV || f.JSON || f.SQLite || f.Gob
}

// Writer fans record sets out to the enabled formats.
type Writer struct {
	dir     string
	formats Formats
	logger  *zap.Logger
}

// NewWriter returns a Writer rooted at dir, creating it if absent.
func NewWriter(dir string, formats Formats, logger *zap.Logger) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, formats: formats, logger: logger}, nil
}

// WriteSystems persists the system directory export under base.
func (w *Writer) WriteSystems(base string, recs []sar.System) error {
	return w.write(base, systemsTable(recs), recs)
}

// WriteReservoirs persists one system's reservoir listing export under base.
func (w *Writer) WriteReservoirs(base string, recs []sar.Reservoir) error {
	return w.write(base, reservoirsTable(recs), recs)
}

// WriteObservations persists one reservoir's time-series export under base.
func (w *Writer) WriteObservations(base string, recs []sar.Observation) error {
	return w.write(base, observationsTable(recs), recs)
}

// write emits one file per enabled format. recs is the original record slice
// for the shape-preserving formats (JSON, gob); t is the flat view for the
// tabular ones (CSV, SQLite).
func (w *Writer) write(base string, t table, recs any) error {
	var errs []error
	fail := func(format string, err error) {
		w.logger.Error("export failed",
			zap.String("format", format),
			zap.String("base", base),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s %s: %w", format, base, err))
	}

	if w.formats.CSV {
		if err := writeCSV(w.path(base, ".csv"), t); err != nil {
			fail("csv", err)
		}
	}
	if w.formats.JSON {
		if err := writeJSON(w.path(base, ".json"), recs); err != nil {
			fail("json", err)
		}
	}
	if w.formats.SQLite {
		if err := writeSQLite(w.path(base, ".db"), t); err != nil {
			fail("sqlite", err)
		}
	}
	if w.formats.Gob {
		if err := writeGob(w.path(base, ".gob"), recs); err != nil {
			fail("gob", err)
		}
	}
	return errors.Join(errs...)
}

func (w *Writer) path(base, ext string) string {
	return filepath.Join(w.dir, base+ext)
}
