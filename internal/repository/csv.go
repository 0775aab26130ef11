// Package repository persists passport applications to flat CSV files.
// Each record type owns a family of files, one per sub-type, that is
// rewritten in full on every save.
package repository

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// File names of the two CSV families.
const (
	RegularFile        = "regular4.csv"
	UrgentFile         = "urgent4.csv"
	ExpiredRegularFile = "expired_regular4.csv"
	ExpiredUrgentFile  = "expired_urgent4.csv"
)

// FileFor returns the CSV file name for t, or "" for an unknown type.
func FileFor(t models.PassType) string {
	switch t {
	case models.Regular:
		return RegularFile
	case models.Urgent:
		return UrgentFile
	case models.ExpiredRegular:
		return ExpiredRegularFile
	case models.ExpiredUrgent:
		return ExpiredUrgentFile
	}
	return ""
}

// CSVRepository reads and writes one family of CSV files. Columns are mapped
// to record fields through their `csv` tags.
type CSVRepository[T models.Record] struct {
	// dir holds the CSV files.
	dir string
	// types lists the sub-types of the family in file order.
	types []models.PassType
	// header is the column layout rows are decoded against.
	header []string
	log    *zap.Logger
}

// NewNewPassportRepository returns the repository for regular4.csv and urgent4.csv.
func NewNewPassportRepository(dir string, log *zap.Logger) *CSVRepository[models.NewPassport] {
	return &CSVRepository[models.NewPassport]{
		dir:    dir,
		types:  []models.PassType{models.Regular, models.Urgent},
		header: models.NewPassportHeader,
		log:    log,
	}
}

// NewOldPassportRepository returns the repository for expired_regular4.csv
// and expired_urgent4.csv.
func NewOldPassportRepository(dir string, log *zap.Logger) *CSVRepository[models.OldPassport] {
	return &CSVRepository[models.OldPassport]{
		dir:    dir,
		types:  []models.PassType{models.ExpiredRegular, models.ExpiredUrgent},
		header: models.OldPassportHeader,
		log:    log,
	}
}

// Paths returns the full paths of the family's files in load order.
func (r *CSVRepository[T]) Paths() []string {
	paths := make([]string, 0, len(r.types))
	for _, t := range r.types {
		paths = append(paths, filepath.Join(r.dir, FileFor(t)))
	}
	return paths
}

// Load reads every file of the family in order, skipping header rows.
// Missing files are treated as empty. Rows that cannot be decoded, or whose
// type does not belong to the family, are skipped and logged.
func (r *CSVRepository[T]) Load() ([]T, error) {
	var records []T
	for _, path := range r.Paths() {
		loaded, err := r.loadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, loaded...)
	}
	return records, nil
}

func (r *CSVRepository[T]) loadFile(path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierr.Mark(ierr.Wrapf(err, "open %s", path), ierr.ErrStorage)
	}
	defer f.Close()

	reader := gocsv.LazyCSVReader(f)
	if cr, ok := reader.(*csv.Reader); ok {
		// column counts are checked per row below
		cr.FieldsPerRecord = -1
	}

	var records []T
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if ierr.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if ierr.As(err, &parseErr) {
				r.log.Warn("skipping unreadable row",
					zap.String("file", path), zap.Int("row", row), zap.Error(err))
				continue
			}
			return nil, ierr.Mark(ierr.Wrapf(err, "read %s", path), ierr.ErrStorage)
		}
		if row == 1 {
			continue
		}
		if len(fields) != len(r.header) {
			r.log.Warn("skipping malformed row",
				zap.String("file", path), zap.Int("row", row),
				zap.Int("columns", len(fields)), zap.Int("expected", len(r.header)))
			continue
		}
		rec, err := r.decode(fields)
		if err != nil {
			r.log.Warn("skipping malformed row",
				zap.String("file", path), zap.Int("row", row), zap.Error(err))
			continue
		}
		if !lo.Contains(r.types, rec.Kind()) {
			r.log.Warn("skipping row with unknown passport type",
				zap.String("file", path), zap.Int("row", row), zap.String("type", string(rec.Kind())))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// rows feeds a fixed set of CSV rows to gocsv.
type rows [][]string

func (d rows) GetCSVRows() ([][]string, error) { return d, nil }

// decode maps one row onto a record by the family's column layout.
func (r *CSVRepository[T]) decode(fields []string) (T, error) {
	var out []T
	if err := gocsv.UnmarshalDecoder(rows{r.header, fields}, &out); err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// Save rewrites every file of the family with its header and then each
// record of the file's type, in slice order. All files are opened before any
// is truncated, so a file that cannot be opened leaves the family untouched.
func (r *CSVRepository[T]) Save(records []T) error {
	files := make([]*os.File, 0, len(r.types))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, path := range r.Paths() {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return ierr.WithHint(
				ierr.Mark(ierr.Wrapf(err, "open %s for writing", path), ierr.ErrStorage),
				"Error opening file "+path+" for writing.",
			)
		}
		files = append(files, f)
	}

	for _, rec := range records {
		if !lo.Contains(r.types, rec.Kind()) {
			r.log.Warn("not saving record with unknown passport type",
				zap.String("id", rec.Key()), zap.String("type", string(rec.Kind())))
		}
	}

	for i, t := range r.types {
		f := files[i]
		if err := f.Truncate(0); err != nil {
			return ierr.Mark(ierr.Wrapf(err, "truncate %s", f.Name()), ierr.ErrStorage)
		}
		ofType := lo.Filter(records, func(rec T, _ int) bool { return rec.Kind() == t })
		if err := gocsv.MarshalCSV(ofType, gocsv.DefaultCSVWriter(f)); err != nil {
			return ierr.Mark(ierr.Wrapf(err, "write %s", f.Name()), ierr.ErrStorage)
		}
	}
	return nil
}
