package lexio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Table is a CSV file held in memory: a header row and data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of name in the header, or -1.
func (t Table) Column(name string) int {
	return slices.Index(t.Header, name)
}

// Values returns column col of every row. Short rows yield "".
func (t Table) Values(col int) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if col < len(r) {
			out[i] = r[col]
		}
	}
	return out
}

// AddColumn appends a column named name with one value per row.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// ReadTable reads a CSV file with a header row. A leading byte order mark is
// dropped and rows may have varying lengths.
func ReadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, domain.NewValidationError("csv", fmt.Sprintf("%s is empty", path))
		}
		return Table{}, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], bom)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row: %w", err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ReadWordsCSV reads a CSV file and checks it has the named column.
func ReadWordsCSV(path, column string) (Table, int, error) {
	t, err := ReadTable(path)
	if err != nil {
		return Table{}, -1, err
	}
	col := t.Column(column)
	if col < 0 {
		return Table{}, -1, domain.NewValidationError("column", fmt.Sprintf("%s has no %q column", path, column))
	}
	return t, col, nil
}

// WriteTable writes t as CSV to path, creating parent directories.
func WriteTable(path string, t Table) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	return f.Close()
}
