package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"polarity-lab/errors"
	"strings"
)

// row is one data record with the line it starts on, for error messages.
type row struct {
	line  int
	cells []string
}

// cell returns the cleaned value at col, or "" for short rows.
func (r row) cell(col int) string {
	if col >= len(r.cells) {
		return ""
	}
	return cleanCell(r.cells[col])
}

// raw returns the value at col untouched, or "" for short rows.
func (r row) raw(col int) string {
	if col >= len(r.cells) {
		return ""
	}
	return r.cells[col]
}

type table struct {
	path   string
	header []string
	rows   []row
}

// readTable sniffs and parses a delimited file. The first record is the header.
// Files ending in .tsv are tab separated.
func readTable(path string) (table, error) {
	if err := sniff(path); err != nil {
		return table{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return table{}, fmt.Errorf("%w: %s has no header", errors.ErrEmptyFile, path)
	}
	if err != nil {
		return table{}, fmt.Errorf("read %s header: %w", path, err)
	}
	t := table{path: path, header: make([]string, len(header))}
	for i, h := range header {
		t.header[i] = cleanCell(h)
	}

	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, row{line: line, cells: cells})
	}
	return t, nil
}

// column locates a header name, case-insensitively.
func (t table) column(name string) (int, error) {
	for i, h := range t.header {
		if strings.EqualFold(h, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s has no %q column", errors.ErrMissingColumn, t.path, name)
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}
