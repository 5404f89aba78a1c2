package ingest

import (
	"fmt"
	"math"
	"path/filepath"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"strconv"
	"strings"
)

var booleans = map[string]float64{
	"true":     1,
	"yes":      1,
	"1":        1,
	"positive": 1,
	"false":    0,
	"no":       0,
	"0":        0,
	"negative": 0,
}

// LoadMetricTable reads the export of one metric source from dir. Only the transaction id
// and the declared columns are read; extra columns are ignored.
func LoadMetricTable(dir string, source domain.MetricSource) (domain.MetricTable, error) {
	path := filepath.Join(dir, source.File)
	t, err := readTable(path)
	if err != nil {
		return domain.MetricTable{}, err
	}
	idCol, err := t.column(ColumnTxnID)
	if err != nil {
		return domain.MetricTable{}, err
	}
	cols := make([]int, len(source.Columns))
	names := make([]string, len(source.Columns))
	for i, c := range source.Columns {
		if cols[i], err = t.column(c.Name); err != nil {
			return domain.MetricTable{}, err
		}
		names[i] = c.Name
	}

	out := domain.MetricTable{
		Source:  source.Name,
		Columns: names,
		Order:   make([]domain.TxnID, 0, len(t.rows)),
		Rows:    make(map[domain.TxnID][]float64, len(t.rows)),
	}
	firstSeen := make(map[domain.TxnID]int, len(t.rows))
	for _, r := range t.rows {
		id := domain.TxnID(r.cell(idCol))
		if id == "" {
			return domain.MetricTable{}, fmt.Errorf("%w: %s column %q line %d: empty transaction id",
				errors.ErrInvalidValue, path, ColumnTxnID, r.line)
		}
		if first, ok := firstSeen[id]; ok {
			return domain.MetricTable{}, fmt.Errorf("%w: %s line %d: %q already seen on line %d",
				errors.ErrDuplicateTxnID, path, r.line, id, first)
		}
		firstSeen[id] = r.line

		values := make([]float64, len(cols))
		for i, col := range cols {
			v, err := parseValue(r.cell(col), source.Columns[i].Kind)
			if err != nil {
				return domain.MetricTable{}, fmt.Errorf("%w: %s column %q line %d: %v",
					errors.ErrInvalidValue, path, names[i], r.line, err)
			}
			values[i] = v
		}
		out.Order = append(out.Order, id)
		out.Rows[id] = values
	}
	return out, nil
}

// LoadMetricTables loads every source from dir, in the order given.
func LoadMetricTables(dir string, sources []domain.MetricSource) ([]domain.MetricTable, error) {
	out := make([]domain.MetricTable, 0, len(sources))
	for _, s := range sources {
		t, err := LoadMetricTable(dir, s)
		if err != nil {
			return nil, fmt.Errorf("metric source %s: %w", s.Name, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseValue(cell string, kind domain.ColumnKind) (float64, error) {
	if kind == domain.KindBoolean {
		v, ok := booleans[strings.ToLower(cell)]
		if !ok {
			return 0, fmt.Errorf("%q is not boolean-like", cell)
		}
		return v, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not numeric", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", cell)
	}
	return v, nil
}
