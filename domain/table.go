package domain

// FeatureRow holds the numeric columns of one transaction (or one comment before aggregation).
type FeatureRow struct {
	TxnID  TxnID
	Label  Label
	Values []float64
}

// FeatureTable is a named-column numeric table keyed by transaction id.
// Every row has exactly len(Columns) values.
type FeatureTable struct {
	Columns []string
	Rows    []FeatureRow
}

// Width returns the number of numeric columns.
func (t FeatureTable) Width() int {
	return len(t.Columns)
}

// Len returns the number of rows.
func (t FeatureTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a named column.
func (t FeatureTable) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// IDs returns the transaction ids in row order.
func (t FeatureTable) IDs() []TxnID {
	ids := make([]TxnID, len(t.Rows))
	for i, r := range t.Rows {
		ids[i] = r.TxnID
	}
	return ids
}

// Row returns the row of a transaction id.
func (t FeatureTable) Row(id TxnID) (FeatureRow, bool) {
	for _, r := range t.Rows {
		if r.TxnID == id {
			return r, true
		}
	}
	return FeatureRow{}, false
}

// Value returns a single cell by transaction id and column name.
func (t FeatureTable) Value(id TxnID, column string) (float64, bool) {
	col, ok := t.ColumnIndex(column)
	if !ok {
		return 0, false
	}
	row, ok := t.Row(id)
	if !ok {
		return 0, false
	}
	return row.Values[col], true
}
