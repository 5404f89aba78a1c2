// Package ingest reads the comment export and the behavioral metric exports from disk.
// Every failure names the file, and where relevant the column and line, it comes from.
package ingest

import (
	"fmt"
	"polarity-lab/domain"
	"polarity-lab/errors"

	"github.com/go-playground/validator/v10"
)

const (
	ColumnTxnID   = "txn_id"
	ColumnComment = "comment"
	ColumnLabel   = "polar"
)

var validate = validator.New()

// LoadComments reads the comment file. Rows keep file order. A header without data rows is
// a valid, empty corpus.
func LoadComments(path string) ([]domain.CommentRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	idCol, err := t.column(ColumnTxnID)
	if err != nil {
		return nil, err
	}
	textCol, err := t.column(ColumnComment)
	if err != nil {
		return nil, err
	}
	labelCol, err := t.column(ColumnLabel)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CommentRecord, 0, len(t.rows))
	for _, r := range t.rows {
		rec := domain.NewCommentRecord(
			domain.TxnID(r.cell(idCol)),
			r.raw(textCol),
			domain.Label(r.cell(labelCol)),
		)
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", errors.ErrInvalidValue, path, r.line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
