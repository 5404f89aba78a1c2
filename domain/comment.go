// Package domain contains the core concepts of the polarity pipeline.
// Records are loaded once and treated as immutable afterwards.
package domain

// TxnID identifies one financial transaction. It is the join key across every table.
type TxnID string

// Label is the categorical polarity attached to a comment (e.g. "0"/"1", "pos"/"neg").
type Label string

// CommentRecord is one row of the comments file.
// Several records may share the same TxnID.
type CommentRecord struct {
	TxnID TxnID  `validate:"required,max=256"`
	Text  string `validate:"max=65536"`
	Label Label  `validate:"required,max=64"`
}

func NewCommentRecord(txnID TxnID, text string, label Label) CommentRecord {
	return CommentRecord{TxnID: txnID, Text: text, Label: label}
}
