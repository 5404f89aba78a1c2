//go:generate go run go.uber.org/mock/mockgen -source=feature.go -destination=../mocks/mock_feature_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type IFeatureRepository interface {
	StoreRun(run StoredRun) error
	GetRun(runID uuid.UUID) (StoredRun, error)
	ListRuns() ([]RunSummary, error)
}

type FeatureRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewFeatureRepository(db *badger.DB, log *slog.Logger) *FeatureRepository {
	return &FeatureRepository{db: db, log: log}
}

// StoredRun is the joined feature table of one run, as persisted.
type StoredRun struct {
	ID       uuid.UUID
	At       time.Time
	Accuracy *float64
	Table    domain.FeatureTable
}

type RunSummary struct {
	ID       uuid.UUID
	At       time.Time
	Accuracy *float64
	Columns  int
	Rows     int
}

func runKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("run:%s", id))
}

func rowPrefix(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("features:%s:", id))
}

// StoreRun persists the header under "run:{id}" and every row under
// "features:{id}:{seq_padded}:{txn_id}" so that a prefix scan returns rows in table order.
func (f *FeatureRepository) StoreRun(run StoredRun) error {
	header, err := proto.Marshal(fromRunHeader(run))
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	wb := f.db.NewWriteBatch()
	defer wb.Cancel()
	for seq, r := range run.Table.Rows {
		value, err := fromFeatureRow(r)
		if err != nil {
			return fmt.Errorf("run %s row %q: %w", run.ID, r.TxnID, err)
		}
		bytes, err := proto.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal run %s row %q: %w", run.ID, r.TxnID, err)
		}
		key := fmt.Sprintf("%s%09d:%s", rowPrefix(run.ID), seq, r.TxnID)
		if err := wb.Set([]byte(key), bytes); err != nil {
			return err
		}
	}
	if err := wb.Set(runKey(run.ID), header); err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush run %s: %w", run.ID, err)
	}
	f.log.Debug("Stored feature run", "run_id", run.ID, "rows", run.Table.Len(), "columns", run.Table.Width())
	return nil
}

// GetRun loads a run by id. Rows come back in the order they were stored.
func (f *FeatureRepository) GetRun(runID uuid.UUID) (StoredRun, error) {
	var run StoredRun
	err := f.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(runID))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", errors.ErrUnknownRun, runID)
		}
		if err != nil {
			return err
		}
		err = item.Value(func(value []byte) error {
			var header structpb.Struct
			if err := proto.Unmarshal(value, &header); err != nil {
				return err
			}
			run, err = toRunHeader(&header)
			return err
		})
		if err != nil {
			return err
		}

		prefix := rowPrefix(runID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var rowPb structpb.Struct
				if err := proto.Unmarshal(value, &rowPb); err != nil {
					return err
				}
				r, err := toFeatureRow(&rowPb)
				if err != nil {
					return err
				}
				run.Table.Rows = append(run.Table.Rows, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return StoredRun{}, err
	}
	return run, nil
}

// ListRuns returns the header of every stored run, most recent first.
func (f *FeatureRepository) ListRuns() ([]RunSummary, error) {
	var summaries []RunSummary
	err := f.db.View(func(txn *badger.Txn) error {
		prefix := []byte("run:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var header structpb.Struct
				if err := proto.Unmarshal(value, &header); err != nil {
					return err
				}
				run, err := toRunHeader(&header)
				if err != nil {
					return err
				}
				summaries = append(summaries, RunSummary{
					ID:       run.ID,
					At:       run.At,
					Accuracy: run.Accuracy,
					Columns:  run.Table.Width(),
					Rows:     int(header.Fields["rows"].GetNumberValue()),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].At.After(summaries[j].At)
	})
	return summaries, nil
}

func fromRunHeader(run StoredRun) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"id":      structpb.NewStringValue(run.ID.String()),
		"at":      structpb.NewStringValue(run.At.UTC().Format(time.RFC3339Nano)),
		"rows":    structpb.NewNumberValue(float64(run.Table.Len())),
		"columns": structpb.NewListValue(&structpb.ListValue{Values: lo.Map(run.Table.Columns, func(c string, _ int) *structpb.Value { return structpb.NewStringValue(c) })}),
	}
	if run.Accuracy != nil {
		fields["accuracy"] = structpb.NewNumberValue(*run.Accuracy)
	}
	return &structpb.Struct{Fields: fields}
}

func toRunHeader(header *structpb.Struct) (StoredRun, error) {
	id, err := uuid.Parse(header.Fields["id"].GetStringValue())
	if err != nil {
		return StoredRun{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, header.Fields["at"].GetStringValue())
	if err != nil {
		return StoredRun{}, err
	}
	run := StoredRun{
		ID: id,
		At: at,
		Table: domain.FeatureTable{
			Columns: lo.Map(header.Fields["columns"].GetListValue().GetValues(), func(v *structpb.Value, _ int) string {
				return v.GetStringValue()
			}),
		},
	}
	if acc, ok := header.Fields["accuracy"]; ok {
		run.Accuracy = lo.ToPtr(acc.GetNumberValue())
	}
	return run, nil
}

func fromFeatureRow(r domain.FeatureRow) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"txn_id": string(r.TxnID),
		"label":  string(r.Label),
		"values": lo.Map(r.Values, func(v float64, _ int) any { return v }),
	})
}

func toFeatureRow(rowPb *structpb.Struct) (domain.FeatureRow, error) {
	values := rowPb.Fields["values"].GetListValue()
	if values == nil {
		return domain.FeatureRow{}, fmt.Errorf("%w: stored row has no values", errors.ErrMissingValues)
	}
	return domain.FeatureRow{
		TxnID: domain.TxnID(rowPb.Fields["txn_id"].GetStringValue()),
		Label: domain.Label(rowPb.Fields["label"].GetStringValue()),
		Values: lo.Map(values.GetValues(), func(v *structpb.Value, _ int) float64 {
			return v.GetNumberValue()
		}),
	}, nil
}
