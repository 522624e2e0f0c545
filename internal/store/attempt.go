package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// attemptRow is one attempt_events row as scanned by ent.
type attemptRow struct {
	Sequence   int64     `sql:"sequence"`
	Timestamp  time.Time `sql:"timestamp"`
	ChildID    string    `sql:"child_id"`
	Subject    string    `sql:"subject"`
	Topic      string    `sql:"topic"`
	Difficulty string    `sql:"difficulty"`
	IsCorrect  bool      `sql:"is_correct"`
}

// attemptRepo implements AttemptRepo on the AttemptEvent schema.
type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) Append(ctx context.Context, rec *AttemptRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()

	query, args, err := attemptEvents.insert(map[string]any{
		"sequence":   rec.Sequence,
		"timestamp":  rec.Timestamp,
		"child_id":   rec.ChildID,
		"subject":    rec.Subject,
		"topic":      rec.Attempt.Topic,
		"difficulty": string(rec.Attempt.Difficulty),
		"is_correct": rec.Attempt.IsCorrect,
	})
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, childID, subject string, limit int) ([]AttemptRecord, error) {
	sel := attemptEvents.selector().
		Where(entsql.And(
			entsql.EQ("child_id", childID),
			entsql.EQ("subject", subject),
		)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var rows []attemptRow
	if err := scanAll(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	result := make([]AttemptRecord, len(rows))
	for i, row := range rows {
		result[i] = AttemptRecord{
			Sequence: row.Sequence,
			ChildID:  row.ChildID,
			Subject:  row.Subject,
			Attempt: adaptive.Attempt{
				Topic:      row.Topic,
				Difficulty: adaptive.Difficulty(row.Difficulty),
				IsCorrect:  row.IsCorrect,
			},
			Timestamp: row.Timestamp.UTC(),
		}
	}

	// Newest first from the query; the engine wants oldest first.
	slices.Reverse(result)
	return result, nil
}

// Attempts extracts the engine inputs from stored records.
func Attempts(recs []AttemptRecord) []adaptive.Attempt {
	out := make([]adaptive.Attempt, len(recs))
	for i, r := range recs {
		out[i] = r.Attempt
	}
	return out
}

// scanAll runs sel and scans every row into v, a pointer to a slice.
func scanAll(ctx context.Context, drv *entsql.Driver, sel *entsql.Selector, v any) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, v)
}
