package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// decisionRow is one decision_events row as scanned by ent.
type decisionRow struct {
	Sequence       int64     `sql:"sequence"`
	Timestamp      time.Time `sql:"timestamp"`
	DecisionID     string    `sql:"decision_id"`
	ChildID        string    `sql:"child_id"`
	Subject        string    `sql:"subject"`
	NextDifficulty string    `sql:"next_difficulty"`
	NextTopic      string    `sql:"next_topic"`
	Strategy       string    `sql:"strategy"`
	Rule           string    `sql:"rule"`
	Reason         string    `sql:"reason"`
	Mastery        float64   `sql:"mastery"`
	Confidence     float64   `sql:"confidence"`
	TopicResolved  bool      `sql:"topic_resolved"`
	AttemptCount   int       `sql:"attempt_count"`
}

// decisionRepo implements DecisionRepo on the DecisionEvent schema.
type decisionRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *decisionRepo) Append(ctx context.Context, rec *DecisionRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()

	d := rec.Decision
	query, args, err := decisionEvents.insert(map[string]any{
		"sequence":        rec.Sequence,
		"timestamp":       rec.Timestamp,
		"decision_id":     rec.ID,
		"child_id":        rec.ChildID,
		"subject":         rec.Subject,
		"next_difficulty": string(d.NextDifficulty),
		"next_topic":      d.NextTopic,
		"strategy":        string(d.Strategy),
		"rule":            string(d.Rule),
		"reason":          d.Reason,
		"mastery":         d.Mastery,
		"confidence":      d.Confidence,
		"topic_resolved":  rec.TopicResolved,
		"attempt_count":   rec.AttemptCount,
	})
	if err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	return nil
}

func (r *decisionRepo) List(ctx context.Context, childID string, opts QueryOpts) ([]DecisionRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("child_id", childID)}
	if opts.Subject != "" {
		preds = append(preds, entsql.EQ("subject", opts.Subject))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}

	sel := decisionEvents.selector().
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []decisionRow
	if err := scanAll(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	result := make([]DecisionRecord, len(rows))
	for i, row := range rows {
		result[i] = DecisionRecord{
			ID:       row.DecisionID,
			Sequence: row.Sequence,
			ChildID:  row.ChildID,
			Subject:  row.Subject,
			Decision: adaptive.Decision{
				NextDifficulty: adaptive.Difficulty(row.NextDifficulty),
				NextTopic:      row.NextTopic,
				Strategy:       adaptive.Strategy(row.Strategy),
				Mastery:        row.Mastery,
				Confidence:     row.Confidence,
				Reason:         row.Reason,
				Rule:           adaptive.Rule(row.Rule),
			},
			TopicResolved: row.TopicResolved,
			AttemptCount:  row.AttemptCount,
			Timestamp:     row.Timestamp.UTC(),
		}
	}
	return result, nil
}
