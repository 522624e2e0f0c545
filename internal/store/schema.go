package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	entschema "github.com/abhisek/adaptive/ent/schema"
)

// eventTable ties an ent schema to the table its events are stored in.
type eventTable struct {
	name   string
	prefix string // index name prefix
	schema ent.Interface
}

var (
	attemptEvents  = eventTable{name: "attempt_events", prefix: "attemptevent", schema: entschema.AttemptEvent{}}
	decisionEvents = eventTable{name: "decision_events", prefix: "decisionevent", schema: entschema.DecisionEvent{}}
)

// fields returns the mixin fields followed by the schema's own fields.
func (e eventTable) fields() []*field.Descriptor {
	var fs []ent.Field
	for _, m := range e.schema.Mixin() {
		fs = append(fs, m.Fields()...)
	}
	fs = append(fs, e.schema.Fields()...)

	out := make([]*field.Descriptor, len(fs))
	for i, f := range fs {
		out[i] = f.Descriptor()
	}
	return out
}

func (e eventTable) indexes() []*index.Descriptor {
	var is []ent.Index
	for _, m := range e.schema.Mixin() {
		is = append(is, m.Indexes()...)
	}
	is = append(is, e.schema.Indexes()...)

	out := make([]*index.Descriptor, len(is))
	for i, idx := range is {
		out[i] = idx.Descriptor()
	}
	return out
}

// columns lists the stored column names in schema order.
func (e eventTable) columns() []string {
	fs := e.fields()
	cols := make([]string, len(fs))
	for i, d := range fs {
		cols[i] = d.Name
	}
	return cols
}

// table builds the migration table: an auto-increment id followed by one
// column per field.
func (e eventTable) table() *schema.Table {
	t := schema.NewTable(e.name)
	t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, d := range e.fields() {
		t.AddColumn(&schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
		})
	}
	for _, d := range e.indexes() {
		t.AddIndex(e.prefix+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}

// insert builds an INSERT for values keyed by field name. Every field must
// be present and pass its schema validators.
func (e eventTable) insert(values map[string]any) (string, []any, error) {
	fs := e.fields()
	cols := make([]string, 0, len(fs))
	args := make([]any, 0, len(fs))
	for _, d := range fs {
		v, ok := values[d.Name]
		if !ok {
			return "", nil, fmt.Errorf("%s: missing field %q", e.name, d.Name)
		}
		if err := validateField(d, v); err != nil {
			return "", nil, fmt.Errorf("%s: %w", e.name, err)
		}
		cols = append(cols, d.Name)
		args = append(args, v)
	}
	query, qargs := entsql.Dialect(dialect.SQLite).
		Insert(e.name).
		Columns(cols...).
		Values(args...).
		Query()
	return query, qargs, nil
}

// selector starts a SELECT of every stored column.
func (e eventTable) selector() *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(e.columns()...).
		From(entsql.Table(e.name))
}

func validateField(d *field.Descriptor, v any) error {
	for _, fn := range d.Validators {
		var err error
		switch fn := fn.(type) {
		case func(string) error:
			if s, ok := v.(string); ok {
				err = fn(s)
			}
		case func(float64) error:
			if f, ok := v.(float64); ok {
				err = fn(f)
			}
		case func(int) error:
			if n, ok := v.(int); ok {
				err = fn(n)
			}
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", d.Name, err)
		}
	}
	return nil
}

// migrate creates or extends the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("ent/migrate: %w", err)
	}
	return m.Create(ctx, attemptEvents.table(), decisionEvents.table())
}
