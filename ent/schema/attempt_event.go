package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one answered question for a child in a subject.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("child_id").
			NotEmpty().
			Comment("Learner the attempt belongs to"),
		field.String("subject").
			Comment("Curriculum subject, empty when unscoped"),
		field.String("topic").
			NotEmpty(),
		field.String("difficulty").
			NotEmpty().
			Comment("easy, medium or hard"),
		field.Bool("is_correct"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("child_id", "subject", "sequence"),
	}
}
