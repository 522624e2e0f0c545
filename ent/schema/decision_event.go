package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// DecisionEvent records a decision produced after an answer was stored.
type DecisionEvent struct {
	ent.Schema
}

func (DecisionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (DecisionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("decision_id").
			Unique().
			NotEmpty().
			Comment("UUID returned to API callers"),
		field.String("child_id").
			NotEmpty(),
		field.String("subject"),
		field.String("next_difficulty").
			NotEmpty(),
		field.String("next_topic"),
		field.String("strategy").
			NotEmpty().
			Comment("revise, practice or advance"),
		field.String("rule").
			NotEmpty().
			Comment("Policy rule that fired"),
		field.String("reason"),
		field.Float("mastery"),
		field.Float("confidence"),
		field.Bool("topic_resolved").
			Comment("False when an advance could not be mapped to a next topic"),
		field.Int("attempt_count"),
	}
}

func (DecisionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("child_id", "sequence"),
	}
}
