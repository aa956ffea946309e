package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TransitionEvent records one session state change.
type TransitionEvent struct {
	ent.Schema
}

func (TransitionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TransitionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("event").
			NotEmpty().
			Comment("Session operation that caused the change, e.g. authenticate"),
		field.String("from_state").
			Comment("State kind before the event"),
		field.String("to_state"),
		field.String("user_id").
			Default("").
			Comment("Email of the logged-in user, if any"),
	}
}

func (TransitionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
