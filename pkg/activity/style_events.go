package activity

import (
	"strings"
	"time"
)

// Verbs emitted for style changes.
const (
	VerbStyleAdded        = "style.added"
	VerbStyleUpdated      = "style.updated"
	VerbStyleRemoved      = "style.removed"
	VerbStylesheetApplied = "stylesheet.applied"
)

// ObjectTypeBean is the object type of events about a styleable bean.
const ObjectTypeBean = "styleable.bean"

// StyleEventInput describes the fields common to style change events.
type StyleEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	BeanID     string
	BeanType   string
	Key        string
	Origin     string
	OldValue   any
	NewValue   any
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildStyleAddedEvent reports a value set where none was held.
func BuildStyleAddedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbStyleAdded, input)
}

// BuildStyleUpdatedEvent reports a value replacing another.
func BuildStyleUpdatedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbStyleUpdated, input)
}

// BuildStyleRemovedEvent reports a cleared value.
func BuildStyleRemovedEvent(input StyleEventInput) Event {
	return buildStyleEvent(VerbStyleRemoved, input)
}

// BuildStylesheetAppliedEvent reports a stylesheet applied to a bean. Key
// carries the sheet name.
func BuildStylesheetAppliedEvent(input StyleEventInput) Event {
	event := buildStyleEvent(VerbStylesheetApplied, input)
	if input.Key != "" {
		event.Metadata["sheet"] = input.Key
		delete(event.Metadata, "key")
	}
	return event
}

func buildStyleEvent(verb string, input StyleEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	if input.Key != "" {
		metadata["key"] = input.Key
	}
	if input.Origin != "" {
		metadata["origin"] = input.Origin
	}
	if input.BeanType != "" {
		metadata["bean_type"] = input.BeanType
	}
	if input.OldValue != nil {
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata["new_value"] = input.NewValue
	}

	objectID := strings.TrimSpace(input.BeanID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.BeanType)
	}
	if objectID == "" {
		objectID = ObjectTypeBean
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeBean,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
