package styleable

import (
	"context"

	"github.com/goliatone/go-styleable/pkg/activity"
)

// WithActivityHooks reports every user-origin change of the bean to hooks.
// Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *beanConfig) {
		cfg.activityHooks = normalized
		cfg.activity.Enabled = true
	}
}

// WithActivityChannel sets the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *beanConfig) {
		cfg.activity.Channel = channel
	}
}

// ActivityHooks returns a copy of the configured hooks.
func (b *Bean) ActivityHooks() activity.Hooks {
	if b == nil {
		return nil
	}
	return b.cfg.activityHooks.Clone()
}

func (b *Bean) attachActivity() {
	emitter := activity.NewEmitter(b.cfg.activityHooks, b.cfg.activity)
	if !emitter.Enabled() {
		return
	}
	b.store.AddChangeListener(ChangeFunc(func(change MapChange) {
		event := b.changeEvent(change)
		if err := emitter.Emit(context.Background(), event); err != nil {
			b.logger.Warn("activity hook failed", "bean", b.typ.Name(), "key", keyName(change.Key), "verb", event.Verb, "err", err)
		}
	}))
}

func (b *Bean) changeEvent(change MapChange) activity.Event {
	input := activity.StyleEventInput{
		ActorID:  b.cfg.actorID,
		BeanID:   b.id.String(),
		BeanType: b.typ.Name(),
		Key:      keyName(change.Key),
		Origin:   OriginUser.String(),
		OldValue: change.Old,
		NewValue: change.New,
	}
	switch {
	case change.WasReplaced():
		return activity.BuildStyleUpdatedEvent(input)
	case change.WasAdded():
		return activity.BuildStyleAddedEvent(input)
	default:
		return activity.BuildStyleRemovedEvent(input)
	}
}
