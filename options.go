package styleable

import (
	"github.com/goliatone/go-styleable/pkg/activity"
	"github.com/google/uuid"
)

// Option configures a Bean.
type Option func(*beanConfig)

type beanConfig struct {
	id            uuid.UUID
	logger        Logger
	activityHooks activity.Hooks
	activity      activity.Config
	actorID       string
}

func applyOptions(opts []Option) beanConfig {
	cfg := beanConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == uuid.Nil {
		cfg.id = uuid.New()
	}
	cfg.logger = loggerOrNop(cfg.logger)
	return cfg
}

// WithID assigns a fixed identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(cfg *beanConfig) {
		cfg.id = id
	}
}

// WithLogger attaches a logger. A nil logger discards output.
func WithLogger(logger Logger) Option {
	return func(cfg *beanConfig) {
		cfg.logger = logger
	}
}

// WithActorID records who performs the changes reported to activity hooks.
func WithActorID(actorID string) Option {
	return func(cfg *beanConfig) {
		cfg.actorID = actorID
	}
}
