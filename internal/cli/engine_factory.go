package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger configures the application logger. Logs go to stderr so they never
// mix with reports on stdout.
func NewLogger(opts Options) (*slog.Logger, error) {
	if opts.Debug {
		return logging.New(slog.LevelDebug), nil
	}
	if opts.LogLevel == "" {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// NewEngine builds an engine from CLI settings. With Redis configured the
// machines come from the Redis store, otherwise from opts.Dir. The returned
// closer releases the store connection.
func NewEngine(ctx context.Context, opts Options, logger *slog.Logger, extra ...automata.Option) (*automata.Engine, io.Closer, error) {
	engineOpts := []automata.Option{automata.WithLogger(logger)}
	if opts.MaxSteps != 0 {
		engineOpts = append(engineOpts, automata.WithMaxSteps(opts.MaxSteps))
	}
	if opts.TapePadding > 0 {
		engineOpts = append(engineOpts, automata.WithTapePadding(opts.TapePadding))
	}
	if opts.Kind != "" {
		kind, err := domain.ParseKind(opts.Kind)
		if err != nil {
			return nil, nil, err
		}
		engineOpts = append(engineOpts, automata.WithKind(kind))
	}
	if opts.Debug {
		engineOpts = append(engineOpts, automata.WithLifecycleHooks(createDebugHooks(logger)))
	}

	var closer io.Closer = nopCloser{}
	if opts.Redis != "" {
		store, err := NewRedisStore(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		closer = store
		engineOpts = append(engineOpts, automata.WithLoader(store))
	}

	engine, err := automata.New(opts.Dir, append(engineOpts, extra...)...)
	if err != nil {
		closer.Close()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closer, nil
}

// NewRedisStore connects to the Redis store named by opts.
func NewRedisStore(ctx context.Context, opts Options) (*redis.Store, error) {
	var storeOpts []redis.Option
	if opts.RedisPrefix != "" {
		storeOpts = append(storeOpts, redis.WithPrefix(opts.RedisPrefix))
	}
	if opts.RedisTTL > 0 {
		storeOpts = append(storeOpts, redis.WithTTL(opts.RedisTTL))
	}
	store, err := redis.New(ctx, opts.Redis, storeOpts...)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "machine", e.Machine, "kind", e.Kind, "input_length", e.InputLength)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run End",
				"machine", e.Machine,
				"accepted", e.Result.Verdict.Accepted,
				"reason", e.Result.Verdict.Reason,
				"steps", e.Result.Steps,
				"duration", e.Duration,
			)
		},
		OnValidationFailed: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.Debug("Validation Failed", "machine", e.Machine, "check", e.Check, "err", e.Err)
		},
	}
}
