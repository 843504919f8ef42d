// Package cli wires the bot together for the cascade command: storage
// selection, catalog loading, and the interactive chat loop.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/cascadebot/cascade/internal/adapters/classifier"
	"github.com/cascadebot/cascade/internal/adapters/file"
	"github.com/cascadebot/cascade/internal/adapters/memory"
	"github.com/cascadebot/cascade/internal/adapters/redis"
	"github.com/cascadebot/cascade/pkg/bot"
	"github.com/cascadebot/cascade/pkg/catalog"
	"github.com/cascadebot/cascade/pkg/dialog"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/state"
)

// Options collects the flags shared by the cascade subcommands.
type Options struct {
	Store         string // memory | file | redis
	StatePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CatalogPath   string
	Threshold     int
	Degraded      bool // run without a classifier (fallback dialog only)
	Debug         bool
}

// noopCloser is returned for backends with nothing to close.
func noopCloser() error { return nil }

// BuildStorage selects the state backend from options. The returned
// closer must be called on shutdown (it closes the redis client).
func BuildStorage(opts Options) (ports.Storage, func() error, error) {
	switch opts.Store {
	case "", "memory":
		return memory.NewStore(), noopCloser, nil
	case "file":
		return file.NewStore(opts.StatePath), noopCloser, nil
	case "redis":
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q (want memory, file, or redis)", opts.Store)
	}
}

// BuildBot assembles the full turn coordinator with standard CLI
// conventions.
func BuildBot(opts Options, logger *slog.Logger, hooks domain.LifecycleHooks) (*bot.Bot, func() error, error) {
	storage, closer, err := BuildStorage(opts)
	if err != nil {
		return nil, nil, err
	}

	cat := catalog.Default()
	if opts.CatalogPath != "" {
		cat, err = catalog.Load(opts.CatalogPath)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("error loading catalog: %w", err)
		}
	}

	var cls ports.Classifier = classifier.NewKeyword()
	if opts.Degraded {
		cls = classifier.Unconfigured{}
	}

	conversations := state.ConversationScope(storage)
	users := state.UserScope(storage)

	policyOpts := []dialog.PolicyOption{dialog.WithPolicyLogger(logger)}
	if opts.Threshold > 0 {
		policyOpts = append(policyOpts, dialog.WithThreshold(opts.Threshold))
	}
	policy := dialog.NewEscalationPolicy(users, policyOpts...)

	waterfall := dialog.NewWaterfall(cls, dialog.NewRouter(cat), policy, users,
		dialog.WithFallback(classifier.EchoFallback{}),
		dialog.WithHooks(hooks),
		dialog.WithLogger(logger),
	)
	engine := dialog.NewEngine(waterfall, conversations, dialog.WithEngineLogger(logger))

	b := bot.New(engine, conversations, users,
		bot.WithLogger(logger),
		bot.WithHooks(hooks),
	)
	return b, closer, nil
}
