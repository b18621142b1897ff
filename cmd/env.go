package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/dashboard"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/settings"
	"github.com/abhisek/studybuddy/internal/store"
)

// env bundles what a command needs: storage, settings, logger and
// optionally an LLM provider.
type env struct {
	logger   *zap.Logger
	store    *store.Store
	redis    *redis.Client
	kv       store.KV
	session  settings.Session
	agg      *dashboard.Aggregator
	provider llm.Provider
	llmCfg   llm.Config

	// providerErr is why provider is nil, if it is.
	providerErr error
}

// openEnv opens the SQLite store, picks the KV backend, loads settings and,
// when withProvider is set, builds the LLM provider.
func openEnv(cmd *cobra.Command, withProvider bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("opened store", zap.String("path", dbPath))

	e := &env{logger: logger, store: st, kv: st.KV()}

	redisURL, _ := cmd.Flags().GetString("redis")
	if redisURL == "" {
		redisURL = os.Getenv("STUDYBUDDY_REDIS_URL")
	}
	if redisURL != "" {
		client, err := store.OpenRedis(ctx, redisURL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		e.redis = client
		e.kv = store.NewRedisKV(client, store.DefaultRedisPrefix)
		logger.Debug("using redis key-value store")
	}

	e.session = settings.Load(ctx, e.kv, logger)
	e.agg = dashboard.NewAggregator(e.kv, dashboard.WithLogger(logger))

	if withProvider {
		e.provider, e.llmCfg, e.providerErr = llm.NewProviderFromEnv(ctx, e.session.APIKey, st.EventRepo(), logger)
		if e.providerErr != nil {
			logger.Debug("llm provider unavailable", zap.Error(e.providerErr))
		}
	}
	return e, nil
}

// requireProvider returns an error explaining how to configure a key when
// no provider could be built.
func (e *env) requireProvider() error {
	if e.provider != nil {
		return nil
	}
	return fmt.Errorf("%w (%v)", llm.ErrNoProvider, e.providerErr)
}

// callContext bounds a single LLM operation by the configured timeout.
func (e *env) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if e.llmCfg.Timeout <= 0 {
		return context.WithTimeout(parent, 30*time.Second)
	}
	return context.WithTimeout(parent, e.llmCfg.Timeout)
}

func (e *env) Close() error {
	var errs []error
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	errs = append(errs, e.store.Close())
	_ = e.logger.Sync()
	return errors.Join(errs...)
}
