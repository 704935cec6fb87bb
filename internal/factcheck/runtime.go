package factcheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/veritas/internal/cache"
	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/pipeline"
	"github.com/ppiankov/veritas/internal/retrieve"
	"github.com/ppiankov/veritas/internal/sentiment"
	"github.com/ppiankov/veritas/internal/session"
	"github.com/ppiankov/veritas/internal/store"
)

// Runtime is a fully wired service together with the resources it owns
type Runtime struct {
	Service  *Service
	Sessions *session.Manager
	Analyzer *sentiment.Analyzer
	Provider llm.Provider // nil when the oracle is disabled

	db *store.SQLite
}

// NewRuntime builds the oracle, store, cache, pipeline and session log
// described by cfg. Close releases the store.
func NewRuntime(ctx context.Context, cfg *model.Config, logger logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	llmCfg := llm.ConfigFromModel(cfg)
	llmCfg.Logger = logger
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	if provider == nil {
		logger.Info("factcheck", "oracle disabled; using fallback heuristics", nil)
	}

	rt := &Runtime{Provider: provider}

	var (
		resultCache *cache.ResultCache
		recorder    session.Recorder
		stats       StatsSource
	)
	cacheOpts := []cache.Option{
		cache.WithWindow(cfg.Cache.Window),
		cache.WithThreshold(cfg.Cache.Threshold),
		cache.WithLogger(logger),
	}

	switch strings.ToLower(cfg.Cache.Backend) {
	case "memory":
		if cfg.Cache.Enabled {
			retention := time.Duration(cfg.Cache.Retention) * time.Hour
			resultCache = cache.NewResultCache(cache.NewMemoryStore(retention), cacheOpts...)
		}
	case "sqlite", "":
		db, err := store.Open(ctx, cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.db = db
		recorder = db
		stats = db
		if cfg.Cache.Enabled {
			resultCache = cache.NewResultCache(db, cacheOpts...)
		}
	default:
		return nil, fmt.Errorf("unknown cache backend %q (supported: sqlite, memory)", cfg.Cache.Backend)
	}

	fetcher := retrieve.NewFetcherFromConfig(cfg.Retrieval)
	p, err := pipeline.NewFromConfig(cfg, provider, fetcher, logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	var scorer sentiment.Scorer
	if provider != nil {
		scorer = sentiment.NewOracleScorer(provider)
	}
	rt.Analyzer = sentiment.NewAnalyzer(scorer,
		sentiment.WithTimeout(cfg.LLM.CallTimeout()),
		sentiment.WithLogger(logger),
	)

	rt.Sessions = session.NewManager(recorder, logger)
	rt.Service = NewService(p, rt.Analyzer,
		WithCache(resultCache),
		WithLog(session.NewLog(recorder, logger)),
		WithFetcher(fetcher),
		WithStats(stats),
		WithLogger(logger),
	)
	return rt, nil
}

// Close releases the persistent store
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
