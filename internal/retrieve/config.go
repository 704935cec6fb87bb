package retrieve

import (
	"fmt"
	"time"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
	"github.com/ppiankov/veritas/internal/worker"
)

// NewFetcherFromConfig builds a fetcher with the configured proxy,
// robots.txt policy and per-host rate limit
func NewFetcherFromConfig(cfg model.RetrievalConfig) *Fetcher {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	opts := []FetcherOption{WithLimiter(worker.NewLimiter(cfg.RequestsPerSec, cfg.BurstSize))}
	if cfg.RespectRobots {
		opts = append(opts, WithRobots(util.NewRobotsChecker(cfg.UserAgent, timeout, nil)))
	}
	return NewFetcher(timeout, cfg.UserAgent, cfg.MaxBodyBytes, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy, opts...)
}

// FromConfig assembles the configured retrievers. The local index is
// included when an index path is set, web search and Wikipedia when enabled.
func FromConfig(cfg *model.Config, fetcher *Fetcher, logger logging.Logger) (*Multi, error) {
	var retrievers []Retriever

	if cfg.Retrieval.IndexPath != "" {
		index, err := LoadIndex(cfg.Retrieval.IndexPath, cfg.Retrieval.TopK, cfg.Retrieval.MinRelevance)
		if err != nil {
			return nil, fmt.Errorf("load index: %w", err)
		}
		retrievers = append(retrievers, index)
	}

	if cfg.Retrieval.WebEnabled {
		if fetcher == nil {
			fetcher = NewFetcherFromConfig(cfg.Retrieval)
		}
		authority := NewAuthorityClassifier(&cfg.Authority)
		retrievers = append(retrievers, NewWebRetriever(cfg.Retrieval, fetcher, authority))
	}

	if cfg.Retrieval.WikiEnabled {
		// API endpoints sit under robots-disallowed paths; the rate limit still applies
		apiCfg := cfg.Retrieval
		apiCfg.RespectRobots = false
		authority := NewAuthorityClassifier(&cfg.Authority)
		retrievers = append(retrievers, NewWikipediaRetriever(apiCfg, NewFetcherFromConfig(apiCfg), authority))
	}

	return NewMulti(logger, retrievers...), nil
}
