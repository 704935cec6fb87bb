package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
)

// ResultCache answers "have we effectively verified this before" by fuzzy
// matching a query against the most recent stored claims.
type ResultCache struct {
	store     Store
	window    int
	threshold float64
	logger    logging.Logger
}

// Option configures a ResultCache
type Option func(*ResultCache)

// WithWindow sets how many recent rows are compared
func WithWindow(n int) Option {
	return func(c *ResultCache) {
		if n > 0 {
			c.window = n
		}
	}
}

// WithThreshold sets the ratio a match must strictly exceed
func WithThreshold(t float64) Option {
	return func(c *ResultCache) {
		if t > 0 && t <= 1 {
			c.threshold = t
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(c *ResultCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewResultCache creates a cache over store
func NewResultCache(store Store, opts ...Option) *ResultCache {
	c := &ResultCache{
		store:     store,
		window:    DefaultWindow,
		threshold: DefaultThreshold,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Entry is a verified result offered for caching
type Entry struct {
	ClaimText     string
	Verdict       model.Verdict
	Confidence    float64
	EvidenceCount int
	SessionID     string
}

// Lookup returns the closest recent claim when its ratio exceeds the
// threshold, or nil. Storage errors are logged and treated as a miss.
func (c *ResultCache) Lookup(ctx context.Context, query string) *model.CacheMatch {
	if c == nil || c.store == nil {
		return nil
	}

	rows, err := c.store.Recent(ctx, c.window)
	if err != nil {
		c.logger.Warn("cache", "lookup failed, treating as miss", map[string]interface{}{"error": err})
		return nil
	}

	best, ratio := BestMatch(query, rows)
	if best == nil || ratio <= c.threshold {
		c.logger.Debug("cache", "miss", map[string]interface{}{
			"candidates": len(rows),
			"best_ratio": ratio,
		})
		return nil
	}

	c.logger.Info("cache", "hit", map[string]interface{}{
		"claim_id": best.ID,
		"ratio":    ratio,
		"verdict":  best.Verdict,
	})
	return &model.CacheMatch{Claim: *best, Ratio: ratio}
}

// BestMatch scans rows in order and keeps the first row with the
// strictly greatest ratio. Returns (nil, 0) for no rows.
func BestMatch(query string, rows []model.CachedClaim) (*model.CachedClaim, float64) {
	var (
		best      *model.CachedClaim
		bestRatio float64
	)

	q := runes(query)
	for i := range rows {
		m := newMatcherFromRunes(q, rows[i].ClaimText)
		// QuickRatio bounds Ratio from above; a row that cannot beat the
		// current best is skipped without the full comparison
		if best != nil && m.QuickRatio() <= bestRatio {
			continue
		}
		if ratio := m.Ratio(); best == nil || ratio > bestRatio {
			best = &rows[i]
			bestRatio = ratio
		}
	}
	return best, bestRatio
}

// Store appends a verified result. ERROR verdicts are refused with
// ErrNotCacheable; claim text is truncated to MaxClaimRunes.
func (c *ResultCache) Store(ctx context.Context, entry Entry) error {
	if c == nil || c.store == nil {
		return nil
	}
	if entry.Verdict == model.VerdictError || !entry.Verdict.IsValid() {
		return fmt.Errorf("%w: verdict %q", ErrNotCacheable, entry.Verdict)
	}
	if strings.TrimSpace(entry.ClaimText) == "" {
		return fmt.Errorf("%w: empty claim text", ErrNotCacheable)
	}

	id, err := c.store.Append(ctx, model.CachedClaim{
		ClaimText:     util.TruncateRunes(entry.ClaimText, MaxClaimRunes),
		Verdict:       entry.Verdict,
		Confidence:    model.Clamp01(entry.Confidence),
		RetrievedAt:   time.Now().UTC(),
		EvidenceCount: entry.EvidenceCount,
		SessionID:     entry.SessionID,
	})
	if err != nil {
		c.logger.Warn("cache", "store failed", map[string]interface{}{"error": err})
		return fmt.Errorf("append cached claim: %w", err)
	}

	c.logger.Debug("cache", "stored claim", map[string]interface{}{"claim_id": id, "verdict": entry.Verdict})
	return nil
}
