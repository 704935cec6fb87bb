// Package retrieve finds candidate evidence for a claim in the local
// document index and on the web.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
)

// Retriever finds candidate evidence for a claim. Returned items carry
// NOT_ENOUGH_INFO until a judge assigns a stance.
type Retriever interface {
	Name() string
	Retrieve(ctx context.Context, claim string) ([]model.EvidenceItem, error)
}

// Multi fans a claim out to several retrievers and merges their results in
// retriever order. A failing retriever is logged and skipped.
type Multi struct {
	retrievers []Retriever
	logger     logging.Logger
}

// NewMulti combines retrievers; nil entries are ignored
func NewMulti(logger logging.Logger, retrievers ...Retriever) *Multi {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Multi{logger: logger}
	for _, r := range retrievers {
		if r != nil {
			m.retrievers = append(m.retrievers, r)
		}
	}
	return m
}

// Name identifies the retriever
func (m *Multi) Name() string {
	names := make([]string, len(m.retrievers))
	for i, r := range m.retrievers {
		names[i] = r.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

// Len returns the number of wrapped retrievers
func (m *Multi) Len() int {
	return len(m.retrievers)
}

// Retrieve runs every retriever concurrently. It fails only when all of
// them fail.
func (m *Multi) Retrieve(ctx context.Context, claim string) ([]model.EvidenceItem, error) {
	if len(m.retrievers) == 0 {
		return nil, nil
	}

	results := make([][]model.EvidenceItem, len(m.retrievers))
	errs := make([]error, len(m.retrievers))

	var wg sync.WaitGroup
	for i, r := range m.retrievers {
		wg.Add(1)
		go func(i int, r Retriever) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					results[i], errs[i] = nil, fmt.Errorf("retriever panic: %v", p)
				}
			}()
			results[i], errs[i] = r.Retrieve(ctx, claim)
		}(i, r)
	}
	wg.Wait()

	var (
		merged []model.EvidenceItem
		failed []error
	)
	seen := make(map[string]bool)
	for i, r := range m.retrievers {
		if errs[i] != nil {
			m.logger.Warn("retrieve", "retriever failed", map[string]interface{}{
				"retriever": r.Name(),
				"error":     errs[i],
			})
			failed = append(failed, fmt.Errorf("%s: %w", r.Name(), errs[i]))
			continue
		}
		for _, item := range results[i] {
			key := strings.ToLower(strings.TrimSpace(item.Source))
			if key != "" && seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, item)
		}
	}

	if len(failed) == len(m.retrievers) {
		return nil, errors.Join(failed...)
	}
	return merged, nil
}
