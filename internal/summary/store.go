// Package summary implements the generate-then-fetch protocol for the
// backend's derived summaries and holds the latest fetched read model.
package summary

import (
	"context"
	"fmt"
	"sync"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/logx"
	"github.com/Hirosolo/train-diary-cli/internal/model"
)

// Gateway is the slice of the API client the aggregator needs.
type Gateway interface {
	GenerateSummary(ctx context.Context, key api.SummaryKey) (api.MessageResponse, error)
	GetSummary(ctx context.Context, key api.SummaryKey) (model.Summary, error)
}

type Store struct {
	gw Gateway

	mu      sync.Mutex
	summary *model.Summary
	loading bool
	// seq fences concurrent refreshes per period key: only the response
	// belonging to the latest issued refresh for a key may be stored.
	seq map[string]uint64
}

func NewStore(gw Gateway) *Store {
	return &Store{gw: gw, seq: make(map[string]uint64)}
}

// Summary returns the most recently fetched summary, or false when none has
// been fetched yet.
func (s *Store) Summary() (model.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return model.Summary{}, false
	}
	return *s.summary, true
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Refresh regenerates and re-fetches the summary for one period key.
//
// The two steps are strictly ordered: the fetch is only issued after the
// generate call has settled. A generate failure is logged and swallowed — the
// fetch still runs and may return the previous aggregate, which the product
// accepts as stale-but-visible. A fetch failure leaves the previously stored
// summary untouched.
//
// Refresh is safe to call concurrently for the same key; responses of
// superseded refreshes are discarded rather than overwriting newer state.
func (s *Store) Refresh(ctx context.Context, key api.SummaryKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("refresh summary: %w", err)
	}
	k := key.String()

	s.mu.Lock()
	s.loading = true
	s.seq[k]++
	issued := s.seq[k]
	s.mu.Unlock()

	if _, err := s.gw.GenerateSummary(ctx, key); err != nil {
		logx.Warnf("generate summary %s failed, fetching previous aggregate: %v", k, err)
	}

	data, fetchErr := s.gw.GetSummary(ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[k] != issued {
		logx.Debugf("discarding stale summary response for %s (refresh %d superseded)", k, issued)
		return nil
	}
	s.loading = false
	if fetchErr != nil {
		return fmt.Errorf("fetch summary %s: %w", k, fetchErr)
	}
	s.summary = &data
	return nil
}
