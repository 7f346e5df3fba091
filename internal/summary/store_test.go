package summary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/model"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	generateErr error
	fetch       func(key api.SummaryKey) (model.Summary, error)
}

func (g *fakeGateway) GenerateSummary(ctx context.Context, key api.SummaryKey) (api.MessageResponse, error) {
	g.mu.Lock()
	g.calls = append(g.calls, "generate")
	g.mu.Unlock()
	if g.generateErr != nil {
		return api.MessageResponse{}, g.generateErr
	}
	return api.MessageResponse{Message: "Summary generated"}, nil
}

func (g *fakeGateway) GetSummary(ctx context.Context, key api.SummaryKey) (model.Summary, error) {
	g.mu.Lock()
	g.calls = append(g.calls, "fetch")
	g.mu.Unlock()
	if g.fetch != nil {
		return g.fetch(key)
	}
	return model.Summary{}, nil
}

func (g *fakeGateway) callLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func testKey() api.SummaryKey {
	return api.SummaryKey{UserID: 7, PeriodType: api.PeriodMonthly, PeriodStart: "2025-06-01"}
}

func TestRefreshGeneratesBeforeFetching(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		fetch: func(api.SummaryKey) (model.Summary, error) {
			return model.Summary{TotalWorkouts: 4}, nil
		},
	}
	store := NewStore(gw)

	if err := store.Refresh(context.Background(), testKey()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	calls := gw.callLog()
	if len(calls) != 2 || calls[0] != "generate" || calls[1] != "fetch" {
		t.Fatalf("expected [generate fetch], got %v", calls)
	}
	s, ok := store.Summary()
	if !ok {
		t.Fatal("expected a stored summary after refresh")
	}
	if s.TotalWorkouts != 4 {
		t.Fatalf("expected TotalWorkouts 4, got %d", s.TotalWorkouts)
	}
	if store.Loading() {
		t.Fatal("store still loading after refresh settled")
	}
}

func TestRefreshRejectsInvalidKey(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	store := NewStore(gw)

	err := store.Refresh(context.Background(), api.SummaryKey{UserID: 7, PeriodType: "yearly", PeriodStart: "2025-06-01"})
	if err == nil {
		t.Fatal("expected an error for an invalid period type")
	}
	if calls := gw.callLog(); len(calls) != 0 {
		t.Fatalf("expected no gateway calls for an invalid key, got %v", calls)
	}
}

func TestRefreshSwallowsGenerateFailure(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		generateErr: errors.New("generation backend down"),
		fetch: func(api.SummaryKey) (model.Summary, error) {
			return model.Summary{TotalWorkouts: 2}, nil
		},
	}
	store := NewStore(gw)

	if err := store.Refresh(context.Background(), testKey()); err != nil {
		t.Fatalf("Refresh should not surface a generate failure, got: %v", err)
	}

	calls := gw.callLog()
	if len(calls) != 2 || calls[1] != "fetch" {
		t.Fatalf("expected the fetch to still run after a generate failure, got %v", calls)
	}
	if s, ok := store.Summary(); !ok || s.TotalWorkouts != 2 {
		t.Fatalf("expected the (possibly stale) fetched aggregate to be stored, got %+v ok=%v", s, ok)
	}
}

func TestRefreshFetchFailureKeepsPreviousSummary(t *testing.T) {
	t.Parallel()
	fetchErr := error(nil)
	gw := &fakeGateway{}
	gw.fetch = func(api.SummaryKey) (model.Summary, error) {
		if fetchErr != nil {
			return model.Summary{}, fetchErr
		}
		return model.Summary{TotalWorkouts: 9}, nil
	}
	store := NewStore(gw)

	if err := store.Refresh(context.Background(), testKey()); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}

	fetchErr = errors.New("503 from backend")
	err := store.Refresh(context.Background(), testKey())
	if err == nil {
		t.Fatal("expected the fetch failure to be returned")
	}
	if !strings.Contains(err.Error(), "fetch summary") {
		t.Fatalf("expected a wrapped fetch error, got: %v", err)
	}
	if s, ok := store.Summary(); !ok || s.TotalWorkouts != 9 {
		t.Fatalf("previous summary should survive a failed fetch, got %+v ok=%v", s, ok)
	}
}

func TestRefreshDiscardsSupersededResponse(t *testing.T) {
	t.Parallel()
	firstFetchStarted := make(chan struct{})
	releaseFirstFetch := make(chan struct{})

	var fetches int
	var mu sync.Mutex
	gw := &fakeGateway{}
	gw.fetch = func(api.SummaryKey) (model.Summary, error) {
		mu.Lock()
		fetches++
		n := fetches
		mu.Unlock()
		if n == 1 {
			close(firstFetchStarted)
			<-releaseFirstFetch
			return model.Summary{TotalWorkouts: 1}, nil
		}
		return model.Summary{TotalWorkouts: 2}, nil
	}
	store := NewStore(gw)

	done := make(chan error, 1)
	go func() {
		done <- store.Refresh(context.Background(), testKey())
	}()

	<-firstFetchStarted
	if err := store.Refresh(context.Background(), testKey()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	close(releaseFirstFetch)
	if err := <-done; err != nil {
		t.Fatalf("superseded refresh should discard silently, got: %v", err)
	}

	s, ok := store.Summary()
	if !ok {
		t.Fatal("expected a stored summary")
	}
	if s.TotalWorkouts != 2 {
		t.Fatalf("stale response overwrote the newer aggregate: got TotalWorkouts %d, want 2", s.TotalWorkouts)
	}
}

func TestRefreshesForDifferentKeysDoNotFenceEachOther(t *testing.T) {
	t.Parallel()
	dailyFetchStarted := make(chan struct{})
	releaseDailyFetch := make(chan struct{})

	gw := &fakeGateway{}
	gw.fetch = func(key api.SummaryKey) (model.Summary, error) {
		if key.PeriodType == api.PeriodDaily {
			close(dailyFetchStarted)
			<-releaseDailyFetch
			return model.Summary{TotalWorkouts: 5}, nil
		}
		return model.Summary{TotalWorkouts: 3}, nil
	}
	store := NewStore(gw)

	daily := api.SummaryKey{UserID: 7, PeriodType: api.PeriodDaily, PeriodStart: "2025-06-15"}
	done := make(chan error, 1)
	go func() {
		done <- store.Refresh(context.Background(), daily)
	}()

	<-dailyFetchStarted
	if err := store.Refresh(context.Background(), testKey()); err != nil {
		t.Fatalf("monthly refresh failed: %v", err)
	}
	close(releaseDailyFetch)
	if err := <-done; err != nil {
		t.Fatalf("daily refresh failed: %v", err)
	}

	// The daily refresh was not superseded: its later response wins.
	if s, ok := store.Summary(); !ok || s.TotalWorkouts != 5 {
		t.Fatalf("expected the daily aggregate to be stored, got %+v ok=%v", s, ok)
	}
}
