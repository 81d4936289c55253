package listings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"beyt_client/models"
)

// fakeSource serves scripted pages and records every request it sees.
type fakeSource struct {
	mu         sync.Mutex
	totalPages int
	pageSize   int
	requests   []string
	failNext   error
	block      chan struct{} // when set, FetchPage waits on it
}

func (s *fakeSource) FetchPage(ctx context.Context, query Query, page int) (*models.ListingPage, error) {
	s.mu.Lock()
	s.requests = append(s.requests, fmt.Sprintf("%s|page=%d", query.Key(), page))
	fail := s.failNext
	s.failNext = nil
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if fail != nil {
		return nil, fail
	}

	listings := make([]models.Listing, s.pageSize)
	for i := range listings {
		listings[i] = models.Listing{ID: fmt.Sprintf("%s-p%d-%d", query.Key(), page, i)}
	}
	return &models.ListingPage{Properties: listings, TotalPages: s.totalPages}, nil
}

func (s *fakeSource) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func TestFetchFirst_Ready(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 5}
	f := NewFetcher(src)
	f.SetFilters(Filters{Status: "rent"})

	if err := f.FetchFirst(context.Background()); err != nil {
		t.Fatalf("fetch first: %v", err)
	}

	snap := f.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("expected ready, got %s", snap.State)
	}
	if len(snap.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(snap.Items))
	}
	if !snap.HasMore {
		t.Fatal("expected more pages")
	}
}

func TestFetchMore_AppendsInOrder(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 2}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())

	first := f.Snapshot().Items

	if err := f.FetchMore(context.Background()); err != nil {
		t.Fatalf("fetch more: %v", err)
	}

	snap := f.Snapshot()
	if len(snap.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(snap.Items))
	}
	for i, item := range first {
		if snap.Items[i].ID != item.ID {
			t.Fatalf("page 1 reordered at %d: %s vs %s", i, snap.Items[i].ID, item.ID)
		}
	}
	if snap.Items[2].ID != "-p2-0" || snap.Items[3].ID != "-p2-1" {
		t.Fatalf("page 2 items out of order: %v", snap.Items[2:])
	}
	if snap.LastPage != 2 {
		t.Fatalf("expected last page 2, got %d", snap.LastPage)
	}
}

func TestHasMore_TotalPagesBoundary(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 1}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())
	f.FetchMore(context.Background()) // page 2

	if snap := f.Snapshot(); !snap.HasMore {
		t.Fatalf("totalPages=3, fetched=2: expected hasMore=true")
	}

	f.FetchMore(context.Background()) // page 3

	if snap := f.Snapshot(); snap.HasMore {
		t.Fatalf("totalPages=3, fetched=3: expected hasMore=false")
	}
}

func TestSinglePageFeed_FetchMoreIsNoop(t *testing.T) {
	src := &fakeSource{totalPages: 1, pageSize: 5}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())

	snap := f.Snapshot()
	if snap.HasMore {
		t.Fatal("expected hasMore=false after only page")
	}

	f.FetchMore(context.Background())
	if src.requestCount() != 1 {
		t.Fatalf("fetchMore should be a no-op, saw %d requests", src.requestCount())
	}
}

func TestFetchMore_DuplicateCallsSingleRequest(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 1}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())

	block := make(chan struct{})
	src.mu.Lock()
	src.block = block
	src.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.FetchMore(context.Background())
	}()

	// Wait until the first call has issued its request, then call again.
	for src.requestCount() < 2 {
		time.Sleep(time.Millisecond)
	}
	f.FetchMore(context.Background())

	close(block)
	wg.Wait()

	if got := src.requestCount(); got != 2 {
		t.Fatalf("expected 1 first-page + 1 more request, got %d", got)
	}
}

func TestStaleResponse_NotAppendedToNewKey(t *testing.T) {
	src := &fakeSource{totalPages: 5, pageSize: 1}
	f := NewFetcher(src)
	f.SetFilters(Filters{Status: "rent"})
	f.FetchFirst(context.Background())

	block := make(chan struct{})
	src.mu.Lock()
	src.block = block
	src.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.FetchMore(context.Background()) // page 2 for the rent key, stalled
	}()
	for src.requestCount() < 2 {
		time.Sleep(time.Millisecond)
	}

	// Filter change while the old key's request is in flight.
	f.SetFilters(Filters{Status: "sale"})

	src.mu.Lock()
	src.block = nil
	src.mu.Unlock()
	f.FetchFirst(context.Background())

	close(block)
	wg.Wait()

	snap := f.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("expected only the sale key's page, got %d items", len(snap.Items))
	}
	if snap.Items[0].ID != "status=sale-p1-0" {
		t.Fatalf("stale rent page leaked into feed: %v", snap.Items)
	}
}

func TestFilterChange_ResetsToLoadingFirst(t *testing.T) {
	src := &fakeSource{totalPages: 2, pageSize: 1}
	f := NewFetcher(src)
	f.SetFilters(Filters{Status: "rent"})
	f.FetchFirst(context.Background())

	changed := f.SetFilters(Filters{Status: "sale"})
	if !changed {
		t.Fatal("expected filter change to register")
	}
	if snap := f.Snapshot(); snap.State != StateLoadingFirst {
		t.Fatalf("expected loading state after change, got %s", snap.State)
	}
	if snap := f.Snapshot(); len(snap.Items) != 0 {
		t.Fatalf("old key's items still shown: %d", len(snap.Items))
	}
}

func TestFilterChange_EqualContentIsNoop(t *testing.T) {
	src := &fakeSource{totalPages: 2, pageSize: 1}
	f := NewFetcher(src)
	f.SetFilters(Filters{Types: []string{"Villa"}, Beds: 2})
	f.FetchFirst(context.Background())

	// A fresh but equal Filters value must not look like a new query.
	if f.SetFilters(Filters{Types: []string{"Villa"}, Beds: 2}) {
		t.Fatal("equal filters treated as a different query")
	}
	if snap := f.Snapshot(); snap.State != StateReady {
		t.Fatalf("state disturbed by equal filters: %s", snap.State)
	}
}

func TestFirstPageError_NoData(t *testing.T) {
	src := &fakeSource{totalPages: 2, pageSize: 1}
	src.failNext = errors.New("boom")
	f := NewFetcher(src)
	f.SetFilters(Filters{})

	if err := f.FetchFirst(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := f.Snapshot()
	if snap.State != StateError {
		t.Fatalf("expected error state, got %s", snap.State)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(snap.Items))
	}
}

func TestFetchMoreError_KeepsEarlierPages(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 2}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())

	src.mu.Lock()
	src.failNext = errors.New("boom")
	src.mu.Unlock()

	if err := f.FetchMore(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := f.Snapshot()
	if snap.State != StateError {
		t.Fatalf("expected error state, got %s", snap.State)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("page 1 lost on page 2 failure: %d items", len(snap.Items))
	}

	// Retry succeeds and clears the error.
	if err := f.FetchMore(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	snap = f.Snapshot()
	if snap.State != StateReady || len(snap.Items) != 4 {
		t.Fatalf("retry did not recover: %s, %d items", snap.State, len(snap.Items))
	}
}

func TestRefetch_ReplacesFeed(t *testing.T) {
	src := &fakeSource{totalPages: 3, pageSize: 2}
	f := NewFetcher(src)
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())
	f.FetchMore(context.Background())

	if got := len(f.Snapshot().Items); got != 4 {
		t.Fatalf("setup: expected 4 items, got %d", got)
	}

	if err := f.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}

	snap := f.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("refetch should replace, not append: %d items", len(snap.Items))
	}
	if snap.LastPage != 1 {
		t.Fatalf("expected feed reset to page 1, got %d", snap.LastPage)
	}
}

// overlapSource repeats the last row of each page at the top of the next,
// the way a shifting result set does when a listing is inserted mid-scroll.
type overlapSource struct {
	totalPages int
}

func (s *overlapSource) FetchPage(ctx context.Context, query Query, page int) (*models.ListingPage, error) {
	ids := []string{fmt.Sprintf("l%d", page*2-1), fmt.Sprintf("l%d", page*2)}
	if page > 1 {
		ids = append([]string{fmt.Sprintf("l%d", (page-1)*2)}, ids...)
	}
	listings := make([]models.Listing, len(ids))
	for i, id := range ids {
		listings[i] = models.Listing{ID: id}
	}
	return &models.ListingPage{Properties: listings, TotalPages: s.totalPages}, nil
}

func TestFetchMore_DropsRepeatedListings(t *testing.T) {
	f := NewFetcher(&overlapSource{totalPages: 2})
	f.SetFilters(Filters{})
	f.FetchFirst(context.Background())

	if err := f.FetchMore(context.Background()); err != nil {
		t.Fatalf("fetch more: %v", err)
	}

	snap := f.Snapshot()
	want := []string{"l1", "l2", "l3", "l4"}
	if len(snap.Items) != len(want) {
		t.Fatalf("expected %d items after de-dup, got %d", len(want), len(snap.Items))
	}
	for i, id := range want {
		if snap.Items[i].ID != id {
			t.Fatalf("item %d = %q, want %q", i, snap.Items[i].ID, id)
		}
	}
}
