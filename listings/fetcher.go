package listings

import (
	"context"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"beyt_client/models"
)

// State is the feed's lifecycle for the active query key.
type State int

const (
	StateIdle State = iota
	StateLoadingFirst
	StateReady
	StateLoadingMore
	StateError
	StateRefetching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingFirst:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading_more"
	case StateError:
		return "error"
	case StateRefetching:
		return "refetching"
	}
	return "unknown"
}

// PageSource fetches one page of listings for a normalized query.
type PageSource interface {
	FetchPage(ctx context.Context, query Query, page int) (*models.ListingPage, error)
}

// entry is everything the cache knows about one query key. It is the sole
// authority on which pages exist for that key.
type entry struct {
	items      []models.Listing
	lastPage   int
	totalPages int
}

func (e *entry) hasMore() bool {
	return e.totalPages > e.lastPage
}

// appendPage adds a fetched page, dropping rows already shown. Listings can
// repeat across page boundaries when the data shifts between requests.
func (e *entry) appendPage(items []models.Listing) {
	seen := make(map[string]struct{}, len(e.items))
	for i := range e.items {
		seen[e.items[i].Key()] = struct{}{}
	}
	for i := range items {
		if _, dup := seen[items[i].Key()]; dup {
			continue
		}
		e.items = append(e.items, items[i])
	}
}

const defaultCacheSize = 32

// Fetcher accumulates listing pages per normalized query. Old keys keep
// their pages in a bounded LRU; responses are applied under the key captured
// at request time, so a response that raced a filter change can never land
// in the wrong feed. At most one request is in flight per key.
type Fetcher struct {
	mu       sync.Mutex
	src      PageSource
	cache    *lru.Cache[string, *entry]
	inflight map[string]bool

	key     string
	query   Query
	state   State
	lastErr error
}

func NewFetcher(src PageSource) *Fetcher {
	cache, _ := lru.New[string, *entry](defaultCacheSize)
	return &Fetcher{
		src:      src,
		cache:    cache,
		inflight: make(map[string]bool),
		state:    StateIdle,
	}
}

// Snapshot is a consistent read of the feed for rendering.
type Snapshot struct {
	State      State
	Err        error
	Items      []models.Listing
	LastPage   int
	TotalPages int
	HasMore    bool
	Key        string
}

func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{State: f.state, Err: f.lastErr, Key: f.key}
	if e, ok := f.cache.Get(f.key); ok {
		snap.Items = append([]models.Listing(nil), e.items...)
		snap.LastPage = e.lastPage
		snap.TotalPages = e.totalPages
		snap.HasMore = e.hasMore()
	}
	return snap
}

// SetFilters swaps the active query. A change resets the feed to page 1
// under the new key; the old key's pages stay cached but are no longer
// shown. Returns false when the normalized query is unchanged, in which case
// nothing happens.
func (f *Fetcher) SetFilters(filters Filters) bool {
	q := Normalize(filters)
	key := q.Key()

	f.mu.Lock()
	defer f.mu.Unlock()

	if key == f.key && f.state != StateIdle {
		return false
	}

	f.key = key
	f.query = q
	f.state = StateLoadingFirst
	f.lastErr = nil
	return true
}

// FetchFirst loads page 1 for the active key, replacing whatever the cache
// held for it. No-op if a request for this key is already in flight.
func (f *Fetcher) FetchFirst(ctx context.Context) error {
	f.mu.Lock()
	if f.inflight[f.key] {
		f.mu.Unlock()
		return nil
	}
	key, query := f.key, f.query
	f.inflight[key] = true
	if f.state != StateRefetching {
		f.state = StateLoadingFirst
	}
	f.mu.Unlock()

	page, err := f.src.FetchPage(ctx, query, 1)

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, key)

	if err != nil {
		log.Printf("listings: page 1 fetch failed for %q: %v", key, err)
		if key == f.key {
			f.state = StateError
			f.lastErr = err
		}
		return err
	}

	f.cache.Add(key, &entry{
		items:      page.Properties,
		lastPage:   1,
		totalPages: page.TotalPages,
	})
	if key == f.key {
		f.state = StateReady
		f.lastErr = nil
	}
	return nil
}

// FetchMore requests the page after the last fetched one, using the query
// that produced the currently shown pages. It is a no-op unless a page
// already exists, more pages remain, and nothing is in flight for this key.
// A failure keeps the accumulated pages intact.
func (f *Fetcher) FetchMore(ctx context.Context) error {
	f.mu.Lock()
	e, ok := f.cache.Get(f.key)
	if !ok || !e.hasMore() || f.inflight[f.key] {
		f.mu.Unlock()
		return nil
	}
	key, query := f.key, f.query
	next := e.lastPage + 1
	f.inflight[key] = true
	f.state = StateLoadingMore
	f.mu.Unlock()

	page, err := f.src.FetchPage(ctx, query, next)

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, key)

	if err != nil {
		log.Printf("listings: page %d fetch failed for %q: %v", next, key, err)
		if key == f.key {
			f.state = StateError
			f.lastErr = err
		}
		return err
	}

	if e, ok := f.cache.Get(key); ok {
		e.appendPage(page.Properties)
		e.lastPage = next
		e.totalPages = page.TotalPages
	}
	if key == f.key {
		f.state = StateReady
		f.lastErr = nil
	}
	return nil
}

// Refetch forces page 1 to be re-requested for the current key, replacing
// the feed on success. Prior pages stay visible while the request runs.
func (f *Fetcher) Refetch(ctx context.Context) error {
	f.mu.Lock()
	if f.inflight[f.key] {
		f.mu.Unlock()
		return nil
	}
	f.state = StateRefetching
	f.mu.Unlock()

	return f.FetchFirst(ctx)
}
