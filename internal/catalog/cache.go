// Package catalog caches per-outlet product catalogs for the lifetime of a
// session. Entries are keyed by the selected source outlet, grow
// monotonically, and are never evicted. Failed fetches are not cached, so
// the next attempt for the same key retries.
package catalog

import (
	"context"
	"sync"

	"github.com/hwgcc/mutasi-flow/internal/model"
)

// Fetcher loads a product catalog from the products endpoint.
type Fetcher interface {
	Products(ctx context.Context, outletID string) ([]model.Product, error)
}

// TicketState says how a load request was resolved at issue time.
type TicketState int

const (
	// TicketCleared means the key was empty: the active set was cleared and
	// nothing fetched.
	TicketCleared TicketState = iota
	// TicketCached means the catalog was served synchronously from the cache.
	TicketCached
	// TicketFetch means the caller must run Fetch for this ticket.
	TicketFetch
	// TicketShared means an identical fetch is already in flight; its
	// resolution will settle this load too.
	TicketShared
)

// Ticket is the receipt for one load request.
type Ticket struct {
	Products []model.Product
	Key      string
	Seq      uint64
	State    TicketState
}

// Resolution is the outcome of a fetch, handed back through Commit.
type Resolution struct {
	Err      error
	Key      string
	Products []model.Product
}

// Cache is the per-key product store plus the request bookkeeping that keeps
// slow responses for abandoned keys from clobbering newer ones.
type Cache struct {
	fetcher  Fetcher
	entries  map[string][]model.Product
	inflight map[string]uint64
	active   []model.Product
	activeKey string
	seq      uint64
	latest   uint64
	mu       sync.Mutex
}

// New creates an empty cache backed by fetcher.
func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:  fetcher,
		entries:  make(map[string][]model.Product),
		inflight: make(map[string]uint64),
	}
}

// Load issues a load for key. Every call supersedes all previous ones: the
// last issued request wins, and earlier unresolved fetches become stale.
// Cache hits and empty keys resolve synchronously (the active set is updated
// in place); misses return a ticket the caller must Fetch and Commit, unless
// a fetch for the same key is already pending, in which case that in-flight
// fetch is adopted.
func (c *Cache) Load(key string) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.latest = c.seq

	if key == "" {
		c.active = nil
		c.activeKey = ""
		return Ticket{State: TicketCleared, Seq: c.seq}
	}

	if products, ok := c.entries[key]; ok {
		c.active = products
		c.activeKey = key
		return Ticket{State: TicketCached, Key: key, Seq: c.seq, Products: products}
	}

	if _, pending := c.inflight[key]; pending {
		c.inflight[key] = c.seq
		return Ticket{State: TicketShared, Key: key, Seq: c.seq}
	}

	c.inflight[key] = c.seq
	return Ticket{State: TicketFetch, Key: key, Seq: c.seq}
}

// Fetch runs the network load for a TicketFetch ticket.
func (c *Cache) Fetch(ctx context.Context, t Ticket) Resolution {
	products, err := c.fetcher.Products(ctx, t.Key)
	return Resolution{Key: t.Key, Products: products, Err: err}
}

// Commit settles a fetch resolution. Successful catalogs are always stored
// (the data is valid for its key regardless of timing), but the resolution
// is only applied to the active set when it still corresponds to the newest
// issued load. Returns the active products and whether they were applied.
func (c *Cache) Commit(res Resolution) (products []model.Product, applied bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq, pending := c.inflight[res.Key]
	delete(c.inflight, res.Key)

	if res.Err != nil {
		// Not cached: the next load for this key retries the fetch.
		if pending && seq == c.latest {
			c.active = nil
			c.activeKey = ""
			return nil, true
		}
		return nil, false
	}

	c.entries[res.Key] = res.Products

	if !pending || seq != c.latest {
		return nil, false
	}

	c.active = res.Products
	c.activeKey = res.Key
	return res.Products, true
}

// Active returns the product set of the most recently applied resolution.
func (c *Cache) Active() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// ActiveKey returns the key the active set belongs to, empty when cleared.
func (c *Cache) ActiveKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeKey
}

// Has reports whether key is already cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
