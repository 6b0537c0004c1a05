package catalog

import (
	"context"
	"sync"
	"time"

	"storefront/internal/model"
)

// CachedSupplier wraps a Supplier with a TTL in-memory cache so repeated
// searches do not refetch the catalog. A stale snapshot is served when a
// refresh fails and a previous fetch succeeded; the error is returned only
// when no snapshot exists at all.
type CachedSupplier struct {
	inner Supplier
	ttl   time.Duration

	mu        sync.Mutex
	products  []model.Product
	fetchedAt time.Time
}

// NewCachedSupplier creates a caching supplier with the given TTL
func NewCachedSupplier(inner Supplier, ttl time.Duration) *CachedSupplier {
	return &CachedSupplier{
		inner: inner,
		ttl:   ttl,
	}
}

// Products returns the cached catalog, refreshing it when the TTL expired.
func (s *CachedSupplier) Products(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := s.products != nil && time.Since(s.fetchedAt) < s.ttl
	if fresh {
		return append([]model.Product(nil), s.products...), nil
	}

	products, err := s.inner.Products(ctx)
	if err != nil {
		if s.products != nil {
			// Serve the stale snapshot rather than failing the search.
			return append([]model.Product(nil), s.products...), nil
		}
		return nil, err
	}

	s.products = products
	s.fetchedAt = time.Now()

	return append([]model.Product(nil), s.products...), nil
}

// Invalidate drops the cached snapshot, forcing a refetch on next use.
func (s *CachedSupplier) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.fetchedAt = time.Time{}
}
