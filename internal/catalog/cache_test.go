package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSupplier struct {
	products []model.Product
	err      error
	calls    int
}

func (s *countingSupplier) Products(ctx context.Context) ([]model.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func TestCachedSupplier_ServesFromCache(t *testing.T) {
	inner := &countingSupplier{products: []model.Product{{ID: 1, Title: "Tote"}}}
	cached := NewCachedSupplier(inner, time.Hour)

	first, err := cached.Products(context.Background())
	require.NoError(t, err)
	second, err := cached.Products(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCachedSupplier_ReturnsCopies(t *testing.T) {
	inner := &countingSupplier{products: []model.Product{{ID: 1, Title: "Tote"}, {ID: 2, Title: "Ring"}}}
	cached := NewCachedSupplier(inner, time.Hour)

	first, err := cached.Products(context.Background())
	require.NoError(t, err)
	first[0].Title = "Mutated"

	second, err := cached.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tote", second[0].Title)
}

func TestCachedSupplier_InvalidateForcesRefetch(t *testing.T) {
	inner := &countingSupplier{products: []model.Product{{ID: 1}}}
	cached := NewCachedSupplier(inner, time.Hour)

	_, err := cached.Products(context.Background())
	require.NoError(t, err)

	cached.Invalidate()

	_, err = cached.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSupplier_ServesStaleOnRefreshFailure(t *testing.T) {
	inner := &countingSupplier{products: []model.Product{{ID: 1, Title: "Tote"}}}
	cached := NewCachedSupplier(inner, time.Nanosecond)

	_, err := cached.Products(context.Background())
	require.NoError(t, err)

	inner.err = errors.New("catalog down")
	time.Sleep(time.Millisecond)

	products, err := cached.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tote", products[0].Title)
}

func TestCachedSupplier_ErrorWithoutSnapshot(t *testing.T) {
	inner := &countingSupplier{err: errors.New("catalog down")}
	cached := NewCachedSupplier(inner, time.Hour)

	_, err := cached.Products(context.Background())
	assert.Error(t, err)
}
