package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSupplier serves a fixed catalog, or a fixed error.
type stubSupplier struct {
	products []model.Product
	err      error
}

func (s *stubSupplier) Products(ctx context.Context) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

// recordingLog captures activity log calls and signals search logs on a channel.
type recordingLog struct {
	mu         sync.Mutex
	searches   []string
	selections []int64
	logged     chan struct{}
}

func newRecordingLog() *recordingLog {
	return &recordingLog{logged: make(chan struct{}, 8)}
}

func (l *recordingLog) LogSearch(ctx context.Context, query string, criteria *model.FilterCriteria, resultCount int, responseTimeMs int) error {
	l.mu.Lock()
	l.searches = append(l.searches, query)
	l.mu.Unlock()
	l.logged <- struct{}{}
	return nil
}

func (l *recordingLog) LogSelection(ctx context.Context, productID int64, query string) error {
	l.mu.Lock()
	l.selections = append(l.selections, productID)
	l.mu.Unlock()
	return nil
}

func newTestService(supplier *stubSupplier, activityLog ActivityLog) *SearchService {
	return NewSearchService(supplier, NewQueryInterpreter(), NewFilterEngine(), activityLog)
}

func TestSearchService_Search(t *testing.T) {
	supplier := &stubSupplier{products: testCatalog()}
	activityLog := newRecordingLog()
	svc := newTestService(supplier, activityLog)

	resp, err := svc.Search(context.Background(), &model.SearchRequest{Query: "electronics under $100"})
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 7}, productIDs(resp.Results))
	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.Criteria)
	assert.Equal(t, "electronics under $100", resp.Criteria.OriginalQuery)
	require.NotNil(t, resp.Criteria.MaxPrice)
	assert.Equal(t, float64(100), *resp.Criteria.MaxPrice)

	// The search log is written asynchronously.
	select {
	case <-activityLog.logged:
	case <-time.After(time.Second):
		t.Fatal("search was never logged")
	}
	activityLog.mu.Lock()
	defer activityLog.mu.Unlock()
	assert.Equal(t, []string{"electronics under $100"}, activityLog.searches)
}

func TestSearchService_SearchEmptyQuery(t *testing.T) {
	svc := newTestService(&stubSupplier{products: testCatalog()}, nil)

	_, err := svc.Search(context.Background(), &model.SearchRequest{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.Search(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchService_SearchSupplierFailure(t *testing.T) {
	supplierErr := errors.New("catalog unreachable")
	svc := newTestService(&stubSupplier{err: supplierErr}, nil)

	_, err := svc.Search(context.Background(), &model.SearchRequest{Query: "anything"})
	assert.ErrorIs(t, err, supplierErr)
}

func TestSearchService_SearchEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestService(&stubSupplier{products: testCatalog()}, nil)

	resp, err := svc.Search(context.Background(), &model.SearchRequest{Query: "under $1 jewelry"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
}

func TestSearchService_ByCategory(t *testing.T) {
	svc := newTestService(&stubSupplier{products: testCatalog()}, nil)

	t.Run("all", func(t *testing.T) {
		resp, err := svc.ByCategory(context.Background(), model.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, 7, resp.Total)
	})

	t.Run("known tag", func(t *testing.T) {
		resp, err := svc.ByCategory(context.Background(), model.CategoryMens)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, productIDs(resp.Results))
		assert.Equal(t, model.CategoryMens, resp.Category)
	})

	t.Run("unknown tag", func(t *testing.T) {
		resp, err := svc.ByCategory(context.Background(), "furniture")
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
	})
}

func TestSearchService_Clear(t *testing.T) {
	svc := newTestService(&stubSupplier{products: testCatalog()}, nil)

	products, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, productIDs(products))
}

func TestSearchService_GetProduct(t *testing.T) {
	svc := newTestService(&stubSupplier{products: testCatalog()}, nil)

	t.Run("found", func(t *testing.T) {
		p, err := svc.GetProduct(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Gold Plated Princess Ring", p.Title)
	})

	t.Run("missing", func(t *testing.T) {
		p, err := svc.GetProduct(context.Background(), 999)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestSearchService_RecordSelection(t *testing.T) {
	activityLog := newRecordingLog()
	svc := newTestService(&stubSupplier{products: testCatalog()}, activityLog)

	require.NoError(t, svc.RecordSelection(context.Background(), 4, "electronics"))
	assert.Equal(t, []int64{4}, activityLog.selections)

	// Without an activity log a selection is a silent no-op.
	bare := newTestService(&stubSupplier{products: testCatalog()}, nil)
	assert.NoError(t, bare.RecordSelection(context.Background(), 4, ""))
}
