package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSupplier struct {
	products []model.Product
}

func (s *stubSupplier) Products(ctx context.Context) ([]model.Product, error) {
	return s.products, nil
}

// stateRecorder collects every state handed to the consumer.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) record(state State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: 1, Title: "USB Drive", Description: "digital storage", Price: 20, Category: model.CategoryElectronics},
		{ID: 2, Title: "Silver Ring", Description: "solitaire ring", Price: 60, Category: model.CategoryJewelery},
		{ID: 3, Title: "Canvas Tote", Description: "plain bag", Price: 15, Category: model.CategoryWomens},
	}
}

func newTestSession(delay time.Duration, recorder *stateRecorder) *Session {
	svc := service.NewSearchService(
		&stubSupplier{products: testProducts()},
		service.NewQueryInterpreter(),
		service.NewFilterEngine(),
		nil,
	)
	return New(svc, delay, recorder.record)
}

func TestSession_StartsIdle(t *testing.T) {
	sess := newTestSession(0, &stateRecorder{})
	assert.Equal(t, StatusIdle, sess.State().Status)
}

func TestSession_BlankSubmitIsNoOp(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(0, recorder)

	sess.SubmitQuery(context.Background(), "   ")

	assert.Equal(t, StatusIdle, sess.State().Status)
	assert.Empty(t, recorder.snapshot())
}

func TestSession_TextSearchTransitions(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(0, recorder)

	sess.SubmitQuery(context.Background(), "electronics")

	states := recorder.snapshot()
	require.Len(t, states, 2)
	assert.Equal(t, StatusInterpreting, states[0].Status)
	assert.Equal(t, StatusFiltered, states[1].Status)

	final := sess.State()
	require.NotNil(t, final.Criteria)
	assert.Equal(t, "electronics", final.Criteria.OriginalQuery)
	require.Len(t, final.Results, 1)
	assert.Equal(t, int64(1), final.Results[0].ID)
}

func TestSession_CategoryClickSkipsInterpreting(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(50*time.Millisecond, recorder)

	sess.SelectCategory(context.Background(), model.CategoryJewelery)

	states := recorder.snapshot()
	require.Len(t, states, 1)
	assert.Equal(t, StatusFiltered, states[0].Status)
	require.Len(t, states[0].Results, 1)
	assert.Equal(t, int64(2), states[0].Results[0].ID)
}

func TestSession_ClearReturnsToIdleWithFullCatalog(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(0, recorder)

	sess.SubmitQuery(context.Background(), "jewelry")
	sess.Clear(context.Background())

	final := sess.State()
	assert.Equal(t, StatusIdle, final.Status)
	assert.Nil(t, final.Criteria)
	assert.Len(t, final.Results, 3)
}

func TestSession_NewSubmissionSupersedesPendingOne(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(30*time.Millisecond, recorder)

	sess.SubmitQuery(context.Background(), "jewelry")
	sess.SubmitQuery(context.Background(), "electronics")

	require.Eventually(t, func() bool {
		return sess.State().Status == StatusFiltered
	}, time.Second, 5*time.Millisecond)

	final := sess.State()
	require.NotNil(t, final.Criteria)
	assert.Equal(t, "electronics", final.Criteria.OriginalQuery)

	// The superseded search must never have surfaced results.
	for _, state := range recorder.snapshot() {
		if state.Status == StatusFiltered && state.Criteria != nil {
			assert.Equal(t, "electronics", state.Criteria.OriginalQuery)
		}
	}
}

func TestSession_ClearCancelsPendingSearch(t *testing.T) {
	recorder := &stateRecorder{}
	sess := newTestSession(30*time.Millisecond, recorder)

	sess.SubmitQuery(context.Background(), "jewelry")
	sess.Clear(context.Background())

	time.Sleep(60 * time.Millisecond)

	final := sess.State()
	assert.Equal(t, StatusIdle, final.Status)
	assert.Nil(t, final.Criteria)
}
