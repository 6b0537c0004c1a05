package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/model"
)

// ErrEmptyQuery is returned when a blank query reaches the search service.
// Callers are expected to reject empty input up front; this is the backstop.
var ErrEmptyQuery = errors.New("query must not be empty")

// ActivityLog records searches and selection actions, best-effort.
type ActivityLog interface {
	LogSearch(ctx context.Context, query string, criteria *model.FilterCriteria, resultCount int, responseTimeMs int) error
	LogSelection(ctx context.Context, productID int64, query string) error
}

// SearchService handles search business logic: it obtains the catalog from
// the supplier, interprets free-text queries, and applies filters.
type SearchService struct {
	supplier    catalog.Supplier
	interpreter *QueryInterpreter
	engine      *FilterEngine
	activityLog ActivityLog // optional
}

// NewSearchService creates a new search service
func NewSearchService(supplier catalog.Supplier, interpreter *QueryInterpreter, engine *FilterEngine, activityLog ActivityLog) *SearchService {
	return &SearchService{
		supplier:    supplier,
		interpreter: interpreter,
		engine:      engine,
		activityLog: activityLog,
	}
}

// Search interprets a free-text query and applies the extracted criteria to
// the catalog. The result preserves catalog order; an empty result is a
// valid outcome, never an error.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	products, err := s.supplier.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	criteria := s.interpreter.Interpret(req.Query)
	results := s.engine.ByCriteria(products, criteria)

	took := time.Since(startTime).Milliseconds()

	// Log search (non-blocking)
	if s.activityLog != nil {
		go func() {
			_ = s.activityLog.LogSearch(context.Background(), req.Query, criteria, len(results), int(took))
		}()
	}

	return &model.SearchResponse{
		Results:  results,
		Total:    len(results),
		Criteria: criteria,
		Took:     took,
	}, nil
}

// ByCategory applies an explicit category tag to the catalog. Unknown tags
// yield an empty result.
func (s *SearchService) ByCategory(ctx context.Context, tag string) (*model.CategoryResponse, error) {
	products, err := s.supplier.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	results := s.engine.ByCategory(products, tag)

	return &model.CategoryResponse{
		Results:  results,
		Total:    len(results),
		Category: tag,
	}, nil
}

// Clear abandons any active search and returns the full catalog.
func (s *SearchService) Clear(ctx context.Context) ([]model.Product, error) {
	products, err := s.supplier.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return s.engine.Clear(products), nil
}

// GetProduct retrieves a single product from the catalog by ID.
func (s *SearchService) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	products, err := s.supplier.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	for i := range products {
		if products[i].ID == productID {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// RecordSelection logs an "add to selection" action. The product is opaque
// to the search core; only its identity is recorded.
func (s *SearchService) RecordSelection(ctx context.Context, productID int64, query string) error {
	if s.activityLog == nil {
		return nil
	}
	return s.activityLog.LogSelection(ctx, productID, query)
}
