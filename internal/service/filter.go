package service

import (
	"strings"

	"storefront/internal/model"
)

// FilterEngine applies structured criteria or explicit category tags to a
// product catalog. Every operation is a pure, order-preserving set
// reduction: the catalog is never mutated and results are never reordered.
type FilterEngine struct{}

// NewFilterEngine creates a new filter engine
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// ByCategory filters the catalog by an explicit category tag. The tag "all"
// returns the full catalog in order; any other tag selects products whose
// category equals it exactly. Unknown tags yield an empty result, not an
// error; the caller owns the empty-state affordance.
func (fe *FilterEngine) ByCategory(catalog []model.Product, tag string) []model.Product {
	if tag == model.CategoryAll {
		return append([]model.Product(nil), catalog...)
	}

	filtered := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		if p.Category == tag {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ByCriteria applies each active constraint as a successive intersection:
// AND across constraint types, OR across the values within one type. Empty
// set-valued constraints are skipped entirely rather than matching nothing.
// Price and rating comparisons are inclusive, and a nil bound means
// unconstrained, so a zero max price is a real "free items only" filter.
func (fe *FilterEngine) ByCriteria(catalog []model.Product, criteria *model.FilterCriteria) []model.Product {
	filtered := append([]model.Product(nil), catalog...)
	if criteria == nil {
		return filtered
	}

	if criteria.MaxPrice != nil {
		filtered = narrow(filtered, func(p *model.Product) bool {
			return p.Price <= *criteria.MaxPrice
		})
	}
	if criteria.MinPrice != nil {
		filtered = narrow(filtered, func(p *model.Product) bool {
			return p.Price >= *criteria.MinPrice
		})
	}

	if criteria.MinRating != nil {
		filtered = narrow(filtered, func(p *model.Product) bool {
			return p.EffectiveRating() >= *criteria.MinRating
		})
	}

	if len(criteria.Categories) > 0 {
		filtered = narrow(filtered, func(p *model.Product) bool {
			for _, cat := range criteria.Categories {
				if strings.EqualFold(p.Category, cat) {
					return true
				}
			}
			return false
		})
	}

	if len(criteria.Keywords) > 0 {
		filtered = narrow(filtered, matchesAnyTerm(criteria.Keywords))
	}
	if len(criteria.Colors) > 0 {
		filtered = narrow(filtered, matchesAnyTerm(criteria.Colors))
	}
	if len(criteria.Sizes) > 0 {
		filtered = narrow(filtered, matchesAnyTerm(criteria.Sizes))
	}

	return filtered
}

// Clear returns the full catalog, used when the caller abandons a search.
func (fe *FilterEngine) Clear(catalog []model.Product) []model.Product {
	return append([]model.Product(nil), catalog...)
}

// narrow keeps the products satisfying the predicate, preserving order.
func narrow(products []model.Product, keep func(*model.Product) bool) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}

// matchesAnyTerm builds a predicate matching products whose title or
// description contains any of the terms, case-insensitively.
func matchesAnyTerm(terms []string) func(*model.Product) bool {
	return func(p *model.Product) bool {
		title := strings.ToLower(p.Title)
		description := strings.ToLower(p.Description)
		for _, term := range terms {
			if strings.Contains(title, term) || strings.Contains(description, term) {
				return true
			}
		}
		return false
	}
}
