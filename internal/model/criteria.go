package model

// FilterCriteria represents structured search criteria extracted from a
// natural language query. Nil price/rating pointers mean "no constraint",
// so a zero bound is a real constraint rather than an unset field. A value
// is produced once per search submission and never mutated afterwards.
type FilterCriteria struct {
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Sizes      []string `json:"sizes,omitempty"`

	// OriginalQuery is the verbatim input text, retained for display.
	OriginalQuery string `json:"original_query"`

	// Confidence is a coarse completeness score in [0,100]. It is a UI
	// signal describing how well-specified the query was, not a probability.
	Confidence int `json:"confidence"`
}

// HasConstraints reports whether any filter constraint is active.
func (c *FilterCriteria) HasConstraints() bool {
	return c.MinPrice != nil || c.MaxPrice != nil || c.MinRating != nil ||
		len(c.Categories) > 0 || len(c.Keywords) > 0 ||
		len(c.Colors) > 0 || len(c.Sizes) > 0
}
