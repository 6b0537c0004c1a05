package model

// SearchRequest represents a free-text search request
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results  []Product       `json:"results"`
	Total    int             `json:"total"`
	Criteria *FilterCriteria `json:"criteria,omitempty"`
	Took     int64           `json:"took_ms"` // Response time in milliseconds
}

// CategoryResponse represents a category-mode filter response
type CategoryResponse struct {
	Results  []Product `json:"results"`
	Total    int       `json:"total"`
	Category string    `json:"category"`
}

// SelectionRequest represents an "add to selection" action on a product
type SelectionRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Query     string `json:"query,omitempty"` // The search that surfaced the product, if any
}

// SelectionResponse represents a selection action response
type SelectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
