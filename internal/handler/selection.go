package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SelectionHandler handles "add to selection" actions. The selection
// itself (cart state) belongs to the caller; this endpoint only records
// that a product was picked.
type SelectionHandler struct {
	searchService *service.SearchService
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(searchService *service.SearchService) *SelectionHandler {
	return &SelectionHandler{
		searchService: searchService,
	}
}

// Submit handles POST /api/v1/selection
func (h *SelectionHandler) Submit(c *gin.Context) {
	var req model.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.searchService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product: " + err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.searchService.RecordSelection(c.Request.Context(), req.ProductID, req.Query); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record selection: " + err.Error()})
		return
	}

	response := model.SelectionResponse{
		Success: true,
		Message: "Selection recorded",
	}

	c.JSON(http.StatusOK, response)
}
