package catalog

import (
	"context"

	"storefront/internal/model"
)

// Supplier yields the product catalog. The search core never observes
// retrieval failures; suppliers surface them to the service layer, and an
// absent catalog is represented downstream as an empty list.
type Supplier interface {
	Products(ctx context.Context) ([]model.Product, error)
}
