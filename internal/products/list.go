package products

import (
	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the catalog endpoint.
type ListFilters struct {
	// Category is nil when the caller asked for "all".
	Category *enums.ProductCategory
	Search   string
}

// ListInput captures the inputs needed to paginate/filter products for a store.
type ListInput struct {
	StoreID    uuid.UUID
	Filters    ListFilters
	Pagination pagination.Params
}
