package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/internal/checkout"
	"github.com/loopstackhq/loopstack-backend/internal/products"
)

// AddItemRequest puts a product in the session cart. Quantity defaults to one
// when omitted.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	StoreID   string `json:"storeId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateQuantityRequest sets the absolute quantity of an existing cart entry.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ResolveCartRequest asks for product data for the given ids. When the list is
// omitted the caller's session cart supplies the ids.
type ResolveCartRequest struct {
	ProductIDs []string `json:"productIds,omitempty"`
}

// CartItem is one entry of the session cart as stored.
type CartItem struct {
	ProductID string `json:"productId"`
	StoreID   string `json:"storeId"`
	Quantity  int    `json:"quantity"`
}

// CartSnapshot is the raw session cart.
type CartSnapshot struct {
	Items  []CartItem `json:"items"`
	Count  int        `json:"count"`
	IsFull bool       `json:"isFull"`
}

// MutationResult reports the outcome of a cart mutation plus the new item
// count so clients can update badges without a second round trip.
type MutationResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CountResponse carries the summed quantity across the session cart.
type CountResponse struct {
	Count int `json:"count"`
}

// ResolvedItem is a cart entry joined with its product data.
type ResolvedItem struct {
	products.CartProductDTO
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ResolvedCart is the hydrated cart page payload.
type ResolvedCart struct {
	Products []ResolvedItem  `json:"products"`
	Summary  checkout.Totals `json:"summary"`
}

// CheckoutResponse hands the client a prefilled WhatsApp conversation link.
type CheckoutResponse struct {
	Message string          `json:"message"`
	URL     string          `json:"url"`
	Contact string          `json:"contact"`
	Summary checkout.Totals `json:"summary"`
}
