package cart

import (
	cartdto "github.com/loopstackhq/loopstack-backend/api/controllers/cart/dto"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/checkout"
	"github.com/loopstackhq/loopstack-backend/internal/products"
)

func newCartSnapshot(entries []cartsvc.Entry, count int, isFull bool) cartdto.CartSnapshot {
	items := make([]cartdto.CartItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, cartdto.CartItem{
			ProductID: entry.ProductID,
			StoreID:   entry.StoreID,
			Quantity:  entry.Quantity,
		})
	}
	return cartdto.CartSnapshot{Items: items, Count: count, IsFull: isFull}
}

func sessionQuantities(entries []cartsvc.Entry) map[string]int {
	quantities := make(map[string]int, len(entries))
	for _, entry := range entries {
		quantities[entry.ProductID] = entry.Quantity
	}
	return quantities
}

// mergeResolvedRows pairs resolved product rows with session quantities.
// Rows without a session entry count as one, covering explicit-id lookups.
func mergeResolvedRows(rows []products.CartProductDTO, quantities map[string]int) ([]cartdto.ResolvedItem, []checkout.LineItem) {
	items := make([]cartdto.ResolvedItem, 0, len(rows))
	lineItems := make([]checkout.LineItem, 0, len(rows))

	for _, row := range rows {
		quantity := quantities[row.ID.String()]
		if quantity < 1 {
			quantity = 1
		}

		line := checkout.LineItem{Name: row.Name, UnitPrice: row.OfferPrice, Quantity: quantity}
		lineItems = append(lineItems, line)
		items = append(items, cartdto.ResolvedItem{
			CartProductDTO: row,
			Quantity:       quantity,
			LineTotal:      line.Total(),
		})
	}

	return items, lineItems
}

// contactForRows picks the seller phone number for the WhatsApp handoff:
// the first resolved store with a contact number, else the configured
// platform fallback.
func contactForRows(rows []products.CartProductDTO, fallback string) string {
	for _, row := range rows {
		if row.Store.ContactNumber != nil && *row.Store.ContactNumber != "" {
			return *row.Store.ContactNumber
		}
	}
	return fallback
}
