package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/loopstackhq/loopstack-backend/api/controllers/cart/dto"
	"github.com/loopstackhq/loopstack-backend/api/middleware"
	"github.com/loopstackhq/loopstack-backend/api/responses"
	"github.com/loopstackhq/loopstack-backend/api/validators"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/checkout"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	pkgerrors "github.com/loopstackhq/loopstack-backend/pkg/errors"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
)

// CartFetch returns the raw session cart.
func CartFetch(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartSnapshot(
			store.Items(r.Context(), sessionID),
			store.Count(r.Context(), sessionID),
			store.IsFull(r.Context(), sessionID),
		))
	}
}

// CartCount returns the summed quantity across the session cart.
func CartCount(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartdto.CountResponse{Count: store.Count(r.Context(), sessionID)})
	}
}

// CartAddItem adds a product to the session cart.
func CartAddItem(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		res := store.Add(r.Context(), sessionID, payload.ProductID, payload.StoreID, payload.Quantity)
		if !res.Success {
			responses.WriteError(r.Context(), logg, w, resultError(res))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartdto.MutationResult{
			Message: res.Message,
			Count:   store.Count(r.Context(), sessionID),
		})
	}
}

// CartUpdateItem sets the quantity of an existing cart entry.
func CartUpdateItem(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")

		var payload cartdto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res := store.UpdateQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if !res.Success {
			responses.WriteError(r.Context(), logg, w, resultError(res))
			return
		}

		responses.WriteSuccess(w, cartdto.MutationResult{
			Message: res.Message,
			Count:   store.Count(r.Context(), sessionID),
		})
	}
}

// CartRemoveItem drops a product from the session cart.
func CartRemoveItem(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")

		res := store.Remove(r.Context(), sessionID, productID)
		if !res.Success {
			responses.WriteError(r.Context(), logg, w, resultError(res))
			return
		}

		responses.WriteSuccess(w, cartdto.MutationResult{
			Message: res.Message,
			Count:   store.Count(r.Context(), sessionID),
		})
	}
}

// CartClear drops the whole session cart.
func CartClear(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear(r.Context(), sessionID)
		responses.WriteSuccess(w, cartdto.MutationResult{Message: "Cart cleared", Count: 0})
	}
}

// CartResolve joins cart entries with live product data and prices the order.
// Explicit product ids in the body win; otherwise the session cart supplies
// them.
func CartResolve(store *cartsvc.Store, svc products.Service, pricing config.PricingConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.ResolveCartRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		ids := payload.ProductIDs
		if len(ids) == 0 {
			ids = store.ProductIDs(r.Context(), sessionID)
		}

		rows, err := svc.ResolveForCart(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantities := sessionQuantities(store.Items(r.Context(), sessionID))
		items, lineItems := mergeResolvedRows(rows, quantities)

		responses.WriteSuccess(w, cartdto.ResolvedCart{
			Products: items,
			Summary:  checkout.ComputeTotals(lineItems, pricing),
		})
	}
}

// CartCheckout prices the session cart and builds the WhatsApp handoff link.
func CartCheckout(store *cartsvc.Store, svc products.Service, pricing config.PricingConfig, checkoutCfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := store.Items(r.Context(), sessionID)
		if len(entries) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		ids := make([]string, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.ProductID)
		}

		rows, err := svc.ResolveForCart(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(rows) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no valid products in cart"))
			return
		}

		quantities := sessionQuantities(entries)
		_, lineItems := mergeResolvedRows(rows, quantities)
		totals := checkout.ComputeTotals(lineItems, pricing)

		contact := contactForRows(rows, checkoutCfg.FallbackContact)
		message := checkout.FormatMessage(lineItems, totals, checkoutCfg.CurrencySymbol)
		url, ok := checkout.BuildURL(contact, message)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no contact number available for checkout"))
			return
		}

		responses.WriteSuccess(w, cartdto.CheckoutResponse{
			Message: message,
			URL:     url,
			Contact: contact,
			Summary: totals,
		})
	}
}

func sessionFromContext(r *http.Request) (string, error) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, nil
}

func resultError(res cartsvc.Result) error {
	if res.Message == "Item not found in cart" {
		return pkgerrors.New(pkgerrors.CodeNotFound, res.Message)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, res.Message)
}
