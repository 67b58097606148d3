package shops

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/loopstackhq/loopstack-backend/api/responses"
	"github.com/loopstackhq/loopstack-backend/api/validators"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/internal/stores"
	pkgerrors "github.com/loopstackhq/loopstack-backend/pkg/errors"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

// incrementViewsHeader opts a product detail request into the view counter.
// Only the literal value "true" counts, so prefetches stay silent.
const incrementViewsHeader = "Increment-Views"

// ShopDetails returns the storefront header for a username.
func ShopDetails(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		details, err := svc.Details(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}

// ShopAbout returns the store's about page content.
func ShopAbout(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		page, err := svc.About(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ShopContact returns contact channels, business hours, and live open status.
func ShopContact(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		page, err := svc.Contact(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ShopLinks returns the store's formatted social links.
func ShopLinks(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		page, err := svc.SocialLinks(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ShopProducts lists a store's catalog with paging, category filter, and
// search. Out-of-range limits clamp rather than error.
func ShopProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := products.ListQuery{
			Page:     page,
			Limit:    limit,
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		}

		result, err := svc.List(r.Context(), chi.URLParam(r, "username"), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ShopProductDetail returns one product with related picks and store teasers.
func ShopProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		incrementViews := r.Header.Get(incrementViewsHeader) == "true"

		result, err := svc.Detail(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "productId"), incrementViews)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
