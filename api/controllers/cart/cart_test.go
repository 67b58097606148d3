package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdto "github.com/loopstackhq/loopstack-backend/api/controllers/cart/dto"
	"github.com/loopstackhq/loopstack-backend/api/middleware"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

type stubProductService struct {
	rows    []products.CartProductDTO
	err     error
	lastIDs []string
}

func (s *stubProductService) List(ctx context.Context, username string, query products.ListQuery) (*products.ListPageDTO, error) {
	return nil, s.err
}

func (s *stubProductService) Detail(ctx context.Context, username, productID string, incrementViews bool) (*products.DetailPageDTO, error) {
	return nil, s.err
}

func (s *stubProductService) ResolveForCart(ctx context.Context, productIDs []string) ([]products.CartProductDTO, error) {
	s.lastIDs = productIDs
	return s.rows, s.err
}

func testPricing() config.PricingConfig {
	return config.PricingConfig{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.RequireFromString("100"),
		ShippingFee:           decimal.RequireFromString("9.99"),
	}
}

func newTestStore(t *testing.T) *cartsvc.Store {
	t.Helper()
	store, err := cartsvc.NewStore(cartsvc.NewMemoryStorage(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func contactPtr(v string) *string { return &v }

func resolvedRow(name, contact string, offer string) products.CartProductDTO {
	row := products.CartProductDTO{
		ID:         uuid.New(),
		Name:       name,
		Image:      "/api/placeholder/150/150",
		OfferPrice: decimal.RequireFromString(offer),
		Store: products.CartStoreDTO{
			ID:          uuid.New(),
			DisplayName: "Craft Corner",
		},
	}
	if contact != "" {
		row.Store.ContactNumber = contactPtr(contact)
	}
	return row
}

func TestCartAddItemSuccess(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	handler := CartAddItem(store, nil)

	body := `{"productId":"` + uuid.NewString() + `","storeId":"` + uuid.NewString() + `","quantity":2}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.MutationResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message != "Item added to cart successfully" {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("expected count 2 got %d", envelope.Data.Count)
	}
}

func TestCartAddItemDefaultsQuantity(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	handler := CartAddItem(store, nil)

	body := `{"productId":"` + uuid.NewString() + `","storeId":"` + uuid.NewString() + `"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := store.Count(context.Background(), session); got != 1 {
		t.Fatalf("expected quantity 1 got %d", got)
	}
}

func TestCartAddItemRejectsBadBody(t *testing.T) {
	handler := CartAddItem(newTestStore(t), nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":"not-a-uuid"}`)), uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemFullCart(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()
	storeID := uuid.NewString()
	for i := 0; i < cartsvc.MaxItems; i++ {
		store.Add(ctx, session, uuid.NewString(), storeID, 1)
	}

	handler := CartAddItem(store, nil)
	body := `{"productId":"` + uuid.NewString() + `","storeId":"` + storeID + `","quantity":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "Cart is full! Maximum 10 items allowed." {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestCartFetchReturnsSnapshot(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()
	productID := uuid.NewString()
	store.Add(ctx, session, productID, uuid.NewString(), 3)

	handler := CartFetch(store, nil)
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartdto.CartSnapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].ProductID != productID {
		t.Fatalf("unexpected items %+v", envelope.Data.Items)
	}
	if envelope.Data.Count != 3 {
		t.Fatalf("expected count 3 got %d", envelope.Data.Count)
	}
	if envelope.Data.IsFull {
		t.Fatal("cart with one entry must not report full")
	}
}

func TestCartFetchWithoutSession(t *testing.T) {
	handler := CartFetch(newTestStore(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartUpdateItem(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()
	productID := uuid.NewString()
	store.Add(ctx, session, productID, uuid.NewString(), 1)

	handler := CartUpdateItem(store, nil)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+productID, strings.NewReader(`{"quantity":5}`))
	req = withURLParam(withSession(req, session), "productId", productID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := store.QuantityOf(ctx, session, productID); got != 5 {
		t.Fatalf("expected quantity 5 got %d", got)
	}
}

func TestCartUpdateItemNotFound(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	productID := uuid.NewString()

	handler := CartUpdateItem(store, nil)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+productID, strings.NewReader(`{"quantity":5}`))
	req = withURLParam(withSession(req, session), "productId", productID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartRemoveItem(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()
	productID := uuid.NewString()
	store.Add(ctx, session, productID, uuid.NewString(), 1)

	handler := CartRemoveItem(store, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+productID, nil)
	req = withURLParam(withSession(req, session), "productId", productID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if store.Contains(ctx, session, productID) {
		t.Fatal("product should be gone after removal")
	}
}

func TestCartClear(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()
	store.Add(ctx, session, uuid.NewString(), uuid.NewString(), 2)

	handler := CartClear(store, nil)
	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := store.Count(ctx, session); got != 0 {
		t.Fatalf("expected empty cart got count %d", got)
	}
}

func TestCartResolveUsesSessionQuantities(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()

	row := resolvedRow("Handmade Mug", "919876543210", "50")
	store.Add(ctx, session, row.ID.String(), row.Store.ID.String(), 3)

	svc := &stubProductService{rows: []products.CartProductDTO{row}}
	handler := CartResolve(store, svc, testPricing(), nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/resolve", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.lastIDs) != 1 || svc.lastIDs[0] != row.ID.String() {
		t.Fatalf("expected session ids forwarded, got %v", svc.lastIDs)
	}

	var envelope struct {
		Data cartdto.ResolvedCart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) != 1 {
		t.Fatalf("expected one product got %d", len(envelope.Data.Products))
	}
	item := envelope.Data.Products[0]
	if item.Quantity != 3 {
		t.Fatalf("expected quantity 3 got %d", item.Quantity)
	}
	if !item.LineTotal.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("unexpected line total %s", item.LineTotal)
	}
	// 150 subtotal clears the free shipping threshold.
	if !envelope.Data.Summary.Shipping.IsZero() {
		t.Fatalf("expected free shipping got %s", envelope.Data.Summary.Shipping)
	}
	if !envelope.Data.Summary.Total.Equal(decimal.RequireFromString("162")) {
		t.Fatalf("unexpected total %s", envelope.Data.Summary.Total)
	}
}

func TestCartResolveExplicitIDs(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()

	row := resolvedRow("Handmade Mug", "", "20")
	svc := &stubProductService{rows: []products.CartProductDTO{row}}
	handler := CartResolve(store, svc, testPricing(), nil)

	body := `{"productIds":["` + row.ID.String() + `"]}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/resolve", strings.NewReader(body)), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.ResolvedCart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) != 1 || envelope.Data.Products[0].Quantity != 1 {
		t.Fatalf("explicit ids default to quantity 1, got %+v", envelope.Data.Products)
	}
}

func TestCartCheckoutBuildsWhatsAppLink(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()

	row := resolvedRow("Handmade Mug", "919876543210", "25.50")
	store.Add(ctx, session, row.ID.String(), row.Store.ID.String(), 2)

	svc := &stubProductService{rows: []products.CartProductDTO{row}}
	handler := CartCheckout(store, svc, testPricing(), config.CheckoutConfig{CurrencySymbol: "₹"}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.CheckoutResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Contact != "919876543210" {
		t.Fatalf("unexpected contact %q", envelope.Data.Contact)
	}
	if !strings.HasPrefix(envelope.Data.URL, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected url %q", envelope.Data.URL)
	}
	if !strings.Contains(envelope.Data.Message, "Handmade Mug (Qty: 2) - ₹51.00") {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
	// 51 subtotal stays under the threshold, so shipping applies.
	if !envelope.Data.Summary.Shipping.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("unexpected shipping %s", envelope.Data.Summary.Shipping)
	}
}

func TestCartCheckoutEmptyCart(t *testing.T) {
	handler := CartCheckout(newTestStore(t), &stubProductService{}, testPricing(), config.CheckoutConfig{}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartCheckoutFallbackContact(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()

	row := resolvedRow("Handmade Mug", "", "10")
	store.Add(ctx, session, row.ID.String(), row.Store.ID.String(), 1)

	svc := &stubProductService{rows: []products.CartProductDTO{row}}
	handler := CartCheckout(store, svc, testPricing(), config.CheckoutConfig{CurrencySymbol: "₹", FallbackContact: "1234567890"}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.CheckoutResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Contact != "1234567890" {
		t.Fatalf("expected fallback contact, got %q", envelope.Data.Contact)
	}
}

func TestCartCheckoutNoContactAvailable(t *testing.T) {
	store := newTestStore(t)
	session := uuid.NewString()
	ctx := context.Background()

	row := resolvedRow("Handmade Mug", "", "10")
	store.Add(ctx, session, row.ID.String(), row.Store.ID.String(), 1)

	svc := &stubProductService{rows: []products.CartProductDTO{row}}
	handler := CartCheckout(store, svc, testPricing(), config.CheckoutConfig{CurrencySymbol: "₹"}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), session)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
