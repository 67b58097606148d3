package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/api/middleware"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/internal/stores"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	"github.com/loopstackhq/loopstack-backend/pkg/metrics"
)

type stubStoreService struct {
	details *stores.DetailsDTO
	err     error
}

func (s *stubStoreService) Details(ctx context.Context, username string) (*stores.DetailsDTO, error) {
	return s.details, s.err
}

func (s *stubStoreService) About(ctx context.Context, username string) (*stores.AboutPageDTO, error) {
	return nil, s.err
}

func (s *stubStoreService) Contact(ctx context.Context, username string) (*stores.ContactPageDTO, error) {
	return nil, s.err
}

func (s *stubStoreService) SocialLinks(ctx context.Context, username string) (*stores.SocialLinksPageDTO, error) {
	return nil, s.err
}

type stubProductService struct {
	list *products.ListPageDTO
	err  error
}

func (s *stubProductService) List(ctx context.Context, username string, query products.ListQuery) (*products.ListPageDTO, error) {
	return s.list, s.err
}

func (s *stubProductService) Detail(ctx context.Context, username, productID string, incrementViews bool) (*products.DetailPageDTO, error) {
	return nil, s.err
}

func (s *stubProductService) ResolveForCart(ctx context.Context, productIDs []string) ([]products.CartProductDTO, error) {
	return nil, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Pricing: config.PricingConfig{
			TaxRate:               decimal.RequireFromString("0.08"),
			FreeShippingThreshold: decimal.RequireFromString("100"),
			ShippingFee:           decimal.RequireFromString("9.99"),
		},
		Checkout: config.CheckoutConfig{CurrencySymbol: "₹"},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cartStore, err := cartsvc.NewStore(cartsvc.NewMemoryStorage(), nil)
	if err != nil {
		t.Fatalf("new cart store: %v", err)
	}

	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:         testConfig(),
		Gatherer:       registry,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		CartStore:      cartStore,
		StoreService:   &stubStoreService{details: &stores.DetailsDTO{StoreName: "Craft Corner"}},
		ProductService: &stubProductService{list: &products.ListPageDTO{}},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Loopstack-Env"); got != config.AppEnvDev {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestRouterCartSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	body := `{"productId":"` + uuid.NewString() + `","storeId":"` + uuid.NewString() + `","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	session := resp.Header().Get(middleware.CartSessionHeader)
	if session == "" {
		t.Fatal("expected generated cart session header")
	}

	countReq := httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)
	countReq.Header.Set(middleware.CartSessionHeader, session)
	countResp := httptest.NewRecorder()
	router.ServeHTTP(countResp, countReq)

	if countResp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", countResp.Code)
	}

	var envelope struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(countResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("expected count 2 got %d", envelope.Data.Count)
	}
}

func TestRouterShopRoutes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/craftcorner", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate one observed request before scraping.
	warm := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in scrape output")
	}
}
