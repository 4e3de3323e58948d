package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/views"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/cookiestore"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Port: "0", CORSOrigins: []string{"https://shop.example"}},
		Cookie:    config.CookieConfig{Name: "cart", MaxAge: time.Hour},
		RateLimit: config.CheckoutRateLimitConfig{Window: time.Minute, Limit: 10},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *prometheus.Registry) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	cat, err := catalog.Load("../../internal/catalog/testdata/store-config.json")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	renderer, err := views.New(nil)
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)

	return NewRouter(
		cfg,
		logg,
		stubPinger{},         // db.Pinger
		(*redis.Client)(nil), // *redis.Client
		cat,
		checkout.NewService(checkout.ServiceParams{Catalog: cat, Logger: logg, Metrics: m}),
		renderer,
		cookiestore.New(cookiestore.Options{Names: map[string]string{"cart": cfg.Cookie.Name}, MaxAge: cfg.Cookie.MaxAge}),
		m,
		reg,
	), reg
}

// browser replays cookies between requests like a real client.
type browser struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, router http.Handler) *browser {
	return &browser{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	b.router.ServeHTTP(resp, req)
	for _, c := range resp.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return resp
}

func (b *browser) form(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func TestHealthRoutes(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	for _, path := range []string{"/health/live", "/health/ready", "/api/public/ping"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"NOT_FOUND"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestAPICartFlow(t *testing.T) {
	router, reg := newTestRouter(t, testConfig())
	b := newBrowser(t, router)

	for _, id := range []string{"A", "A", "B"} {
		resp := b.do(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/"+id, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("add %s: expected 200 got %d", id, resp.Code)
		}
	}

	resp := b.do(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	var envelope struct {
		Data struct {
			TotalItems  int   `json:"totalItems"`
			TotalPrice  int64 `json:"totalPrice"`
			CanCheckout bool  `json:"canCheckout"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if envelope.Data.TotalItems != 3 || envelope.Data.TotalPrice != 25000 || !envelope.Data.CanCheckout {
		t.Fatalf("unexpected cart %+v", envelope.Data)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"name":"Budi","email":"b@x.id","phone":"0812"}`))
	resp = b.do(req)
	if resp.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "https://wa.me/6281234567890?text=") {
		t.Fatalf("unexpected checkout body %s", resp.Body.String())
	}
	if _, ok := b.cookies["cart"]; ok {
		t.Fatalf("expected cart cookie to be cleared after checkout")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"storefront_cart_mutations_total", "storefront_cart_loads_total", "storefront_checkout_links_total"} {
		if !found[name] {
			t.Fatalf("expected metric %s to be recorded", name)
		}
	}
}

func TestPageFlow(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	b := newBrowser(t, router)

	resp := b.do(httptest.NewRequest(http.MethodGet, "/confirmation", nil))
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to catalog, got %d %q", resp.Code, resp.Header().Get("Location"))
	}

	for i := 0; i < 3; i++ {
		resp = b.form("/cart/add", "productId=A")
		if resp.Code != http.StatusSeeOther {
			t.Fatalf("add: expected 303 got %d", resp.Code)
		}
	}

	resp = b.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `href="/confirmation"`) {
		t.Fatalf("catalog should enable continue once minimum is met")
	}

	resp = b.do(httptest.NewRequest(http.MethodGet, "/confirmation", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Voucher Pulsa 10K") {
		t.Fatalf("unexpected confirmation page %d", resp.Code)
	}

	resp = b.form("/confirmation/checkout", "name=Budi&email=b%40x.id&phone=0812")
	if resp.Code != http.StatusSeeOther || !strings.HasPrefix(resp.Header().Get("Location"), "https://wa.me/") {
		t.Fatalf("expected redirect to wa.me, got %d %q", resp.Code, resp.Header().Get("Location"))
	}

	resp = b.do(httptest.NewRequest(http.MethodGet, "/confirmation", nil))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("cleared cart should redirect, got %d", resp.Code)
	}
}

func TestCORSOnAPI(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	b := newBrowser(t, router)
	b.do(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `storefront_cart_loads_total{status="missing"} 1`) {
		t.Fatalf("expected cart load metric, got %s", resp.Body.String())
	}
}
