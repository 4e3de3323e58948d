package cookiestore

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newStore() *Store {
	return New(Options{Names: map[string]string{"cart": "sf_cart"}, MaxAge: time.Hour})
}

func TestJarRoundTripAcrossRequests(t *testing.T) {
	store := newStore()

	rec := httptest.NewRecorder()
	jar := store.Bind(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err := jar.SetItem("cart", `{"A":2}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "sf_cart" || !c.HttpOnly || c.Path != "/" || c.SameSite != http.SameSiteLaxMode || c.MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes %+v", c)
	}
	if strings.ContainsAny(c.Value, `{}":`) {
		t.Fatalf("cookie value should be encoded, got %q", c.Value)
	}

	next := httptest.NewRequest(http.MethodGet, "/confirmation", nil)
	next.AddCookie(c)
	got, ok, err := store.Bind(httptest.NewRecorder(), next).GetItem("cart")
	if err != nil || !ok {
		t.Fatalf("expected stored value, ok=%v err=%v", ok, err)
	}
	if got != `{"A":2}` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestJarReadsOwnWrites(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_cart", Value: EncodeValue(`{"A":1}`)})
	rec := httptest.NewRecorder()
	jar := newStore().Bind(rec, req)

	if err := jar.SetItem("cart", `{"A":5}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := jar.SetItem("cart", `{"A":6}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, _, _ := jar.GetItem("cart")
	if got != `{"A":6}` {
		t.Fatalf("expected latest write, got %q", got)
	}
	if n := len(rec.Header().Values("Set-Cookie")); n != 1 {
		t.Fatalf("expected a single Set-Cookie header, got %d", n)
	}

	if err := jar.RemoveItem("cart"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := jar.GetItem("cart"); ok {
		t.Fatalf("expected removed value to be absent")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}

func TestJarKeepsOtherCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	http.SetCookie(rec, &http.Cookie{Name: "session", Value: "abc"})
	jar := newStore().Bind(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err := jar.SetItem("cart", "{}"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if n := len(rec.Header().Values("Set-Cookie")); n != 2 {
		t.Fatalf("expected session and cart cookies, got %d", n)
	}
}

func TestJarQuota(t *testing.T) {
	rec := httptest.NewRecorder()
	jar := newStore().Bind(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	err := jar.SetItem("cart", strings.Repeat("x", 3100))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if len(rec.Header().Values("Set-Cookie")) != 0 {
		t.Fatalf("failed write must not emit a cookie")
	}
	if err := jar.SetItem("cart", strings.Repeat("x", 2000)); err != nil {
		t.Fatalf("expected small value to fit: %v", err)
	}
}

func TestJarMissingAndUndecodable(t *testing.T) {
	store := newStore()
	if _, ok, err := store.Bind(nil, httptest.NewRequest(http.MethodGet, "/", nil)).GetItem("cart"); ok || err != nil {
		t.Fatalf("expected missing value, ok=%v err=%v", ok, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_cart", Value: "%%%"})
	if _, _, err := store.Bind(nil, req).GetItem("cart"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodeValueAcceptsLegacyJSON(t *testing.T) {
	got, err := DecodeValue(`%7B%22A%22%3A1%7D`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"A":1}` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestUnmappedKeysUseKeyName(t *testing.T) {
	rec := httptest.NewRecorder()
	jar := New(Options{}).Bind(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err := jar.SetItem("prefs", "x"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "prefs" || cookies[0].MaxAge != int((30*24*time.Hour).Seconds()) {
		t.Fatalf("unexpected cookie %+v", cookies)
	}
}
