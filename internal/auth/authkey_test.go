package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"authkey 0987654321", true},
		{"authkey 0987654321 ", false},
		{"Authkey 0987654321", false},
		{"Bearer 0987654321", false},
		{"0987654321", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Check(tt.header, "0987654321"); got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestVerifyMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := Verify(req, "k"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	req.Header.Set(echo.HeaderAuthorization, Header("k"))
	if err := Verify(req, "k"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestKeyMiddleware(t *testing.T) {
	e := echo.New()
	called := false
	h := KeyMiddleware("k", func(c echo.Context) bool {
		return c.Request().URL.Path == "/open"
	})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := h(e.NewContext(req, httptest.NewRecorder()))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest || he.Message != UnauthorizedText {
		t.Fatalf("expected 400 %q, got %v", UnauthorizedText, err)
	}
	if called {
		t.Fatal("handler must not run for unauthorized request")
	}

	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	if err := h(e.NewContext(req, httptest.NewRecorder())); err != nil || !called {
		t.Fatalf("skipped path should reach handler, err=%v", err)
	}
}
