package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/beachleague/channel/internal/auth"
)

type echoHandler struct{}

func (echoHandler) Register(e *echo.Echo) {
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "fine") })
	e.GET("/teapot", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })
	e.GET("/boom", func(c echo.Context) error { return io.ErrUnexpectedEOF })
}

func newTestServer(opts Options) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts.AuthKey = "k"
	return NewServer(log, opts, echoHandler{}, nil)
}

func serve(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAuthorization, auth.Header("k"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServerPlainTextErrors(t *testing.T) {
	s := newTestServer(Options{})

	rec := serve(s, "/teapot")
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = serve(s, "/boom")
	if rec.Code != http.StatusInternalServerError || rec.Body.String() != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestServerSetsRequestID(t *testing.T) {
	rec := serve(newTestServer(Options{}), "/ok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatal("expected request id header")
	}
}

func TestServerUnknownRouteRequiresAuth(t *testing.T) {
	s := newTestServer(Options{})
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != auth.UnauthorizedText {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	if rec := serve(s, "/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when authorized, got %d", rec.Code)
	}
}

func TestServerRateLimit(t *testing.T) {
	s := newTestServer(Options{RateLimit: 0.001})
	if rec := serve(s, "/ok"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	limited := false
	for i := 0; i < 5; i++ {
		if serve(s, "/ok").Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatal("expected rate limiting to kick in")
	}
}

func TestServerRejectsUnauthorizedBeforeLimits(t *testing.T) {
	s := newTestServer(Options{RateLimit: 0.001})

	body := strings.NewReader(`{"content":"` + strings.Repeat("a", 2<<20) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/ok", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || rec.Body.String() != auth.UnauthorizedText {
		t.Fatalf("oversized unauthorized post: unexpected response %d %q", rec.Code, rec.Body.String())
	}

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest || rec.Body.String() != auth.UnauthorizedText {
			t.Fatalf("request %d: unexpected response %d %q", i, rec.Code, rec.Body.String())
		}
	}
}

func TestServerBodyLimitAppliesWhenAuthorized(t *testing.T) {
	s := newTestServer(Options{})
	body := strings.NewReader(strings.Repeat("a", 2<<20))
	req := httptest.NewRequest(http.MethodPost, "/ok", body)
	req.Header.Set(echo.HeaderAuthorization, auth.Header("k"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}
