package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
	pkgAuth "github.com/devxankit/Electrici-toys/internal/pkg/auth"
	testhelpers "github.com/devxankit/Electrici-toys/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, httptest.NewRequest(http.MethodGet, "/", nil)); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, bearer("token")); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: context.DeadlineExceeded}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, bearer("token")); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var stored model.Actor
	want := model.Actor{UserID: "u-42", Role: model.RoleUser}
	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Actor: want}))
	router.GET("/", func(c *gin.Context) {
		if v, ok := c.Get(ActorContextKey); ok {
			stored = v.(model.Actor)
		}
		c.Status(http.StatusOK)
	})
	if resp := serve(router, bearer("token")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stored != want {
		t.Fatalf("expected actor %+v, got %+v", want, stored)
	}
}

func TestAuthRequiredWithRealStrategy(t *testing.T) {
	strategy := pkgAuth.NewHMACStrategy("secret", pkgAuth.Options{TTL: time.Minute})
	token, err := strategy.IssueToken(model.Actor{UserID: "u-1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	router := gin.New()
	router.Use(AuthRequired(strategy), AdminRequired())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	if resp := serve(router, bearer(token)); resp.Code != http.StatusNoContent {
		t.Fatalf("expected admin access, got %d", resp.Code)
	}
	if resp := serve(router, bearer(token+"x")); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected tampered token rejected, got %d", resp.Code)
	}
}

func TestAdminRequired(t *testing.T) {
	parser := testhelpers.TokenParserStub{Tokens: map[string]model.Actor{
		"admin": {UserID: "a-1", Role: model.RoleAdmin},
		"user":  {UserID: "u-1", Role: model.RoleUser},
	}, Err: pkgAuth.ErrInvalidToken}

	router := gin.New()
	router.Use(AuthRequired(parser), AdminRequired())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if resp := serve(router, bearer("admin")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}
	if resp := serve(router, bearer("user")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user, got %d", resp.Code)
	}

	bare := gin.New()
	bare.Use(AdminRequired())
	bare.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	if resp := serve(bare, httptest.NewRequest(http.MethodGet, "/", nil)); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without actor, got %d", resp.Code)
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(io.ErrUnexpectedEOF)
		c.Status(http.StatusInternalServerError)
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if !bytes.Contains(buf.Bytes(), []byte(`"level":"INFO"`)) || !bytes.Contains(buf.Bytes(), []byte(`"path":"/ok"`)) {
		t.Fatalf("expected info entry, got %s", buf.String())
	}

	buf.Reset()
	serve(router, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if !bytes.Contains(buf.Bytes(), []byte(`"level":"ERROR"`)) || !bytes.Contains(buf.Bytes(), []byte("unexpected EOF")) {
		t.Fatalf("expected error entry, got %s", buf.String())
	}
}

type observation struct {
	handler string
	status  int
}

type observerStub struct {
	mu   sync.Mutex
	seen []observation
}

func (o *observerStub) ObserveRequest(handler string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observation{handler: handler, status: status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &observerStub{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/api/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if len(observer.seen) != 2 {
		t.Fatalf("expected two observations, got %d", len(observer.seen))
	}
	if observer.seen[0] != (observation{"/api/orders/:id", http.StatusOK}) {
		t.Fatalf("unexpected observation %+v", observer.seen[0])
	}
	if observer.seen[1] != (observation{"unmatched", http.StatusNotFound}) {
		t.Fatalf("unexpected observation %+v", observer.seen[1])
	}
}

func TestTracingStartsServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	router := gin.New()
	router.Use(Tracing())
	router.GET("/api/orders/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/1", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].Name() != "GET /api/orders/:id" {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
	if spans[0].Status().Code.String() != "Error" {
		t.Fatalf("expected error status, got %v", spans[0].Status())
	}
}
