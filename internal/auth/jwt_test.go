package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() { gin.SetMode(gin.TestMode) }

func engine(secret string) *gin.Engine {
	r := gin.New()
	r.Use(Middleware(secret))
	r.GET("/me", func(c *gin.Context) {
		uid, ok := UserIDFromContext(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(uid))
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareBearer(t *testing.T) {
	tok, err := NewVerifier("s3cret").Sign("alice", jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := do(engine("s3cret"), req)
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestMiddlewareQueryToken(t *testing.T) {
	tok, _ := NewVerifier("s3cret").Sign("bob", jwt.RegisteredClaims{})
	w := do(engine("s3cret"), httptest.NewRequest(http.MethodGet, "/me?token="+tok, nil))
	if w.Body.String() != "bob" {
		t.Fatalf("got %q", w.Body.String())
	}
}

func TestMiddlewareNoToken(t *testing.T) {
	w := do(engine("s3cret"), httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	tok, _ := NewVerifier("other").Sign("mallory", jwt.RegisteredClaims{})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	if w := do(engine("s3cret"), req); w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestMiddlewareRejectsExpired(t *testing.T) {
	tok, _ := NewVerifier("s3cret").Sign("alice", jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	if w := do(engine("s3cret"), req); w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	if w := do(engine(""), req); w.Body.String() != "anonymous" {
		t.Fatalf("got %q", w.Body.String())
	}
}
