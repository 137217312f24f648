package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret-key-0123456789")

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	verifier := NewVerifier(testSecret)

	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected subject a@x.com, got %q", claims.Email)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	verifier := NewVerifier([]byte("another-secret-entirely"))

	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with a different secret must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer(testSecret, -time.Minute)
	verifier := NewVerifier(testSecret)

	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func runMiddleware(t *testing.T, authHeader string) (error, string) {
	t.Helper()

	verifier := NewVerifier(testSecret)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var subject string
	handler := verifier.Middleware()(func(c echo.Context) error {
		subject = EmailFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	return handler(c), subject
}

func TestMiddleware_MissingHeader(t *testing.T) {
	err, _ := runMiddleware(t, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 HTTPError, got %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	err, _ := runMiddleware(t, "Token abc.def.ghi")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 HTTPError, got %v", err)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	err, _ := runMiddleware(t, "Bearer not-a-real-token")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 HTTPError, got %v", err)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	issuer := NewIssuer(testSecret, -time.Minute)
	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	err, _ = runMiddleware(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 HTTPError for expired token, got %v", err)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	err, subject := runMiddleware(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected handler to run, got %v", err)
	}
	if subject != "a@x.com" {
		t.Errorf("expected subject a@x.com on context, got %q", subject)
	}
}

type roleCheckerFunc func(ctx context.Context, email string) (bool, error)

func (f roleCheckerFunc) IsAdmin(ctx context.Context, email string) (bool, error) {
	return f(ctx, email)
}

func runRequireAdmin(t *testing.T, subject string, rc RoleChecker) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/doctor", nil)
	if subject != "" {
		ctx := context.WithValue(req.Context(), EmailKey, subject)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAdmin(rc)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireAdmin_NoSubject(t *testing.T) {
	err := runRequireAdmin(t, "", roleCheckerFunc(func(context.Context, string) (bool, error) {
		return true, nil
	}))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	err := runRequireAdmin(t, "a@x.com", roleCheckerFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 HTTPError, got %v", err)
	}
}

func TestRequireAdmin_LookupError(t *testing.T) {
	err := runRequireAdmin(t, "a@x.com", roleCheckerFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("store down")
	}))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 HTTPError, got %v", err)
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	err := runRequireAdmin(t, "admin@x.com", roleCheckerFunc(func(_ context.Context, email string) (bool, error) {
		return email == "admin@x.com", nil
	}))
	if err != nil {
		t.Errorf("expected handler to run, got %v", err)
	}
}
