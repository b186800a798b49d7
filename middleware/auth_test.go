package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authedHandler() (http.Handler, *AuthUser) {
	var captured AuthUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := UserFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		captured = user
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(testSecret)(next), &captured
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestAuthenticateValidToken(t *testing.T) {
	handler, captured := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"email":   "player1@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.ID != 7 || captured.Email != "player1@example.com" {
		t.Fatalf("unexpected auth user: %+v", captured)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler, _ := authedHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "missing or invalid authorization header" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handler, _ := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "token has expired" {
		t.Fatalf("expected expiry message, got %q", msg)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	handler, _ := authedHandler()

	token := signToken(t, []byte("other-secret"), jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid token" {
		t.Fatalf("expected invalid token message, got %q", msg)
	}
}

func TestAuthenticateBadClaims(t *testing.T) {
	handler, _ := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid token claims" {
		t.Fatalf("expected claims message, got %q", msg)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := Authenticate(testSecret)(RequireAdmin("admin@example.com")(next))

	tests := []struct {
		name     string
		email    string
		wantCode int
	}{
		{name: "admin passes", email: "admin@example.com", wantCode: http.StatusOK},
		{name: "case insensitive", email: "Admin@Example.com", wantCode: http.StatusOK},
		{name: "ordinary user rejected", email: "player1@example.com", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, testSecret, jwt.MapClaims{
				"user_id": 1,
				"email":   tt.email,
				"exp":     time.Now().Add(time.Hour).Unix(),
			})
			req := httptest.NewRequest(http.MethodPatch, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			chain.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestRequireAdminUnconfigured(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := Authenticate(testSecret)(RequireAdmin("")(next))

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 1,
		"email":   "admin@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin email unconfigured, got %d", rec.Code)
	}
}
