package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "authUser"

// AuthUser - проверенная личность из bearer-токена.
type AuthUser struct {
	ID    int
	Email string
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Authenticate проверяет заголовок Authorization: Bearer <jwt> (HS256) и
// кладёт AuthUser в контекст запроса. Протухший токен отклоняется с
// отдельным сообщением.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing or invalid authorization header")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "token has expired")
				} else {
					unauthorized(w, "invalid token")
				}
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				unauthorized(w, "invalid token")
				return
			}

			user, err := userFromClaims(claims)
			if err != nil {
				unauthorized(w, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromClaims(claims jwt.MapClaims) (AuthUser, error) {
	idClaim, ok := claims["user_id"]
	if !ok {
		return AuthUser{}, errors.New("missing 'user_id' claim in token")
	}

	var id int
	switch v := idClaim.(type) {
	case float64:
		id = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return AuthUser{}, fmt.Errorf("invalid 'user_id' claim: %q", v)
		}
		id = parsed
	default:
		return AuthUser{}, fmt.Errorf("invalid type for 'user_id' claim: %T", idClaim)
	}
	if id <= 0 {
		return AuthUser{}, fmt.Errorf("invalid user ID value in claim: %d", id)
	}

	email, _ := claims["email"].(string)
	return AuthUser{ID: id, Email: email}, nil
}

// RequireAdmin пропускает только пользователя с настроенным
// административным email. Другой модели авторизации здесь нет.
func RequireAdmin(adminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil || adminEmail == "" || !strings.EqualFold(user.Email, adminEmail) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (AuthUser, error) {
	user, ok := ctx.Value(userContextKey).(AuthUser)
	if !ok {
		return AuthUser{}, errors.New("authenticated user not found in context")
	}
	return user, nil
}
