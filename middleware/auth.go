package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/pkg/logger"
	"storefront/pkg/response"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware returns a wrapper that requires an HS256 bearer token signed
// with secret. With an empty secret it returns handlers unchanged.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			if tokenString == "" {
				response.Fail(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Sugar.Warnf("Invalid token: %v", err)
				response.Fail(w, http.StatusUnauthorized, "Unauthorized: Invalid or expired token")
				return
			}

			if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
				logger.Sugar.Debugf("Authorized %s %s for %s", r.Method, r.URL.Path, sub)
			}
			next.ServeHTTP(w, r)
		})
	}
}
