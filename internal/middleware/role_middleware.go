package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

type contextKey string

const (
	ContextKeyRole   = contextKey("role")
	ContextKeyUserID = contextKey("userID")

	// RoleHeader carries the viewer role when no public key is configured.
	RoleHeader = "X-User-Role"
)

// RoleMiddleware resolves the viewer role for every request.
//   - pub != nil => Authorization: Bearer <RS256 JWT> with a "role" claim
//   - pub == nil => the X-User-Role header (development only)
//
// A role outside the known set is rejected with 403.
func RoleMiddleware(pub *rsa.PublicKey, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var rawRole string

			if pub == nil {
				rawRole = r.Header.Get(RoleHeader)
				if rawRole == "" {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing "+RoleHeader+" header", nil,
					)
					return
				}
			} else {
				h := r.Header.Get("Authorization")
				if !strings.HasPrefix(h, "Bearer ") {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "missing Authorization header", nil,
					)
					return
				}

				tok, vErr := ValidateToken(strings.TrimPrefix(h, "Bearer "), pub, issuer)
				if vErr != nil {
					if errors.Is(vErr, jwt.ErrTokenExpired) {
						utils.RespondErrorWithCode(
							w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", vErr,
						)
						return
					}
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", vErr,
					)
					return
				}

				claims := tok.Claims.(jwt.MapClaims)
				rawRole, _ = claims["role"].(string)
				if sub, ok := claims["sub"].(string); ok {
					ctx = context.WithValue(ctx, ContextKeyUserID, sub)
				}
			}

			role, err := models.ParseRole(rawRole)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Unknown role", nil, err,
				)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleFromContext returns the role set by RoleMiddleware.
func RoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(ContextKeyRole).(models.Role)
	return role, ok
}
