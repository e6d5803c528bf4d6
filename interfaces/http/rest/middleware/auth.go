package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/pkg/auth"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/common"
)

// Authenticate validates the bearer token and injects the caller into the
// request context. Requests that came through the API Gateway JWT
// authorizer are already validated; for those the user context is taken
// from the headers the Lambda handler sets.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Gateway-Authorized") == "true" {
				userID := r.Header.Get("X-User-ID")
				if userID == "" {
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Missing user context from API Gateway")
					return
				}

				userCtx := &auth.UserContext{
					UserID:   userID,
					Email:    r.Header.Get("X-User-Email"),
					Nickname: r.Header.Get("X-User-Nickname"),
				}
				next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
				return
			}

			token := extractToken(r)
			if token == "" {
				common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Missing authentication token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)

				switch err {
				case auth.ErrExpiredToken:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Token has expired")
				case auth.ErrInvalidSignature:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Invalid token signature")
				default:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Invalid token")
				}
				return
			}

			userCtx := &auth.UserContext{
				UserID:   claims.UserID,
				Email:    claims.Email,
				Nickname: claims.Nickname,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
		})
	}
}

// extractToken pulls the JWT out of the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return authHeader
}
