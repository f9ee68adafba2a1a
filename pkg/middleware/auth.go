package middleware

import (
	"net/http"
	"strings"

	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the JWT from the token cookie or an
// "Authorization: Bearer" header and rejects revoked tokens.
func Authenticate(tokenRepo repository.TokenRepository, secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				logger.Warn("Invalid token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			revoked, err := tokenRepo.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation",
					zap.String("token_id", claims.ID),
					zap.Error(err))
				utils.ResponseInternalError(w)
				return
			}
			if revoked {
				logger.Warn("Revoked token used", zap.String("token_id", claims.ID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetAuthContext(r.Context(), claims)))
		})
	}
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}

	if cookie, err := r.Cookie(utils.TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
