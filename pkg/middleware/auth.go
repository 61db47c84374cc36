package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"car-rental/internal/data/repository"
	"car-rental/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Auth verifies the identity provider's session token and resolves its
// subject to a local user row. Requests without a matching user are
// rejected: rows are provisioned by the provider webhook, so a valid token
// with no row means the webhook has not landed yet.
func Auth(secret string, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Rejected session token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := userRepo.FindByExternalID(r.Context(), subject)
			if err != nil {
				logger.Error("Failed to resolve session subject",
					zap.Error(err),
					zap.String("subject", subject),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Session token for unknown user", zap.String("subject", subject))
				utils.ResponseUnauthorized(w, "Unknown user")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.ExternalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
