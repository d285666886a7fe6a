package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
)

// AdminToken restringe a rota a quem envia "Authorization: Bearer <token>".
// Com o token vazio na configuração, as rotas administrativas ficam fechadas.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context())

			if token == "" {
				logger.WithField("path", r.URL.Path).Warn("auth: AUTH_ADMIN_TOKEN não configurado, rota administrativa bloqueada")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Rotas administrativas desativadas", nil)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header é obrigatório", nil)
				return
			}

			bearer := strings.TrimPrefix(authHeader, "Bearer ")
			if bearer == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token é obrigatório", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(bearer), []byte(token)) != 1 {
				logger.WithField("path", r.URL.Path).Warn("auth: token administrativo inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
