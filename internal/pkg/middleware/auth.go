package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperror "notaria/internal/errors"
	"notaria/internal/pkg/token"
)

// ContextKey es el tipo de la clave con la que se anexan las claims al
// contexto. Un tipo propio no exportable en su valor evita colisiones con
// claves string de otros paquetes.
type ContextKey int

const (
	// UserClaimsKey es la clave bajo la que viajan las claims del usuario.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa la identidad resuelta del token JWT que se anexa al
// contexto de la request para las capas siguientes.
type UserClaims struct {
	UserID string
	Email  string
}

// TokenService define el contrato de verificación que necesita el middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware crea el middleware que protege toda ruta autenticada:
// extrae el bearer token del header Authorization, lo verifica y anexa la
// identidad al contexto. Ausencia, malformación o expiración terminan la
// request con 401; no hay refresh silencioso.
//
// La verificación no consulta la DB: un token válido de un usuario ya
// eliminado sigue siendo aceptado hasta su expiración. Es una decisión
// conocida del diseño sin sesiones del lado del servidor.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extraer el token del header "Authorization: Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, "Token de autorización ausente o malformado.")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Validar el token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeAuthError(w, "Token inválido o expirado.")
				return
			}

			// 3. Anexar las claims al contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Email:  claims.Email,
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext extrae las claims del contexto en los handlers.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// writeAuthError responde un 401 con el mismo cuerpo JSON estandarizado que
// usan los handlers para el resto de los errores.
func writeAuthError(w http.ResponseWriter, msg string) {
	appErr := apperror.NewUnauthorizedError(msg)
	status, category, message := apperror.MapToHTTPStatus(appErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}
