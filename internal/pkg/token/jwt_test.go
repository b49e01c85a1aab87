package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"notaria/internal/pkg/token"
)

// TestGenerarYValidar verifica la propiedad de ida y vuelta: un token emitido
// y verificado con el mismo secreto conserva el userId y el email.
func TestGenerarYValidar(t *testing.T) {
	svc := token.NewService("secreto-de-test", time.Hour)

	tokenString, err := svc.GenerateToken("user-123", "alice@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "notaria-api", claims.Issuer)
}

// TestTokenExpirado verifica que un token vencido produce ErrTokenExpired,
// distinguible del token malformado.
func TestTokenExpirado(t *testing.T) {
	svc := token.NewService("secreto-de-test", -time.Minute)

	tokenString, err := svc.GenerateToken("user-123", "alice@example.com")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

// TestTokenBasura verifica el rechazo de strings que no son JWTs.
func TestTokenBasura(t *testing.T) {
	svc := token.NewService("secreto-de-test", time.Hour)

	for _, bad := range []string{"", "no-es-un-jwt", "aaa.bbb.ccc"} {
		_, err := svc.ValidateToken(bad)
		assert.ErrorIs(t, err, token.ErrTokenMalformed)
	}
}

// TestSecretoDistinto verifica que un token firmado con otro secreto no valida.
func TestSecretoDistinto(t *testing.T) {
	emisor := token.NewService("secreto-a", time.Hour)
	verificador := token.NewService("secreto-b", time.Hour)

	tokenString, err := emisor.GenerateToken("user-123", "alice@example.com")
	assert.NoError(t, err)

	_, err = verificador.ValidateToken(tokenString)
	assert.ErrorIs(t, err, token.ErrTokenMalformed)
}

// TestMetodoDeFirmaInesperado verifica el rechazo de tokens con alg=none,
// aunque el payload sea decodificable.
func TestMetodoDeFirmaInesperado(t *testing.T) {
	svc := token.NewService("secreto-de-test", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-123",
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, token.ErrTokenMalformed)
}
