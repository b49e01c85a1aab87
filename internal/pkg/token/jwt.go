package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. El middleware los trata igual (401), pero se
// distinguen para logging y para los tests de expiración.
var (
	// ErrTokenExpired indica que el token era válido pero ya venció.
	ErrTokenExpired = errors.New("token expirado")
	// ErrTokenMalformed indica firma inválida o payload indecodificable.
	ErrTokenMalformed = errors.New("token malformado o con firma inválida")
)

// TokenService define el contrato para emitir y verificar JWTs.
type TokenService interface {
	GenerateToken(userID, email string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims define la identidad que viaja dentro del JWT: {userId, email}.
// El servidor no guarda sesiones; la validez se determina solo por la firma
// y la expiración al momento de verificar.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service implementa la interfaz TokenService con firma HMAC-SHA256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
}

// NewService crea una nueva instancia del servicio de tokens.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// GenerateToken emite un JWT firmado con el ID y el email del usuario.
// Es una función pura de identidad + secreto + reloj: no tiene efectos.
func (s *Service) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "notaria-api",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("fallo al firmar el token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifica la firma y la vigencia del token y devuelve las
// claims embebidas. Ningún campo del payload se usa antes de validar la
// firma: ParseWithClaims verifica primero y recién entonces entrega claims.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Solo aceptamos el método de firma con el que emitimos (HS256).
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
