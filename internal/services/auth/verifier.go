package services

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unilocal/unilocal/internal/config"
)

// FederatedIdentity — проверенные данные токена внешнего провайдера.
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier проверяет токен внешнего провайдера идентификации.
type TokenVerifier interface {
	Verify(rawToken string) (*FederatedIdentity, error)
}

type federatedClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет подпись, издателя и аудиторию токена
// внешнего провайдера. Провайдер-специфичный разбор изолирован здесь:
// остальной системе видна только FederatedIdentity.
type JWTVerifier struct {
	cfg config.FederatedProvider
}

// NewJWTVerifier создает JWTVerifier с настройками провайдера.
func NewJWTVerifier(cfg config.FederatedProvider) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

// Verify разбирает и проверяет токен, возвращая идентичность пользователя.
func (v *JWTVerifier) Verify(rawToken string) (*FederatedIdentity, error) {
	const op = "auth.Verify"

	token, err := jwt.ParseWithClaims(rawToken, &federatedClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(v.cfg.Secret), nil
		},
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*federatedClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%s: token missing subject or email", op)
	}
	return &FederatedIdentity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
