package authprovider

import (
	"context"
	"fmt"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/pkg/jwt"
)

var _ ports.TokenVerifier = (*JWTVerifier)(nil)

// JWTVerifier valida tokens HS256 firmados con un secreto compartido.
type JWTVerifier struct {
	secret string
	issuer string
}

// NewJWTVerifier construye el verificador. issuer vacío = no se comprueba el emisor.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: secret, issuer: issuer}
}

// Verify implementa ports.TokenVerifier.
func (v *JWTVerifier) Verify(_ context.Context, token string) (*ports.Principal, error) {
	claims, err := jwt.Parse(v.secret, v.issuer, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.Client
	}
	return &ports.Principal{Subject: subject, Issuer: claims.Issuer, Method: "jwt"}, nil
}
