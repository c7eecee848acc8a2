package authprovider

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
)

var _ ports.TokenVerifier = (*StaticVerifier)(nil)

// StaticVerifier acepta tokens de servicio cuyos hashes bcrypt están en la configuración.
// Los tokens en claro nunca se guardan.
type StaticVerifier struct {
	hashes [][]byte
}

// NewStaticVerifier valida que cada hash sea bcrypt.
func NewStaticVerifier(hashes []string) (*StaticVerifier, error) {
	v := &StaticVerifier{}
	for _, h := range hashes {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("authprovider: hash bcrypt inválido: %w", err)
		}
		v.hashes = append(v.hashes, []byte(h))
	}
	if len(v.hashes) == 0 {
		return nil, fmt.Errorf("authprovider: no hay tokens estáticos configurados")
	}
	return v, nil
}

// Verify implementa ports.TokenVerifier.
func (v *StaticVerifier) Verify(_ context.Context, token string) (*ports.Principal, error) {
	for i, h := range v.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(token)) == nil {
			return &ports.Principal{Subject: fmt.Sprintf("static-%d", i+1), Method: "static"}, nil
		}
	}
	return nil, fmt.Errorf("%w: token estático desconocido", domain.ErrUnauthorized)
}

// HashToken genera el hash bcrypt de un token para la configuración.
func HashToken(token string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("authprovider: hash: %w", err)
	}
	return string(b), nil
}
