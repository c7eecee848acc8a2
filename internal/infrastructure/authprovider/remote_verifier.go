package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
)

var _ ports.TokenVerifier = (*RemoteVerifier)(nil)

// RemoteVerifier delega la validación del token en un proveedor de identidad
// externo (endpoint tipo /auth/v1/user). Cualquier fallo de red, timeout o
// respuesta distinta de 200 se trata como no autorizado.
type RemoteVerifier struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteVerifier construye el adaptador. timeout acota cada verificación.
func NewRemoteVerifier(url, apiKey string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteVerifier{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// remoteUser campos que aceptamos como identidad en la respuesta del proveedor.
type remoteUser struct {
	ID    string `json:"id"`
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// Verify implementa ports.TokenVerifier.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*ports.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: crear request: %v", domain.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUnauthorized, ctx.Err())
		}
		return nil, fmt.Errorf("%w: proveedor no disponible: %v", domain.ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUnauthorized, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: proveedor respondió HTTP %d", domain.ErrUnauthorized, resp.StatusCode)
	}

	p := &ports.Principal{Issuer: v.url, Method: "remote"}
	var u remoteUser
	if json.Unmarshal(rawBody, &u) == nil {
		switch {
		case u.ID != "":
			p.Subject = u.ID
		case u.Sub != "":
			p.Subject = u.Sub
		default:
			p.Subject = u.Email
		}
	}
	return p, nil
}
