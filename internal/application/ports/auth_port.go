package ports

import "context"

// Principal identidad autenticada de quien pide el documento.
type Principal struct {
	Subject string
	Issuer  string
	Method  string // jwt | remote | static
}

// TokenVerifier puerto de salida para validar el token Bearer.
// Cualquier adaptador (JWT local, proveedor remoto, tokens estáticos) debe
// implementarlo. Un error siempre significa "no autorizado".
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}
