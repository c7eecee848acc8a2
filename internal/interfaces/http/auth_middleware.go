package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/docgen-api/internal/application/ports"
)

// Locals keys para la identidad del cliente autenticado.
const (
	LocalSubject    = "auth_subject"
	LocalAuthMethod = "auth_method"
)

// AuthMiddleware exige "Authorization: Bearer <token>" y lo valida con verifier.
// Cualquier fallo del verificador se responde 401 sin generar el documento.
func AuthMiddleware(verifier ports.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := authenticate(c, verifier); !ok {
			return err
		}
		return c.Next()
	}
}

// authenticate valida el bearer y guarda la identidad en Locals. Con ok=false
// la respuesta 401 ya está escrita.
func authenticate(c *fiber.Ctx, verifier ports.TokenVerifier) (ok bool, err error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return false, writeError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false, writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return false, writeError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
	}
	principal, err := verifier.Verify(c.UserContext(), tokenString)
	if err != nil {
		return false, writeError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
	}
	c.Locals(LocalSubject, principal.Subject)
	c.Locals(LocalAuthMethod, principal.Method)
	return true, nil
}

// GetSubject devuelve el sujeto autenticado (vacío si la autenticación está desactivada).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}
