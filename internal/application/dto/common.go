package dto

// ErrorResponse cuerpo de error HTTP. "error" es el mensaje legible; "code" el
// código estable para clientes.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse cuerpo de GET /health y GET /generate.
type HealthResponse struct {
	Status string `json:"status"`
}
