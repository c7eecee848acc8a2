package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrUnsupportedFormat = errors.New("formato de salida no soportado")
	ErrRendering         = errors.New("error al generar el documento")
)
