package ports

// DocumentMetrics registra los documentos generados.
type DocumentMetrics interface {
	DocumentGenerated(docType, format string)
}
