package ports

import (
	"context"

	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
)

// DocumentRenderer convierte un plan de maquetación en los bytes de un archivo.
// Los renderers no toman decisiones de contenido: todo sale del plan.
type DocumentRenderer interface {
	Format() entity.OutputFormat
	ContentType() string
	Render(ctx context.Context, plan *layout.Plan) ([]byte, error)
}
