package repository

import (
	"context"

	"github.com/jhoicas/cierres-api/internal/domain/entity"
)

// ClosureFilter filtros para listar cierres. StationID vacío lista todas las estaciones.
type ClosureFilter struct {
	StationID string
	Limit     int
	Offset    int
}

// ClosureRepository puerto de persistencia para cierres y sus renglones.
// Create devuelve domain.ErrDuplicate si ya existe (station_id, numero_z).
type ClosureRepository interface {
	Create(ctx context.Context, closure *entity.Closure) error
	CreateItems(ctx context.Context, items []*entity.ClosureItem) error
	GetByID(ctx context.Context, id string) (*entity.Closure, error)
	GetItems(ctx context.Context, closureID string) ([]*entity.ClosureItem, error)
	ExistsByNumero(ctx context.Context, stationID string, numeroZ int) (bool, error)
	List(ctx context.Context, f ClosureFilter) ([]*entity.Closure, int, error)
}
