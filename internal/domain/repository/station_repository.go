package repository

import (
	"context"

	"github.com/jhoicas/cierres-api/internal/domain/entity"
)

// StationRepository puerto de persistencia para estaciones de servicio.
type StationRepository interface {
	Create(ctx context.Context, station *entity.Station) error
	GetByID(ctx context.Context, id string) (*entity.Station, error)
	GetByCode(ctx context.Context, code string) (*entity.Station, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Station, error)
}
