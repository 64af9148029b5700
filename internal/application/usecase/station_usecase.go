package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// StationUseCase aplica reglas de negocio para estaciones de servicio.
type StationUseCase struct {
	repo repository.StationRepository
}

// NewStationUseCase construye el caso de uso con el puerto de persistencia.
func NewStationUseCase(repo repository.StationRepository) *StationUseCase {
	return &StationUseCase{repo: repo}
}

// Create da de alta una estación. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *StationUseCase) Create(ctx context.Context, in dto.CreateStationRequest) (*dto.StationResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	existing, _ := uc.repo.GetByCode(ctx, code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	station := &entity.Station{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, station); err != nil {
		return nil, err
	}
	return entityToStationResponse(station), nil
}

// GetByID obtiene una estación por ID. Devuelve (nil, nil) si no existe.
func (uc *StationUseCase) GetByID(ctx context.Context, id string) (*dto.StationResponse, error) {
	station, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToStationResponse(station), nil
}

// List lista estaciones con paginación.
func (uc *StationUseCase) List(ctx context.Context, limit, offset int) (*dto.StationListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StationResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToStationResponse(s))
	}
	return &dto.StationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToStationResponse(s *entity.Station) *dto.StationResponse {
	if s == nil {
		return nil
	}
	return &dto.StationResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// IsActive indica si la estación existe y está activa.
func (uc *StationUseCase) IsActive(ctx context.Context, id string) (bool, error) {
	station, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return station != nil && station.Status == "active", nil
}
