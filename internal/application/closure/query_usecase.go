package closure

import (
	"context"

	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// QueryUseCase lectura de cierres persistidos.
// scope es la estación a la que está restringido el usuario; vacío = todas (admin).
type QueryUseCase struct {
	closures repository.ClosureRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(closures repository.ClosureRepository) *QueryUseCase {
	return &QueryUseCase{closures: closures}
}

// Get devuelve cabecera y renglones. Un cierre de otra estación se informa como no encontrado.
func (uc *QueryUseCase) Get(ctx context.Context, id, scope string) (*dto.ClosureDetailResponse, error) {
	c, err := loadScoped(ctx, uc.closures, id, scope)
	if err != nil {
		return nil, err
	}
	items, err := uc.closures.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClosureDetailResponse{
		ClosureResponse: *toClosureResponse(c, len(items)),
		Items:           toItemResponses(items),
	}, nil
}

// List lista cierres con paginación.
func (uc *QueryUseCase) List(ctx context.Context, scope string, page dto.PageRequest) (*dto.ClosureListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.closures.List(ctx, repository.ClosureFilter{
		StationID: scope,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClosureResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClosureResponse(c, 0))
	}
	return &dto.ClosureListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func loadScoped(ctx context.Context, repo repository.ClosureRepository, id, scope string) (*entity.Closure, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || (scope != "" && c.StationID != scope) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
