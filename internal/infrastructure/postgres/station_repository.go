package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

var _ repository.StationRepository = (*StationRepo)(nil)

// StationRepo implementación del puerto StationRepository sobre PostgreSQL.
type StationRepo struct {
	q Querier
}

// NewStationRepository construye el adaptador de persistencia para estaciones.
func NewStationRepository(q Querier) *StationRepo {
	return &StationRepo{q: q}
}

// Create persiste una nueva estación.
func (r *StationRepo) Create(ctx context.Context, s *entity.Station) error {
	query := `
		INSERT INTO stations (id, code, name, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Name, nullIfEmpty(s.Address), s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

// GetByID obtiene una estación por ID.
func (r *StationRepo) GetByID(ctx context.Context, id string) (*entity.Station, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByCode obtiene una estación por su código.
func (r *StationRepo) GetByCode(ctx context.Context, code string) (*entity.Station, error) {
	return r.getOne(ctx, `code = $1`, code)
}

func (r *StationRepo) getOne(ctx context.Context, where, arg string) (*entity.Station, error) {
	query := `SELECT id, code, name, address, status, created_at, updated_at FROM stations WHERE ` + where
	s, err := scanStation(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get station: %w", err)
	}
	return s, nil
}

// List lista estaciones por código con paginación.
func (r *StationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Station, error) {
	query := `
		SELECT id, code, name, address, status, created_at, updated_at
		FROM stations ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStation(row pgx.Row) (*entity.Station, error) {
	var s entity.Station
	var address *string
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &address, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Address = derefStr(address)
	return &s, nil
}
