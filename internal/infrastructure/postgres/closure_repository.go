package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

var _ repository.ClosureRepository = (*ClosureRepo)(nil)

const closureColumns = `
	id, station_id, numero_z, fecha_turno, hora_inicio, hora_fin, cerrado_por,
	total_ventas, total_remitos, total_gastos, total_a_rendir, total_faltante,
	total_pagos_electronicos, total_combustible_credito, total_cupones, total_tiradas,
	huella, source, issue_count, uploaded_by, created_at`

// ClosureRepo implementación de ClosureRepository (usable con pool o tx).
type ClosureRepo struct {
	q Querier
}

// NewClosureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClosureRepository(q Querier) *ClosureRepo {
	return &ClosureRepo{q: q}
}

// Create persiste la cabecera del cierre.
func (r *ClosureRepo) Create(ctx context.Context, c *entity.Closure) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `INSERT INTO closures (` + closureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.StationID, c.NumeroZ, nullIfEmpty(c.FechaTurno), nullIfEmpty(c.HoraInicio),
		nullIfEmpty(c.HoraFin), nullIfEmpty(c.CerradoPor),
		c.TotalVentas, c.TotalRemitos, c.TotalGastos, c.TotalARendir, c.TotalFaltante,
		c.TotalPagosElectronicos, c.TotalCombustibleCredito, c.TotalCupones, c.TotalTiradas,
		c.Huella, c.Source, c.IssueCount, nullIfEmpty(c.UploadedBy), c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cierre %d de la estación %s: %w", c.NumeroZ, c.StationID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert closure: %w", err)
	}
	return nil
}

// CreateItems inserta los renglones con COPY; todos deben pertenecer al mismo cierre.
func (r *ClosureRepo) CreateItems(ctx context.Context, items []*entity.ClosureItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		rows = append(rows, []any{
			it.ID, it.ClosureID, it.Section, it.Position,
			nullIfEmpty(it.Codigo), nullIfEmpty(it.Descripcion), it.Monto, it.Volumen,
		})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"closure_items"},
		[]string{"id", "closure_id", "section", "position", "codigo", "descripcion", "monto", "volumen"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy closure items: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un cierre. Devuelve (nil, nil) si no existe.
func (r *ClosureRepo) GetByID(ctx context.Context, id string) (*entity.Closure, error) {
	row := r.q.QueryRow(ctx, `SELECT `+closureColumns+` FROM closures WHERE id = $1`, id)
	c, err := scanClosure(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get closure: %w", err)
	}
	return c, nil
}

// GetItems devuelve los renglones en el orden del reporte original.
func (r *ClosureRepo) GetItems(ctx context.Context, closureID string) ([]*entity.ClosureItem, error) {
	query := `
		SELECT id, closure_id, section, position, codigo, descripcion, monto, volumen
		FROM closure_items WHERE closure_id = $1 ORDER BY section, position`
	rows, err := r.q.Query(ctx, query, closureID)
	if err != nil {
		return nil, fmt.Errorf("list closure items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClosureItem
	for rows.Next() {
		var it entity.ClosureItem
		var codigo, descripcion *string
		if err := rows.Scan(&it.ID, &it.ClosureID, &it.Section, &it.Position,
			&codigo, &descripcion, &it.Monto, &it.Volumen); err != nil {
			return nil, fmt.Errorf("scan closure item: %w", err)
		}
		it.Codigo = derefStr(codigo)
		it.Descripcion = derefStr(descripcion)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ExistsByNumero indica si la estación ya cargó ese número Z.
func (r *ClosureRepo) ExistsByNumero(ctx context.Context, stationID string, numeroZ int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM closures WHERE station_id = $1 AND numero_z = $2)`,
		stationID, numeroZ,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists closure: %w", err)
	}
	return exists, nil
}

// List lista cierres (más recientes primero) y devuelve el total sin paginar.
func (r *ClosureRepo) List(ctx context.Context, f repository.ClosureFilter) ([]*entity.Closure, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM closures WHERE ($1 = '' OR station_id::text = $1)`, f.StationID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count closures: %w", err)
	}

	query := `SELECT ` + closureColumns + ` FROM closures
		WHERE ($1 = '' OR station_id::text = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.StationID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list closures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Closure
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan closure: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func scanClosure(row pgx.Row) (*entity.Closure, error) {
	var c entity.Closure
	var fecha, inicio, fin, cerradoPor, uploadedBy *string
	err := row.Scan(
		&c.ID, &c.StationID, &c.NumeroZ, &fecha, &inicio, &fin, &cerradoPor,
		&c.TotalVentas, &c.TotalRemitos, &c.TotalGastos, &c.TotalARendir, &c.TotalFaltante,
		&c.TotalPagosElectronicos, &c.TotalCombustibleCredito, &c.TotalCupones, &c.TotalTiradas,
		&c.Huella, &c.Source, &c.IssueCount, &uploadedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.FechaTurno = derefStr(fecha)
	c.HoraInicio = derefStr(inicio)
	c.HoraFin = derefStr(fin)
	c.CerradoPor = derefStr(cerradoPor)
	c.UploadedBy = derefStr(uploadedBy)
	return &c, nil
}
