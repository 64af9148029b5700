package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

// ClosureTotals totales del cierre tal como quedaron persistidos.
type ClosureTotals struct {
	Ventas             decimal.Decimal `json:"ventas"`
	Remitos            decimal.Decimal `json:"remitos"`
	Gastos             decimal.Decimal `json:"gastos"`
	ARendir            decimal.Decimal `json:"a_rendir"`
	Faltante           decimal.Decimal `json:"faltante"`
	PagosElectronicos  decimal.Decimal `json:"pagos_electronicos"`
	CombustibleCredito decimal.Decimal `json:"combustible_credito"`
	Cupones            decimal.Decimal `json:"cupones"`
	Tiradas            decimal.Decimal `json:"tiradas"`
}

// ClosureResponse cabecera de un cierre persistido.
type ClosureResponse struct {
	ID         string        `json:"id"`
	StationID  string        `json:"station_id"`
	NumeroZ    int           `json:"numero_z"`
	FechaTurno string        `json:"fecha_turno"`
	HoraInicio string        `json:"hora_inicio"`
	HoraFin    string        `json:"hora_fin"`
	CerradoPor string        `json:"cerrado_por"`
	Totales    ClosureTotals `json:"totales"`
	Huella     string        `json:"huella"`
	Source     string        `json:"source"`
	ItemCount  int           `json:"item_count,omitempty"`
	IssueCount int           `json:"issue_count"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ClosureItemResponse renglón de una sección.
type ClosureItemResponse struct {
	Section     string          `json:"section"`
	Position    int             `json:"position"`
	Codigo      string          `json:"codigo,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	Volumen     decimal.Decimal `json:"volumen"`
}

// ClosureDetailResponse cabecera más todos los renglones.
type ClosureDetailResponse struct {
	ClosureResponse
	Items []ClosureItemResponse `json:"items"`
}

// ClosureListResponse listado paginado de cierres.
type ClosureListResponse struct {
	Items []ClosureResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PreviewResponse resultado de parsear sin persistir.
type PreviewResponse struct {
	Valid  bool                  `json:"valid"`
	Cierre *cierre.ParsedClosure `json:"cierre"`
}
