package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes posibles de un cierre persistido.
const (
	ClosureSourceUpload = "upload"
	ClosureSourceImport = "import"
)

// Closure cabecera de un Cierre Z persistido. Los montos se guardan como NUMERIC.
type Closure struct {
	ID         string
	StationID  string
	NumeroZ    int
	FechaTurno string
	HoraInicio string
	HoraFin    string
	CerradoPor string

	TotalVentas             decimal.Decimal
	TotalRemitos            decimal.Decimal
	TotalGastos             decimal.Decimal
	TotalARendir            decimal.Decimal
	TotalFaltante           decimal.Decimal
	TotalPagosElectronicos  decimal.Decimal
	TotalCombustibleCredito decimal.Decimal
	TotalCupones            decimal.Decimal
	TotalTiradas            decimal.Decimal

	Huella     string // SHA-256 del XML canónico al momento de la carga
	Source     string // upload, import
	IssueCount int    // líneas descartadas durante el parseo
	UploadedBy string
	CreatedAt  time.Time
}

// ClosureItem renglón de alguna sección del cierre. Las columnas que no aplican a la
// sección quedan vacías (ej. Volumen solo en TANQUES).
type ClosureItem struct {
	ID          string
	ClosureID   string
	Section     string // nombre de cierre.Section (VENTAS, REMITOS, ...)
	Position    int    // orden de aparición dentro de la sección
	Codigo      string // remito, comprobante de caja o número de tanque
	Descripcion string // descripción, cliente, producto o campo declarado
	Monto       decimal.Decimal
	Volumen     decimal.Decimal
}
