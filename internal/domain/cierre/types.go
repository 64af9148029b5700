package cierre

import "github.com/jhoicas/cierres-api/internal/domain"

// Header datos de cabecera del Cierre Z. Los totales los completa el extractor de resumen.
type Header struct {
	NumeroZ    *int   `json:"numero_z,omitempty"`
	FechaTurno string `json:"fecha_turno"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	CerradoPor string `json:"cerrado_por"`

	TotalVentas             float64 `json:"total_ventas"`
	TotalRemitos            float64 `json:"total_remitos"`
	TotalGastos             float64 `json:"total_gastos"`
	TotalARendir            float64 `json:"total_a_rendir"`
	TotalFaltante           float64 `json:"total_faltante"`
	TotalPagosElectronicos  float64 `json:"total_pagos_electronicos"`
	TotalCombustibleCredito float64 `json:"total_combustible_credito"`
	TotalCupones            float64 `json:"total_cupones"`
	TotalTiradas            float64 `json:"total_tiradas"`
}

// HasNumeroZ indica si se pudo determinar el número de cierre.
func (h Header) HasNumeroZ() bool { return h.NumeroZ != nil }

// LineItem renglón genérico descripción + monto.
type LineItem struct {
	Descripcion string  `json:"descripcion"`
	Monto       float64 `json:"monto"`
}

// DeliveryNote remito: combustible o producto entregado en cuenta a un cliente.
type DeliveryNote struct {
	Codigo  string  `json:"codigo"`
	Cliente string  `json:"cliente"`
	Monto   float64 `json:"monto"`
}

// CashMovement ingreso o egreso de caja con su comprobante.
type CashMovement struct {
	Comprobante string  `json:"comprobante"`
	Descripcion string  `json:"descripcion"`
	Monto       float64 `json:"monto"`
}

// TankReading volumen despachado por tanque.
type TankReading struct {
	Tanque   string  `json:"tanque"`
	Producto string  `json:"producto"`
	Volumen  float64 `json:"volumen"`
}

// Declaration total autodeclarado por el empleado (campo normalizado + monto).
type Declaration struct {
	Campo string  `json:"campo"`
	Monto float64 `json:"monto"`
}

// ParseIssue línea que llegó a un extractor y fue descartada.
type ParseIssue struct {
	Linea   int    `json:"linea"`
	Seccion string `json:"seccion"`
	Texto   string `json:"texto"`
	Motivo  string `json:"motivo"`
}

// ParsedClosure resultado estructurado de un Cierre Z.
type ParsedClosure struct {
	Header              Header         `json:"header"`
	Ventas              []LineItem     `json:"ventas"`
	Remitos             []DeliveryNote `json:"remitos"`
	Bajas               []LineItem     `json:"bajas"`
	RetencionesIIBB     []LineItem     `json:"retenciones_iibb"`
	Cupones             []LineItem     `json:"cupones"`
	PagosElectronicos   []LineItem     `json:"pagos_electronicos"`
	Tiradas             []LineItem     `json:"tiradas"`
	Ingresos            []CashMovement `json:"ingresos"`
	Egresos             []CashMovement `json:"egresos"`
	CombustibleCredito  []LineItem     `json:"combustible_credito"`
	Tanques             []TankReading  `json:"tanques"`
	DeclaracionEmpleado []Declaration  `json:"declaracion_empleado"`
	Resumen             []string       `json:"resumen"`
	Errores             []ParseIssue   `json:"errores"`
}

// Validate aplica la única validación dura: el número Z es obligatorio.
// Parse nunca falla; quien lo llama decide rechazar el cierre con este error.
func (p *ParsedClosure) Validate() error {
	if p == nil || !p.Header.HasNumeroZ() {
		return domain.ErrMissingClosureNumber
	}
	return nil
}

// ItemCount total de renglones tipados (sin contar resumen ni errores).
func (p *ParsedClosure) ItemCount() int {
	return len(p.Ventas) + len(p.Remitos) + len(p.Bajas) + len(p.RetencionesIIBB) +
		len(p.Cupones) + len(p.PagosElectronicos) + len(p.Tiradas) + len(p.Ingresos) +
		len(p.Egresos) + len(p.CombustibleCredito) + len(p.Tanques) + len(p.DeclaracionEmpleado)
}
