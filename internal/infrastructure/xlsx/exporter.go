// Package xlsx exporta un cierre a planilla: hoja "Resumen" con cabecera y totales y
// una hoja por cada sección con renglones.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

var _ appclosure.XLSXRenderer = (*Exporter)(nil)

const summarySheet = "Resumen"

// Exporter implementa closure.XLSXRenderer con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// sheet tabla de una sección: encabezados y filas ya armadas.
type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// RenderClosureXLSX genera el libro en memoria.
func (e *Exporter) RenderClosureXLSX(doc *appclosure.Document) ([]byte, error) {
	if doc == nil || doc.Cierre == nil {
		return nil, fmt.Errorf("xlsx: cierre vacío")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	money, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	writeSummary(f, doc, bold, money)

	for _, s := range sections(doc.Cierre) {
		if len(s.rows) == 0 {
			continue
		}
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("xlsx: hoja %s: %w", s.name, err)
		}
		for i, h := range s.headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(s.name, cell, h)
			_ = f.SetCellStyle(s.name, cell, cell, bold)
		}
		for r, row := range s.rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(s.name, cell, v)
				if _, ok := v.(float64); ok {
					_ = f.SetCellStyle(s.name, cell, cell, money)
				}
			}
		}
		last, _ := excelize.ColumnNumberToName(len(s.headers))
		_ = f.SetColWidth(s.name, "A", last, 24)
	}

	idx, _ := f.GetSheetIndex(summarySheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, doc *appclosure.Document, bold, money int) {
	h := doc.Cierre.Header
	numero := ""
	if h.NumeroZ != nil {
		numero = fmt.Sprint(*h.NumeroZ)
	}
	rows := [][2]any{
		{"Estación", doc.StationName},
		{"Código", doc.StationCode},
		{"Número Z", numero},
		{"Fecha turno", h.FechaTurno},
		{"Hora inicio", h.HoraInicio},
		{"Hora fin", h.HoraFin},
		{"Cerrado por", h.CerradoPor},
		{"Total ventas", h.TotalVentas},
		{"Total remitos", h.TotalRemitos},
		{"Total gastos", h.TotalGastos},
		{"Total a rendir", h.TotalARendir},
		{"Faltante", h.TotalFaltante},
		{"Total pagos electrónicos", h.TotalPagosElectronicos},
		{"Total combustible a crédito", h.TotalCombustibleCredito},
		{"Total cupones", h.TotalCupones},
		{"Total tiradas", h.TotalTiradas},
	}
	if doc.Huella != "" {
		rows = append(rows, [2]any{"Huella", doc.Huella})
	}
	for i, r := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(summarySheet, label, r[0])
		_ = f.SetCellStyle(summarySheet, label, label, bold)
		_ = f.SetCellValue(summarySheet, value, r[1])
		if _, ok := r[1].(float64); ok {
			_ = f.SetCellStyle(summarySheet, value, value, money)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 30)
	_ = f.SetColWidth(summarySheet, "B", "B", 28)
}

func sections(pc *cierre.ParsedClosure) []sheet {
	lines := func(s cierre.Section, items []cierre.LineItem) sheet {
		sh := sheet{name: s.String(), headers: []string{"Descripción", "Monto"}}
		for _, it := range items {
			sh.rows = append(sh.rows, []any{it.Descripcion, it.Monto})
		}
		return sh
	}
	cash := func(s cierre.Section, items []cierre.CashMovement) sheet {
		sh := sheet{name: s.String(), headers: []string{"Comprobante", "Descripción", "Monto"}}
		for _, it := range items {
			sh.rows = append(sh.rows, []any{it.Comprobante, it.Descripcion, it.Monto})
		}
		return sh
	}

	remitos := sheet{name: cierre.SectionDeliveries.String(), headers: []string{"Código", "Cliente", "Monto"}}
	for _, r := range pc.Remitos {
		remitos.rows = append(remitos.rows, []any{r.Codigo, r.Cliente, r.Monto})
	}
	tanques := sheet{name: cierre.SectionTanks.String(), headers: []string{"Tanque", "Producto", "Volumen"}}
	for _, t := range pc.Tanques {
		tanques.rows = append(tanques.rows, []any{t.Tanque, t.Producto, t.Volumen})
	}
	declaracion := sheet{name: cierre.SectionEmployeeDeclaration.String(), headers: []string{"Campo", "Monto"}}
	for _, d := range pc.DeclaracionEmpleado {
		declaracion.rows = append(declaracion.rows, []any{d.Campo, d.Monto})
	}

	return []sheet{
		lines(cierre.SectionSales, pc.Ventas),
		remitos,
		lines(cierre.SectionWriteOffs, pc.Bajas),
		lines(cierre.SectionTaxWithholding, pc.RetencionesIIBB),
		lines(cierre.SectionCoupons, pc.Cupones),
		lines(cierre.SectionEPayment, pc.PagosElectronicos),
		lines(cierre.SectionDrawings, pc.Tiradas),
		cash(cierre.SectionInflows, pc.Ingresos),
		lines(cierre.SectionCreditFuel, pc.CombustibleCredito),
		cash(cierre.SectionOutflows, pc.Egresos),
		tanques,
		declaracion,
	}
}
