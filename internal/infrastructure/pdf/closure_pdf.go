// Package pdf genera el reporte imprimible del Cierre Z.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estación + código    │  N° Z + fecha del turno      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TURNO: inicio / fin / cerrado por                          │
//	│  TOTALES: dos columnas de etiqueta + monto                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UNA TABLA POR SECCIÓN CON RENGLONES                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: huella SHA-256 + QR                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

var _ appclosure.PDFRenderer = (*MarotoClosureRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoClosureRenderer implementa closure.PDFRenderer usando Maroto v2.
type MarotoClosureRenderer struct{}

// NewMarotoClosureRenderer construye el generador.
func NewMarotoClosureRenderer() *MarotoClosureRenderer { return &MarotoClosureRenderer{} }

// table columnas y filas de una sección; el último valor de cada fila va alineado a la derecha.
type table struct {
	title   string
	headers []string
	sizes   []int
	rows    [][]string
}

// RenderClosurePDF genera el PDF y devuelve sus bytes.
func (g *MarotoClosureRenderer) RenderClosurePDF(_ context.Context, doc *appclosure.Document) ([]byte, error) {
	if doc == nil || doc.Cierre == nil {
		return nil, fmt.Errorf("pdf: cierre vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre Z", true).
		WithAuthor(nonEmpty(doc.StationName, "Estación"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shiftRow(doc.Cierre.Header))
	m.AddRows(totalsRows(doc.Cierre.Header)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, t := range tables(doc.Cierre) {
		if len(t.rows) == 0 {
			continue
		}
		m.AddRows(tableRows(t)...)
	}

	if doc.Huella != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footerRow(doc.Huella))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *appclosure.Document) core.Row {
	numero := "sin número"
	if n := doc.Cierre.Header.NumeroZ; n != nil {
		numero = fmt.Sprintf("N° %d", *n)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.StationName, "Estación de servicio"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+nonEmpty(doc.StationCode, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE Z", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Turno: "+nonEmpty(doc.Cierre.Header.FechaTurno, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func shiftRow(h cierre.Header) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Inicio: %s   |   Fin: %s   |   Cerrado por: %s",
			nonEmpty(h.HoraInicio, "—"), nonEmpty(h.HoraFin, "—"), nonEmpty(h.CerradoPor, "—"),
		), props.Text{Size: 8, Top: 3, Color: colorGray}),
	))
}

func totalsRows(h cierre.Header) []core.Row {
	pairs := []struct {
		label string
		v     float64
	}{
		{"Total ventas", h.TotalVentas},
		{"Total remitos", h.TotalRemitos},
		{"Total gastos", h.TotalGastos},
		{"Pagos electrónicos", h.TotalPagosElectronicos},
		{"Combustible a crédito", h.TotalCombustibleCredito},
		{"Cupones", h.TotalCupones},
		{"Tiradas", h.TotalTiradas},
		{"Faltante", h.TotalFaltante},
		{"TOTAL A RENDIR", h.TotalARendir},
	}
	cell := func(label string, v float64) []core.Col {
		style := props.Text{Size: 9, Align: align.Right, Right: 1}
		if v < 0 {
			style.Color = colorRed
		}
		return []core.Col{
			col.New(3).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 9, Right: 2})),
			col.New(3).Add(text.New("$"+formatMoney(v), style)),
		}
	}
	var rows []core.Row
	for i := 0; i < len(pairs); i += 2 {
		cols := cell(pairs[i].label, pairs[i].v)
		if i+1 < len(pairs) {
			cols = append(cols, cell(pairs[i+1].label, pairs[i+1].v)...)
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

func tableRows(t table) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(t.title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}))),
	}
	hdr := make([]core.Col, 0, len(t.headers))
	for i, h := range t.headers {
		a := align.Left
		if i == len(t.headers)-1 {
			a = align.Right
		}
		hdr = append(hdr, col.New(t.sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Right: 1,
		})))
	}
	rows = append(rows, row.New(6).Add(hdr...))
	for _, r := range t.rows {
		cols := make([]core.Col, 0, len(r))
		for i, v := range r {
			a := align.Left
			if i == len(r)-1 {
				a = align.Right
			}
			cols = append(cols, col.New(t.sizes[i]).Add(text.New(v, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			})))
		}
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

func footerRow(huella string) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(huella, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Huella SHA-256 del cierre (XML canónico):", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3,
			}),
			text.New(huella, props.Text{Size: 6.5, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

func tables(pc *cierre.ParsedClosure) []table {
	lines := func(title string, items []cierre.LineItem) table {
		t := table{title: title, headers: []string{"Descripción", "Monto"}, sizes: []int{9, 3}}
		for _, it := range items {
			t.rows = append(t.rows, []string{it.Descripcion, "$" + formatMoney(it.Monto)})
		}
		return t
	}
	cash := func(title string, items []cierre.CashMovement) table {
		t := table{title: title, headers: []string{"Comprobante", "Descripción", "Monto"}, sizes: []int{2, 7, 3}}
		for _, it := range items {
			t.rows = append(t.rows, []string{it.Comprobante, it.Descripcion, "$" + formatMoney(it.Monto)})
		}
		return t
	}

	remitos := table{title: "Remitos", headers: []string{"Código", "Cliente", "Monto"}, sizes: []int{2, 7, 3}}
	for _, r := range pc.Remitos {
		remitos.rows = append(remitos.rows, []string{r.Codigo, r.Cliente, "$" + formatMoney(r.Monto)})
	}
	tanques := table{title: "Tanques", headers: []string{"Tanque", "Producto", "Litros"}, sizes: []int{2, 7, 3}}
	for _, t := range pc.Tanques {
		tanques.rows = append(tanques.rows, []string{t.Tanque, t.Producto, formatMoney(t.Volumen)})
	}
	declaracion := table{title: "Declaración del empleado", headers: []string{"Campo", "Monto"}, sizes: []int{9, 3}}
	for _, d := range pc.DeclaracionEmpleado {
		declaracion.rows = append(declaracion.rows, []string{strings.ReplaceAll(d.Campo, "_", " "), "$" + formatMoney(d.Monto)})
	}

	return []table{
		lines("Ventas por producto", pc.Ventas),
		remitos,
		lines("Bajas", pc.Bajas),
		lines("Retenciones IIBB", pc.RetencionesIIBB),
		lines("Cupones", pc.Cupones),
		lines("Pagos electrónicos", pc.PagosElectronicos),
		lines("Tiradas", pc.Tiradas),
		cash("Ingresos", pc.Ingresos),
		lines("Combustibles a crédito", pc.CombustibleCredito),
		cash("Egresos", pc.Egresos),
		tanques,
		declaracion,
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con punto de miles y coma decimal.
// Ej: 1245300.5 → "1.245.300,50", -35.15 → "-35,15"
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
