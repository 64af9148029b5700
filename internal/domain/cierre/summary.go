package cierre

import "strings"

// summaryLabel total oficial que el surtidor imprime como texto libre en el RESUMEN.
type summaryLabel struct {
	label  string
	target func(*Header) *float64
}

var summaryLabels = []summaryLabel{
	{"TOTAL VENTAS", func(h *Header) *float64 { return &h.TotalVentas }},
	{"TOTAL REMITOS", func(h *Header) *float64 { return &h.TotalRemitos }},
	{"TOTAL GASTOS", func(h *Header) *float64 { return &h.TotalGastos }},
	{"TOTAL A RENDIR", func(h *Header) *float64 { return &h.TotalARendir }},
	{"FALTANTE", func(h *Header) *float64 { return &h.TotalFaltante }},
	{"TOTAL PAGOS ELECTRONICOS", func(h *Header) *float64 { return &h.TotalPagosElectronicos }},
	{"TOTAL COMBUSTIBLES A CREDITO", func(h *Header) *float64 { return &h.TotalCombustibleCredito }},
	{"TOTAL CUPONES", func(h *Header) *float64 { return &h.TotalCupones }},
	{"TOTAL TIRADAS", func(h *Header) *float64 { return &h.TotalTiradas }},
}

// extractTotals completa los totales de cabecera buscando cada etiqueta (sin distinguir
// mayúsculas) en las líneas del RESUMEN y, si no aparece, en los TOTAL de pie de sección.
// De la primera línea que coincide se toma la última palabra como monto; sin coincidencia, 0.
func extractTotals(h *Header, resumen, fallback []string) {
	for _, sl := range summaryLabels {
		v, ok := findTotal(sl.label, resumen)
		if !ok {
			v, _ = findTotal(sl.label, fallback)
		}
		*sl.target(h) = v
	}
}

func findTotal(label string, lines []string) (float64, bool) {
	for _, line := range lines {
		if !strings.Contains(foldKey(line), label) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return 0, true
		}
		return NormalizeAmount(fields[len(fields)-1]), true
	}
	return 0, false
}
