package cierre

// Section estado del clasificador: la sección del reporte que se está leyendo.
type Section int

const (
	SectionNone Section = iota
	SectionResumen
	SectionSales
	SectionDeliveries
	SectionWriteOffs
	SectionTaxWithholding
	SectionCoupons
	SectionEPayment
	SectionDrawings
	SectionInflows
	SectionCreditFuel
	SectionOutflows
	SectionTanks
	SectionEmployeeDeclaration
	SectionIgnored
)

var sectionNames = [...]string{
	SectionNone:                "NONE",
	SectionResumen:             "RESUMEN",
	SectionSales:               "VENTAS",
	SectionDeliveries:          "REMITOS",
	SectionWriteOffs:           "BAJAS",
	SectionTaxWithholding:      "RETENCIONES_IIBB",
	SectionCoupons:             "CUPONES",
	SectionEPayment:            "PAGOS_ELECTRONICOS",
	SectionDrawings:            "TIRADAS",
	SectionInflows:             "INGRESOS",
	SectionCreditFuel:          "COMBUSTIBLE_CREDITO",
	SectionOutflows:            "EGRESOS",
	SectionTanks:               "TANQUES",
	SectionEmployeeDeclaration: "DECLARACION_EMPLEADO",
	SectionIgnored:             "IGNORADA",
}

// String nombre estable de la sección; se usa también como discriminador al persistir.
func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return "DESCONOCIDA"
	}
	return sectionNames[s]
}

// ParseSection inversa de String; ok=false si el nombre no corresponde a ninguna sección.
func ParseSection(name string) (Section, bool) {
	for i, n := range sectionNames {
		if n == name {
			return Section(i), true
		}
	}
	return SectionNone, false
}

// active indica si la sección tiene extractor propio (no NONE ni IGNORED).
func (s Section) active() bool {
	return s != SectionNone && s != SectionIgnored
}

// sectionHeaders encabezados impresos por el surtidor, comparados contra la línea recortada.
var sectionHeaders = map[string]Section{
	"CIERRE Z":               SectionResumen,
	"RESUMEN":                SectionResumen,
	"RESUMEN DE TURNO":       SectionResumen,
	"VENTAS POR PRODUCTO":    SectionSales,
	"REMITOS":                SectionDeliveries,
	"BAJAS":                  SectionWriteOffs,
	"RETENCIONES IIBB":       SectionTaxWithholding,
	"CUPONES":                SectionCoupons,
	"CUPONES TARJETAS":       SectionCoupons,
	"PAGOS ELECTRONICOS":     SectionEPayment,
	"TIRADAS":                SectionDrawings,
	"INGRESOS":               SectionInflows,
	"COMBUSTIBLES A CREDITO": SectionCreditFuel,
	"EGRESOS":                SectionOutflows,
	"GASTOS":                 SectionOutflows,
	"TANQUES":                SectionTanks,
	"DECLARACION EMPLEADO":   SectionEmployeeDeclaration,
}

// ignoredHeaders secciones conocidas que no aportan datos al cierre.
var ignoredHeaders = map[string]struct{}{
	"VENTAS POR SURTIDOR": {},
	"AFORADORES":          {},
	"CONTROL DE STOCK":    {},
	"ARQUEO DE CAJA":      {},
	"TURNOS ANTERIORES":   {},
	"MEDIOS DE PAGO":      {},
}
