// Package cierre convierte el texto de un Cierre Z del surtidor en un ParsedClosure.
//
// El reporte se recorre línea por línea con una máquina de estados (Step) que reconoce los
// encabezados de sección; cada sección tiene su regla de extracción. Los totales oficiales
// solo aparecen como texto libre en el RESUMEN, así que se recuperan en una segunda pasada.
//
// Parse es puro y sin estado compartido: puede llamarse en paralelo sin coordinación.
package cierre

import "strings"

// builder acumula un slice por sección y se cierra una sola vez en build.
type builder struct {
	header   Header
	out      ParsedClosure
	totals   []string
	numeroOK bool
}

// Parse convierte el texto del reporte. Nunca falla: las líneas que no encajan se descartan
// (y se listan en Errores) y los montos ilegibles valen 0. Si el reporte no trae número Z el
// resultado vuelve igual, con Header.NumeroZ en nil; ver (*ParsedClosure).Validate.
func Parse(text string) *ParsedClosure {
	b := &builder{}
	state := SectionNone
	for i, line := range splitLines(text) {
		next, item, err := Step(state, line)
		if err != nil {
			b.issue(i+1, state, line, err)
		}
		if item != nil {
			b.add(state, item)
		}
		state = next
	}
	return b.build()
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func (b *builder) issue(n int, s Section, line string, err error) {
	b.out.Errores = append(b.out.Errores, ParseIssue{
		Linea:   n,
		Seccion: s.String(),
		Texto:   strings.TrimSpace(line),
		Motivo:  err.Error(),
	})
}

func (b *builder) add(s Section, item Item) {
	switch it := item.(type) {
	case numeroZItem:
		// el primer "Numero:" es el del cierre; los siguientes se ignoran.
		if !b.numeroOK {
			n := int(it)
			b.header.NumeroZ = &n
			b.numeroOK = true
		}
	case desdeItem:
		b.header.FechaTurno, b.header.HoraInicio = it.fecha, it.hora
	case hastaItem:
		b.header.HoraFin = it.hora
	case closerItem:
		b.header.CerradoPor = string(it)
	case summaryLine:
		b.out.Resumen = append(b.out.Resumen, string(it))
	case sectionTotal:
		b.totals = append(b.totals, string(it))
	case DeliveryNote:
		b.out.Remitos = append(b.out.Remitos, it)
	case CashMovement:
		if s == SectionInflows {
			b.out.Ingresos = append(b.out.Ingresos, it)
		} else {
			b.out.Egresos = append(b.out.Egresos, it)
		}
	case TankReading:
		b.out.Tanques = append(b.out.Tanques, it)
	case Declaration:
		b.out.DeclaracionEmpleado = append(b.out.DeclaracionEmpleado, it)
	case LineItem:
		if bucket := b.lineBucket(s); bucket != nil {
			*bucket = append(*bucket, it)
		}
	}
}

func (b *builder) lineBucket(s Section) *[]LineItem {
	switch s {
	case SectionSales:
		return &b.out.Ventas
	case SectionWriteOffs:
		return &b.out.Bajas
	case SectionTaxWithholding:
		return &b.out.RetencionesIIBB
	case SectionCoupons:
		return &b.out.Cupones
	case SectionEPayment:
		return &b.out.PagosElectronicos
	case SectionDrawings:
		return &b.out.Tiradas
	case SectionCreditFuel:
		return &b.out.CombustibleCredito
	}
	return nil
}

// build aplica la segunda pasada de totales y deja todos los slices no nulos, de modo que
// el JSON siempre trae las secciones aunque vengan vacías.
func (b *builder) build() *ParsedClosure {
	extractTotals(&b.header, b.out.Resumen, b.totals)

	out := b.out
	out.Header = b.header
	ensure(&out.Ventas)
	ensure(&out.Remitos)
	ensure(&out.Bajas)
	ensure(&out.RetencionesIIBB)
	ensure(&out.Cupones)
	ensure(&out.PagosElectronicos)
	ensure(&out.Tiradas)
	ensure(&out.Ingresos)
	ensure(&out.Egresos)
	ensure(&out.CombustibleCredito)
	ensure(&out.Tanques)
	ensure(&out.DeclaracionEmpleado)
	ensure(&out.Resumen)
	ensure(&out.Errores)
	return &out
}

func ensure[T any](s *[]T) {
	if *s == nil {
		*s = []T{}
	}
}
