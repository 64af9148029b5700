package cierre

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// placeholderDescription descripción cuando el renglón trae solo el monto.
const placeholderDescription = "sin detalle"

// excludedTankProduct producto que no se informa en la lectura de tanques.
const excludedTankProduct = "KEROSENE"

// Motivos de descarte de una línea; quedan en ParsedClosure.Errores.
var (
	errShape       = errors.New("la línea no tiene el formato de la sección")
	errNotVoucher  = errors.New("la línea no empieza con número de comprobante")
	errExcluded    = errors.New("producto excluido de la lectura de tanques")
	errNoColon     = errors.New("falta ':' entre campo y valor")
	errBadNumeroZ  = errors.New("número Z no numérico")
)

// Item renglón producido por un extractor. El conjunto de variantes es cerrado.
type Item interface{ isItem() }

func (LineItem) isItem()     {}
func (DeliveryNote) isItem() {}
func (CashMovement) isItem() {}
func (TankReading) isItem()  {}
func (Declaration) isItem()  {}

// Variantes internas del RESUMEN: campos de cabecera y texto libre.
type (
	numeroZItem  int
	desdeItem    struct{ fecha, hora string }
	hastaItem    struct{ hora string }
	closerItem   string
	summaryLine  string
	sectionTotal string
)

func (numeroZItem) isItem()  {}
func (desdeItem) isItem()    {}
func (hastaItem) isItem()    {}
func (closerItem) isItem()   {}
func (summaryLine) isItem()  {}
func (sectionTotal) isItem() {}

// extractor consume una línea de su sección: devuelve un renglón o el motivo del descarte.
type extractor func(line string) (Item, error)

// extractors uno por sección activa. Pagos electrónicos se cortan con cualquier espacio, a
// diferencia del resto de las secciones de dos columnas: se respeta tal cual imprime el surtidor.
var extractors = map[Section]extractor{
	SectionResumen:             extractResumen,
	SectionSales:               extractGeneric(gapColumns),
	SectionDeliveries:          extractDelivery,
	SectionWriteOffs:           extractGeneric(gapColumns),
	SectionTaxWithholding:      extractGeneric(gapColumns),
	SectionCoupons:             extractGeneric(gapColumns),
	SectionEPayment:            extractGeneric(gapWords),
	SectionDrawings:            extractGeneric(gapColumns),
	SectionCreditFuel:          extractGeneric(gapColumns),
	SectionInflows:             extractCashMovement,
	SectionOutflows:            extractCashMovement,
	SectionTanks:               extractTank,
	SectionEmployeeDeclaration: extractDeclaration,
}

// extractGeneric descripción + monto: el último campo es el monto, el resto la descripción.
func extractGeneric(minGap int) extractor {
	return func(line string) (Item, error) {
		fields := splitColumns(line, minGap)
		if len(fields) < 2 {
			return nil, errShape
		}
		last := len(fields) - 1
		desc := strings.Join(fields[:last], " ")
		if desc == "" {
			desc = placeholderDescription
		}
		return LineItem{Descripcion: desc, Monto: NormalizeAmount(fields[last])}, nil
	}
}

// deliveryPattern código, cliente y monto final, anclado a la línea completa.
var deliveryPattern = regexp.MustCompile(`^(\S+)\s+(.+?)\s+(\$?\s?-?[\d.,]*\d)$`)

func extractDelivery(line string) (Item, error) {
	m := deliveryPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, errShape
	}
	return DeliveryNote{
		Codigo:  m[1],
		Cliente: strings.TrimSpace(m[2]),
		Monto:   NormalizeAmount(m[3]),
	}, nil
}

func extractCashMovement(line string) (Item, error) {
	first := []rune(line)[0]
	if !unicode.IsDigit(first) {
		return nil, errNotVoucher
	}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, errShape
	}
	last := len(tokens) - 1
	desc := strings.Join(tokens[1:last], " ")
	if desc == "" {
		desc = placeholderDescription
	}
	return CashMovement{
		Comprobante: tokens[0],
		Descripcion: desc,
		Monto:       NormalizeAmount(tokens[last]),
	}, nil
}

func extractTank(line string) (Item, error) {
	cols := splitColumns(line, gapColumns)
	if len(cols) < 3 {
		return nil, errShape
	}
	if strings.Contains(strings.ToUpper(line), excludedTankProduct) {
		return nil, errExcluded
	}
	return TankReading{
		Tanque:   cols[0],
		Producto: cols[1],
		Volumen:  NormalizeAmount(cols[len(cols)-1]),
	}, nil
}

func extractDeclaration(line string) (Item, error) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil, errNoColon
	}
	campo := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
	return Declaration{Campo: campo, Monto: NormalizeAmount(value)}, nil
}

// Prefijos de cabecera dentro del RESUMEN, ya sin acentos y en mayúsculas.
const (
	prefixNumero  = "NUMERO:"
	prefixDesde   = "DESDE:"
	prefixHasta   = "HASTA:"
	prefixCerrado = "CERRADO POR:"
)

func extractResumen(line string) (Item, error) {
	key := foldKey(line)
	// todos los prefijos terminan en su único ':'; el valor es lo que sigue al primero.
	_, value, _ := strings.Cut(line, ":")
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(key, prefixNumero):
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return nil, errBadNumeroZ
		}
		// algunos controladores agregan sufijo de terminal: "4821-A", "4821/1"
		n, err := strconv.Atoi(leadingDigits(fields[0]))
		if err != nil {
			return nil, errBadNumeroZ
		}
		return numeroZItem(n), nil
	case strings.HasPrefix(key, prefixDesde):
		fields := strings.Fields(value)
		d := desdeItem{}
		if len(fields) > 0 {
			d.fecha = fields[0]
		}
		if len(fields) > 1 {
			d.hora = fields[1]
		}
		return d, nil
	case strings.HasPrefix(key, prefixHasta):
		fields := strings.Fields(value)
		h := hastaItem{}
		if len(fields) > 1 {
			h.hora = fields[1]
		}
		return h, nil
	case strings.HasPrefix(key, prefixCerrado):
		return closerItem(value), nil
	}
	return summaryLine(line), nil
}

// leadingDigits prefijo de dígitos ASCII de s; vacío si s no empieza con un dígito.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
