package cierre

import (
	"math"
	"strconv"
	"strings"
)

// currencyMarks símbolos que el surtidor puede anteponer al monto. "US$" va antes que "$".
var currencyMarks = []string{"US$", "ARS", "$", "€", "£", "\u00a0"}

// NormalizeAmount convierte un monto impreso ("$1,234.56", "1.234,56", "1234.56") a float64.
// Es total: cualquier texto no numérico ("", "-", basura) devuelve 0.
//
// Separadores: si aparecen "." y "," el último es el decimal; un mismo separador repetido es
// de miles; una sola "," seguida de exactamente tres dígitos es de miles, si no es decimal.
func NormalizeAmount(s string) float64 {
	s = strings.TrimSpace(s)
	for _, m := range currencyMarks {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	s = normalizeSeparators(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// normalizeSeparators deja el texto con "." como único separador decimal y sin miles.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 || len(s)-lastComma-1 == 3 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
