package cierre

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separación mínima entre columnas. Los listados tabulares del surtidor alinean columnas con
// dos o más espacios, así que un espacio simple queda dentro de la descripción.
const (
	gapColumns = 2
	gapWords   = 1
)

// splitColumns corta la línea en campos separados por corridas de al menos minGap espacios
// en blanco. Una corrida más corta se conserva como parte del campo.
func splitColumns(line string, minGap int) []string {
	if minGap <= gapWords {
		return strings.Fields(line)
	}

	var (
		fields []string
		field  strings.Builder
		run    strings.Builder
	)
	flush := func() {
		if f := strings.TrimSpace(field.String()); f != "" {
			fields = append(fields, f)
		}
		field.Reset()
	}
	for _, r := range line {
		if unicode.IsSpace(r) {
			run.WriteRune(r)
			continue
		}
		if run.Len() > 0 {
			if utf8.RuneCountInString(run.String()) >= minGap {
				flush()
			} else {
				field.WriteString(run.String())
			}
			run.Reset()
		}
		field.WriteRune(r)
	}
	flush()
	return fields
}
