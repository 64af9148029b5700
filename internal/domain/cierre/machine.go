package cierre

import "strings"

// isDashRule separador: una línea hecha solo de guiones, de cualquier largo.
func isDashRule(line string) bool {
	return line != "" && strings.Trim(line, "-") == ""
}

// isTotalLine renglón de total impreso al pie de una sección ("TOTAL ...", "Total ...").
func isTotalLine(line string) bool {
	return len(line) >= 5 && strings.EqualFold(line[:5], "TOTAL")
}

// Step función de transición del clasificador. Recibe el estado actual y una línea del
// reporte, y devuelve el nuevo estado y, si corresponde, el renglón extraído.
// Un error indica que la línea llegó a un extractor y se descartó; el estado es válido igual.
//
// El orden de las reglas importa: los encabezados ganan sobre el contenido, y los guiones
// cierran la sección salvo dentro del RESUMEN, donde son decorativos.
func Step(state Section, raw string) (Section, Item, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return state, nil, nil
	}
	if next, ok := sectionHeaders[line]; ok {
		return next, nil, nil
	}
	if _, ok := ignoredHeaders[line]; ok {
		return SectionIgnored, nil, nil
	}
	if isDashRule(line) {
		if state == SectionResumen {
			return state, nil, nil
		}
		return SectionNone, nil, nil
	}
	if state != SectionResumen && isTotalLine(line) {
		if state.active() {
			return state, sectionTotal(line), nil
		}
		return state, nil, nil
	}
	if state == SectionIgnored {
		return state, nil, nil
	}

	extract, ok := extractors[state]
	if !ok {
		return state, nil, nil
	}
	item, err := extract(line)
	return state, item, err
}
