// Package textsource convierte los archivos que suben las estaciones (texto del
// controlador de surtidores en cualquier charset, o PDF impreso) en texto UTF-8.
package textsource

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/cierres-api/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source implementa closure.TextSource.
type Source struct {
	fallback encoding.Encoding
}

// New construye la fuente con el charset que se asume cuando el archivo no es UTF-8
// válido. Acepta "windows-1252" (por defecto) o "iso-8859-1".
func New(defaultCharset string) *Source {
	return &Source{fallback: charsetFor(defaultCharset)}
}

func charsetFor(name string) encoding.Encoding {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1
	default:
		return charmap.Windows1252
	}
}

// Decode devuelve el texto en UTF-8 con fines de línea "\n".
func (s *Source) Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		out, err := s.fallback.NewDecoder().Bytes(data)
		if err != nil {
			// charmap no falla con bytes sueltos; por las dudas se reemplaza lo inválido
			text = strings.ToValidUTF8(string(data), "�")
		} else {
			text = string(out)
		}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// FromUpload elige PDF o texto según la extensión o la firma %PDF del contenido.
func (s *Source) FromUpload(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrEmptyReport
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".pdf" || bytes.HasPrefix(data, []byte("%PDF")) {
		return ExtractPDF(data)
	}
	switch ext {
	case "", ".txt", ".z", ".prn", ".log", ".csv":
		return s.Decode(data), nil
	}
	return "", domain.ErrUnsupportedUpload
}
