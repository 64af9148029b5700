package closure

import (
	"context"
	"time"

	"github.com/jhoicas/cierres-api/internal/domain/cierre"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// Document cierre listo para exportar: el resultado del parseo más los datos de la
// estación y de la carga. ClosureID, Huella y CreatedAt quedan vacíos fuera de la base.
type Document struct {
	ClosureID   string
	StationCode string
	StationName string
	Huella      string
	Source      string
	CreatedAt   time.Time
	Cierre      *cierre.ParsedClosure
}

// TxRunner ejecuta fn dentro de una transacción con el repo de cierres atado a ella.
type TxRunner interface {
	RunClosure(ctx context.Context, fn func(repo repository.ClosureRepository) error) error
}

// TextSource convierte el archivo subido (texto en cualquier charset o PDF) en texto UTF-8.
type TextSource interface {
	FromUpload(filename string, data []byte) (string, error)
}

// SchemaValidator valida un cierre en JSON antes de importarlo.
type SchemaValidator interface {
	ValidateClosure(raw []byte) error
}

// XMLRenderer genera el XML del cierre y su huella.
// Fingerprint no depende de ClosureID, Huella ni CreatedAt.
type XMLRenderer interface {
	RenderClosureXML(doc *Document) ([]byte, error)
	Fingerprint(doc *Document) (string, error)
}

// PDFRenderer genera el reporte imprimible del cierre.
type PDFRenderer interface {
	RenderClosurePDF(ctx context.Context, doc *Document) ([]byte, error)
}

// XLSXRenderer genera la planilla del cierre.
type XLSXRenderer interface {
	RenderClosureXLSX(doc *Document) ([]byte, error)
}
