package closure

import (
	"context"
	"fmt"

	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// ExportFile documento generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUseCase genera PDF, XLSX o XML de un cierre persistido.
type ExportUseCase struct {
	closures repository.ClosureRepository
	stations repository.StationRepository
	pdf      PDFRenderer
	xlsx     XLSXRenderer
	xml      XMLRenderer
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(
	closures repository.ClosureRepository,
	stations repository.StationRepository,
	pdf PDFRenderer,
	xlsx XLSXRenderer,
	xml XMLRenderer,
) *ExportUseCase {
	return &ExportUseCase{closures: closures, stations: stations, pdf: pdf, xlsx: xlsx, xml: xml}
}

// Export genera el documento en el formato pedido.
func (uc *ExportUseCase) Export(ctx context.Context, id, scope, format string) (*ExportFile, error) {
	doc, err := uc.Document(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf("cierre_z_%s_%d", doc.StationCode, *doc.Cierre.Header.NumeroZ)

	switch format {
	case FormatPDF:
		data, err := uc.pdf.RenderClosurePDF(ctx, doc)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: base + ".pdf", ContentType: "application/pdf", Data: data}, nil
	case FormatXLSX:
		data, err := uc.xlsx.RenderClosureXLSX(doc)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatXML:
		data, err := uc.xml.RenderClosureXML(doc)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: base + ".xml", ContentType: "application/xml", Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
}

// Document carga el cierre con su estación y renglones.
func (uc *ExportUseCase) Document(ctx context.Context, id, scope string) (*Document, error) {
	c, err := loadScoped(ctx, uc.closures, id, scope)
	if err != nil {
		return nil, err
	}
	items, err := uc.closures.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	station, err := uc.stations.GetByID(ctx, c.StationID)
	if err != nil {
		return nil, err
	}
	return newDocument(station, c, items), nil
}

// Verify recalcula la huella del cierre persistido y la compara con la guardada.
func (uc *ExportUseCase) Verify(ctx context.Context, id, scope string) (bool, error) {
	doc, err := uc.Document(ctx, id, scope)
	if err != nil {
		return false, err
	}
	huella, err := uc.xml.Fingerprint(doc)
	if err != nil {
		return false, err
	}
	return huella == doc.Huella, nil
}
