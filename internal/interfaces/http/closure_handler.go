package http

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
)

// ClosureIngester carga de cierres (implementado por *closure.IngestUseCase).
type ClosureIngester interface {
	Preview(ctx context.Context, in closure.UploadInput) (*dto.PreviewResponse, error)
	Upload(ctx context.Context, in closure.UploadInput) (*dto.ClosureResponse, *cierre.ParsedClosure, error)
	Import(ctx context.Context, stationID, userID string, raw []byte) (*dto.ClosureResponse, error)
}

// ClosureQuerier consulta de cierres persistidos.
type ClosureQuerier interface {
	Get(ctx context.Context, id, scope string) (*dto.ClosureDetailResponse, error)
	List(ctx context.Context, scope string, page dto.PageRequest) (*dto.ClosureListResponse, error)
}

// ClosureExporter exportación y verificación de huella.
type ClosureExporter interface {
	Export(ctx context.Context, id, scope, format string) (*closure.ExportFile, error)
	Verify(ctx context.Context, id, scope string) (bool, error)
}

// ClosureHandler maneja las peticiones HTTP de Cierres Z.
type ClosureHandler struct {
	ingest   ClosureIngester
	query    ClosureQuerier
	export   ClosureExporter
	maxBytes int
}

// NewClosureHandler construye el handler. maxBytes acota el tamaño del archivo subido.
func NewClosureHandler(ingest ClosureIngester, query ClosureQuerier, export ClosureExporter, maxBytes int) *ClosureHandler {
	return &ClosureHandler{ingest: ingest, query: query, export: export, maxBytes: maxBytes}
}

// VerifyResponse resultado de recalcular la huella de un cierre.
type VerifyResponse struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
}

// Upload godoc
// @Summary      Subir reporte de Cierre Z
// @Description  Acepta multipart (campo "file") o el texto crudo en el cuerpo. El admin indica station_id.
// @Tags         closures
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    false  "Reporte del surtidor (.txt, .pdf)"
// @Param        station_id  query     string  false  "Estación destino (solo admin)"
// @Success      201  {object}  dto.ClosureResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.InvalidClosureResponse
// @Router       /api/closures [post]
func (h *ClosureHandler) Upload(c *fiber.Ctx) error {
	in, herr := h.uploadInput(c)
	if herr != nil {
		return herr.send(c)
	}
	out, parsed, err := h.ingest.Upload(c.UserContext(), *in)
	if err != nil {
		if errors.Is(err, domain.ErrMissingClosureNumber) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.InvalidClosureResponse{
				ErrorResponse: dto.ErrorResponse{Code: "MISSING_NUMERO_Z", Message: err.Error()},
				Cierre:        parsed,
			})
		}
		return closureError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Previsualizar un Cierre Z sin guardarlo
// @Tags         closures
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  false  "Reporte del surtidor"
// @Success      200  {object}  dto.PreviewResponse
// @Failure      422  {object}  dto.PreviewResponse
// @Router       /api/closures/preview [post]
func (h *ClosureHandler) Preview(c *fiber.Ctx) error {
	filename, data, herr := h.readUpload(c)
	if herr != nil {
		return herr.send(c)
	}
	out, err := h.ingest.Preview(c.UserContext(), closure.UploadInput{Filename: filename, Data: data})
	if err != nil {
		return closureError(c, err)
	}
	if !out.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar un cierre ya estructurado (JSON)
// @Tags         closures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        station_id  query  string  false  "Estación destino (solo admin)"
// @Success      201  {object}  dto.ClosureResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/closures/import [post]
func (h *ClosureHandler) Import(c *fiber.Ctx) error {
	stationID := targetStation(c)
	if stationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_STATION", Message: "station_id es requerido"})
	}
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}
	raw := make([]byte, len(body))
	copy(raw, body)

	out, err := h.ingest.Import(c.UserContext(), stationID, GetUserID(c), raw)
	if err != nil {
		return closureError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cierres
// @Tags         closures
// @Produce      json
// @Security     BearerAuth
// @Param        station_id  query  string  false  "Filtrar por estación (solo admin)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ClosureListResponse
// @Router       /api/closures [get]
func (h *ClosureHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.query.List(c.UserContext(), stationScope(c), page)
	if err != nil {
		return closureError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cierre con sus renglones
// @Tags         closures
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {object}  dto.ClosureDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closures/{id} [get]
func (h *ClosureHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.Get(c.UserContext(), c.Params("id"), stationScope(c))
	if err != nil {
		return closureError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Descargar cierre en PDF
// @Tags         closures
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closures/{id}/pdf [get]
func (h *ClosureHandler) ExportPDF(c *fiber.Ctx) error {
	return h.sendExport(c, closure.FormatPDF)
}

// ExportXLSX godoc
// @Summary      Descargar cierre en Excel
// @Tags         closures
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {file}  binary
// @Router       /api/closures/{id}/xlsx [get]
func (h *ClosureHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.sendExport(c, closure.FormatXLSX)
}

// ExportXML godoc
// @Summary      Descargar cierre en XML
// @Tags         closures
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {file}  binary
// @Router       /api/closures/{id}/xml [get]
func (h *ClosureHandler) ExportXML(c *fiber.Ctx) error {
	return h.sendExport(c, closure.FormatXML)
}

// Verify godoc
// @Summary      Verificar la huella de un cierre
// @Tags         closures
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {object}  VerifyResponse
// @Router       /api/closures/{id}/verify [get]
func (h *ClosureHandler) Verify(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.export.Verify(c.UserContext(), id, stationScope(c))
	if err != nil {
		return closureError(c, err)
	}
	return c.JSON(VerifyResponse{ID: id, Valid: ok})
}

func (h *ClosureHandler) sendExport(c *fiber.Ctx, format string) error {
	file, err := h.export.Export(c.UserContext(), c.Params("id"), stationScope(c), format)
	if err != nil {
		return closureError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}

type httpError struct {
	status int
	body   dto.ErrorResponse
}

func (e *httpError) send(c *fiber.Ctx) error {
	return c.Status(e.status).JSON(e.body)
}

func (h *ClosureHandler) uploadInput(c *fiber.Ctx) (*closure.UploadInput, *httpError) {
	stationID := targetStation(c)
	if stationID == "" {
		return nil, &httpError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "MISSING_STATION", Message: "station_id es requerido"}}
	}
	filename, data, herr := h.readUpload(c)
	if herr != nil {
		return nil, herr
	}
	return &closure.UploadInput{StationID: stationID, UserID: GetUserID(c), Filename: filename, Data: data}, nil
}

// readUpload toma el campo multipart "file"; si no hay, el cuerpo crudo de la petición.
func (h *ClosureHandler) readUpload(c *fiber.Ctx) (string, []byte, *httpError) {
	tooLarge := &httpError{fiber.StatusRequestEntityTooLarge, dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera el tamaño permitido"}}

	if fh, err := c.FormFile("file"); err == nil {
		if h.maxBytes > 0 && fh.Size > int64(h.maxBytes) {
			return "", nil, tooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, &httpError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"}}
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", nil, &httpError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"}}
		}
		return fh.Filename, data, nil
	}

	body := c.Body()
	if len(body) == 0 {
		return "", nil, &httpError{fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_REPORT", Message: "se requiere el campo file o el texto del reporte"}}
	}
	if h.maxBytes > 0 && len(body) > h.maxBytes {
		return "", nil, tooLarge
	}
	// fasthttp reutiliza el buffer del cuerpo al terminar la petición.
	data := make([]byte, len(body))
	copy(data, body)
	return "", data, nil
}

// targetStation estación a la que se asigna un cierre nuevo: la del token, salvo que el
// admin indique otra con station_id (query o form).
func targetStation(c *fiber.Ctx) string {
	if GetRole(c) == entity.RoleAdmin {
		if id := c.Query("station_id"); id != "" {
			return id
		}
		if id := c.FormValue("station_id"); id != "" {
			return id
		}
	}
	return GetStationID(c)
}

func closureError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingClosureNumber):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_NUMERO_Z", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CLOSURE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnsupportedUpload):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FILE", Message: err.Error()})
	case errors.Is(err, domain.ErrEmptyReport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_REPORT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
