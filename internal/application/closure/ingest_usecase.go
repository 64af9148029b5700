package closure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

// UploadInput archivo de Cierre Z subido por una estación.
type UploadInput struct {
	StationID string
	UserID    string
	Filename  string
	Data      []byte
}

// IngestUseCase parsea, valida y persiste Cierres Z.
type IngestUseCase struct {
	tx       TxRunner
	closures repository.ClosureRepository
	stations repository.StationRepository
	source   TextSource
	xml      XMLRenderer
	schema   SchemaValidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewIngestUseCase construye el caso de uso de carga.
func NewIngestUseCase(
	tx TxRunner,
	closures repository.ClosureRepository,
	stations repository.StationRepository,
	source TextSource,
	xml XMLRenderer,
	schema SchemaValidator,
	log zerolog.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		tx:       tx,
		closures: closures,
		stations: stations,
		source:   source,
		xml:      xml,
		schema:   schema,
		log:      log,
		now:      time.Now,
	}
}

// Preview parsea el archivo sin persistir. Valid es false si falta el número Z.
func (uc *IngestUseCase) Preview(_ context.Context, in UploadInput) (*dto.PreviewResponse, error) {
	pc, err := uc.parse(in)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{Valid: pc.Validate() == nil, Cierre: pc}, nil
}

// Upload parsea el archivo y persiste el cierre en una sola transacción.
// Devuelve domain.ErrMissingClosureNumber, domain.ErrDuplicate o domain.ErrNotFound (estación).
// Ante ErrMissingClosureNumber también devuelve el cierre parseado para mostrarlo.
func (uc *IngestUseCase) Upload(ctx context.Context, in UploadInput) (*dto.ClosureResponse, *cierre.ParsedClosure, error) {
	pc, err := uc.parse(in)
	if err != nil {
		return nil, nil, err
	}
	out, err := uc.store(ctx, in.StationID, in.UserID, entity.ClosureSourceUpload, pc)
	return out, pc, err
}

// Import persiste un cierre ya estructurado (JSON), previa validación contra el schema.
func (uc *IngestUseCase) Import(ctx context.Context, stationID, userID string, raw []byte) (*dto.ClosureResponse, error) {
	if err := uc.schema.ValidateClosure(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var pc cierre.ParsedClosure
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return uc.store(ctx, stationID, userID, entity.ClosureSourceImport, &pc)
}

func (uc *IngestUseCase) parse(in UploadInput) (*cierre.ParsedClosure, error) {
	text, err := uc.source.FromUpload(in.Filename, in.Data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyReport
	}
	pc := cierre.Parse(text)
	for _, issue := range pc.Errores {
		uc.log.Debug().
			Int("linea", issue.Linea).
			Str("seccion", issue.Seccion).
			Str("motivo", issue.Motivo).
			Msg("línea descartada")
	}
	return pc, nil
}

func (uc *IngestUseCase) store(ctx context.Context, stationID, userID, source string, pc *cierre.ParsedClosure) (*dto.ClosureResponse, error) {
	if err := pc.Validate(); err != nil {
		uc.log.Warn().Str("station_id", stationID).Str("source", source).Msg("cierre rechazado: sin número Z")
		return nil, err
	}
	numero := *pc.Header.NumeroZ

	station, err := uc.stations.GetByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, domain.ErrNotFound
	}

	exists, err := uc.closures.ExistsByNumero(ctx, stationID, numero)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("cierre %d de la estación %s: %w", numero, station.Code, domain.ErrDuplicate)
	}

	c, items := toEntity(stationID, userID, source, pc)
	c.CreatedAt = uc.now()
	huella, err := uc.xml.Fingerprint(newDocument(station, c, items))
	if err != nil {
		return nil, fmt.Errorf("huella del cierre: %w", err)
	}
	c.Huella = huella

	err = uc.tx.RunClosure(ctx, func(repo repository.ClosureRepository) error {
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		return repo.CreateItems(ctx, items)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("station_id", stationID).Int("numero_z", numero).Msg("persistir cierre")
		return nil, err
	}

	uc.log.Info().
		Str("closure_id", c.ID).
		Str("station_id", stationID).
		Int("numero_z", numero).
		Int("items", len(items)).
		Int("issues", c.IssueCount).
		Str("source", source).
		Msg("cierre persistido")
	return toClosureResponse(c, len(items)), nil
}
