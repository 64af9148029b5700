package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cierres-api/internal/application/auth"
	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/application/usecase"
	"github.com/jhoicas/cierres-api/internal/infrastructure/jsonschema"
	infrapdf "github.com/jhoicas/cierres-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cierres-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cierres-api/internal/infrastructure/textsource"
	"github.com/jhoicas/cierres-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/cierres-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/cierres-api/internal/interfaces/http"
	"github.com/jhoicas/cierres-api/pkg/config"
	"github.com/jhoicas/cierres-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	stationRepo := postgres.NewStationRepository(pool)
	closureRepo := postgres.NewClosureRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	schema, err := jsonschema.New()
	if err != nil {
		log.Fatal().Err(err).Msg("compilar JSON Schema de cierres")
	}
	xmlBuilder := xmlexport.NewBuilder()
	source := textsource.New(cfg.Upload.DefaultCharset)

	ingestUC := appclosure.NewIngestUseCase(
		txRunner, closureRepo, stationRepo, source, xmlBuilder, schema,
		log.Component("ingest"),
	)
	queryUC := appclosure.NewQueryUseCase(closureRepo)
	exportUC := appclosure.NewExportUseCase(
		closureRepo, stationRepo,
		infrapdf.NewMarotoClosureRenderer(), xlsx.NewExporter(), xmlBuilder,
	)
	stationUC := usecase.NewStationUseCase(stationRepo)
	authUC := auth.NewAuthUseCase(userRepo, stationRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBytes + 64<<10, // margen para el envoltorio multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cierres API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		StationUC:      stationUC,
		Ingest:         ingestUC,
		Query:          queryUC,
		Export:         exportUC,
		JWTSecret:      cfg.JWT.Secret,
		UploadMaxBytes: cfg.Upload.MaxBytes,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
