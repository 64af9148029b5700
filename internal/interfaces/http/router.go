package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierres-api/internal/application/auth"
	"github.com/jhoicas/cierres-api/internal/application/usecase"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	StationUC      *usecase.StationUseCase
	Ingest         ClosureIngester
	Query          ClosureQuerier
	Export         ClosureExporter
	JWTSecret      string
	UploadMaxBytes int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stations: alta solo admin; lectura para cualquier usuario autenticado
	stations := protected.Group("/stations")
	stationHandler := NewStationHandler(deps.StationUC)
	stations.Post("/", RequireRole(entity.RoleAdmin), stationHandler.Create)
	stations.Get("/", stationHandler.List)
	stations.Get("/:id", stationHandler.GetByID)

	// Closures
	closures := protected.Group("/closures")
	closureHandler := NewClosureHandler(deps.Ingest, deps.Query, deps.Export, deps.UploadMaxBytes)
	managers := RequireRole(entity.RoleAdmin, entity.RoleEncargado)

	closures.Post("/", RequireActiveStation(deps.StationUC), closureHandler.Upload)
	closures.Post("/preview", closureHandler.Preview)
	closures.Post("/import", managers, RequireActiveStation(deps.StationUC), closureHandler.Import)
	closures.Get("/", closureHandler.List)
	closures.Get("/:id", closureHandler.GetByID)
	closures.Get("/:id/pdf", managers, closureHandler.ExportPDF)
	closures.Get("/:id/xlsx", managers, closureHandler.ExportXLSX)
	closures.Get("/:id/xml", managers, closureHandler.ExportXML)
	closures.Get("/:id/verify", RequireRole(entity.RoleAdmin), closureHandler.Verify)
}
