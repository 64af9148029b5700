package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cierres-api/internal/application/dto"
)

// stationChecker es el contrato mínimo que necesita el middleware para verificar la estación.
// Lo implementa *usecase.StationUseCase; el uso de interfaz evita el import circular.
type stationChecker interface {
	IsActive(ctx context.Context, stationID string) (bool, error)
}

// RequireActiveStation verifica que la estación del token exista y esté activa antes de
// aceptar cierres. Debe usarse DESPUÉS de AuthMiddleware. El admin sin estación pasa.
//
// Comportamiento:
//   - 403 Forbidden  → estación dada de baja o inexistente.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveStation(checker stationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID := GetStationID(c)
		if stationID == "" {
			return c.Next()
		}

		active, err := checker.IsActive(c.UserContext(), stationID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STATION_CHECK_FAILED",
				Message: "no se pudo verificar la estación, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "STATION_INACTIVE",
				Message: "la estación del usuario no está activa",
			})
		}
		return c.Next()
	}
}
