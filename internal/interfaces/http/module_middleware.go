package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	IsModuleEnabled(ctx context.Context, companyID string, key entity.ModuleKey) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si la empresa del
// token tiene el módulo activo. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalCompanyID). El Authorizer repite la verificación dentro del
// caso de uso; el middleware solo corta temprano las rutas del módulo.
//
// Comportamiento:
//   - 403 Forbidden → módulo desactivado en la configuración de la empresa.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay company_id en el contexto, responde 401.
func RequireModule(key entity.ModuleKey, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		enabled, err := checker.IsModuleEnabled(c.Context(), companyID, key)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + string(key) + "' no está activo para esta empresa",
			})
		}

		return c.Next()
	}
}
