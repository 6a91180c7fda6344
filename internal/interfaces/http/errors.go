package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/domain"
)

// writeError traduce los errores centinela del dominio a respuestas HTTP.
// Los casos de uso envuelven con %w, por eso errors.Is y no comparación directa.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCodeFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CODE_FORMAT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrUserNotFound):
		// Usuario del token inexistente o desactivado: sesión inválida.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado o desactivado"})
	case errors.Is(err, domain.ErrOutOfScope):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OUT_OF_SCOPE", Message: "la empresa está fuera del alcance del usuario"})
	case errors.Is(err, domain.ErrModuleDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MODULE_DISABLED", Message: "el módulo no está activo para esta empresa"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no permite esta operación"})
	case errors.Is(err, domain.ErrCounterNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COUNTER_NOT_FOUND", Message: "el cliente no tiene contador de consecutivos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicateCode):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: "el código ya está en uso en la empresa"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrCodeGenerationExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODE_EXHAUSTED", Message: "no quedan códigos disponibles para ese prefijo"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
