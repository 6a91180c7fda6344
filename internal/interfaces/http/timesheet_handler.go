package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
)

// TimesheetHandler maneja las hojas de tiempo.
type TimesheetHandler struct {
	uc *usecase.TimesheetUseCase
}

// NewTimesheetHandler construye el handler.
func NewTimesheetHandler(uc *usecase.TimesheetUseCase) *TimesheetHandler {
	return &TimesheetHandler{uc: uc}
}

// Create POST /api/timesheets
func (h *TimesheetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTimesheetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ts, err := h.uc.Create(c.Context(), GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ts)
}

// List GET /api/timesheets?limit=20&offset=0
// Los members solo ven sus propias hojas; los admins, las de la empresa.
func (h *TimesheetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, err := h.uc.List(c.Context(), GetUserID(c), GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Approve POST /api/timesheets/:id/approve
func (h *TimesheetHandler) Approve(c *fiber.Ctx) error {
	ts, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ts)
}
