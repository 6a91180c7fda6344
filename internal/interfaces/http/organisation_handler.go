package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/office-pro/internal/application/dto"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
)

// OrganisationHandler maneja las organizaciones (solo rol de plataforma escribe).
type OrganisationHandler struct {
	uc *usecase.OrganisationUseCase
}

// NewOrganisationHandler construye el handler.
func NewOrganisationHandler(uc *usecase.OrganisationUseCase) *OrganisationHandler {
	return &OrganisationHandler{uc: uc}
}

// Create POST /api/organisations
func (h *OrganisationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganisationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	org, err := h.uc.Create(c.Context(), GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(org)
}

// GetByID GET /api/organisations/:id
func (h *OrganisationHandler) GetByID(c *fiber.Ctx) error {
	org, err := h.uc.Get(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(org)
}

// List GET /api/organisations?limit=20&offset=0
func (h *OrganisationHandler) List(c *fiber.Ctx) error {
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

// Deactivate DELETE /api/organisations/:id (baja lógica)
func (h *OrganisationHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
