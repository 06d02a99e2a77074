package leads

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

type LeadHandler struct {
	leadService *LeadService
}

func NewLeadHandler(leadService *LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLead is the public lead-capture endpoint. When the caller carries a
// valid session the lead is attributed to them; anonymous submissions are
// accepted too.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	var userID *uuid.UUID
	if id, err := authctx.GetUserID(c); err == nil {
		userID = &id
	}

	lead, err := h.leadService.Create(&req, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrEmailRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrTrimNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to submit lead"})
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	leads, err := h.leadService.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch leads"})
	}
	return c.JSON(leads)
}

func (h *LeadHandler) ListRecentByBrand(c *fiber.Ctx) error {
	brandID, err := uuid.Parse(c.Params("brand_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	leads, err := h.leadService.ListRecentByBrand(brandID, limit, authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch leads"})
	}
	return c.JSON(leads)
}

func (h *LeadHandler) CountNewByBrand(c *fiber.Ctx) error {
	brandID, err := uuid.Parse(c.Params("brand_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
	}

	count, err := h.leadService.CountNewByBrand(brandID, authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to count leads"})
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *LeadHandler) StatsByBrand(c *fiber.Ctx) error {
	brandID, err := uuid.Parse(c.Params("brand_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
	}

	stats, err := h.leadService.StatsByBrand(brandID, authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to aggregate leads"})
	}
	return c.JSON(stats)
}

func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid lead ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	lead, err := h.leadService.UpdateStatus(id, req.Status, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrLeadNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update lead"})
	}

	return c.JSON(lead)
}
