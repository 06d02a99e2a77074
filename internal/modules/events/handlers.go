package events

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

type EventHandler struct {
	eventService *EventService
}

func NewEventHandler(eventService *EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	filter := EventFilter{
		UpcomingOnly: c.Query("upcoming") == "true",
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "0"))
	if raw := c.Query("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
		}
		filter.BrandID = &id
	}

	events, err := h.eventService.ListPublished(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch events"})
	}
	return c.JSON(events)
}

func (h *EventHandler) ListAllEvents(c *fiber.Ctx) error {
	events, err := h.eventService.ListAll(authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch events"})
	}
	return c.JSON(events)
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	event, err := h.eventService.Create(&req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrStartsAtRequired), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create event"})
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	event, err := h.eventService.Update(id, &req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update event"})
	}

	return c.JSON(event)
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	if err := h.eventService.Delete(id, authctx.GetPermissions(c)); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete event"})
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}

type BenefitHandler struct {
	benefitService *BenefitService
}

func NewBenefitHandler(benefitService *BenefitService) *BenefitHandler {
	return &BenefitHandler{benefitService: benefitService}
}

func (h *BenefitHandler) ListBenefits(c *fiber.Ctx) error {
	var brandID *uuid.UUID
	if raw := c.Query("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
		}
		brandID = &id
	}

	benefits, err := h.benefitService.ListActive(brandID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch benefits"})
	}
	return c.JSON(benefits)
}

func (h *BenefitHandler) ListAllBenefits(c *fiber.Ctx) error {
	benefits, err := h.benefitService.ListAll(authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch benefits"})
	}
	return c.JSON(benefits)
}

func (h *BenefitHandler) CreateBenefit(c *fiber.Ctx) error {
	var req BenefitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	benefit, err := h.benefitService.Create(&req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create benefit"})
	}

	return c.Status(fiber.StatusCreated).JSON(benefit)
}

func (h *BenefitHandler) UpdateBenefit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid benefit ID"})
	}

	var req BenefitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	benefit, err := h.benefitService.Update(id, &req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrBenefitNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update benefit"})
	}

	return c.JSON(benefit)
}

func (h *BenefitHandler) DeleteBenefit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid benefit ID"})
	}

	if err := h.benefitService.Delete(id, authctx.GetPermissions(c)); err != nil {
		switch {
		case errors.Is(err, ErrBenefitNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden), errors.Is(err, ErrBrandRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete benefit"})
	}

	return c.JSON(fiber.Map{"message": "Benefit deleted"})
}
