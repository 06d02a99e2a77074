package activations

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type ActivationHandler struct {
	service *ActivationService
}

func NewActivationHandler(service *ActivationService) *ActivationHandler {
	return &ActivationHandler{service: service}
}

func (h *ActivationHandler) Submit(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req SubmitActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	activation, err := h.service.Submit(userID, &req)
	if err != nil {
		if errors.Is(err, ErrVINRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to submit activation"})
	}

	return c.Status(fiber.StatusCreated).JSON(activation)
}

func (h *ActivationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	list, err := h.service.ListMine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch activations"})
	}
	return c.JSON(list)
}

func (h *ActivationHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.Query("status"), authctx.GetPermissions(c))
	if err != nil {
		if errors.Is(err, ErrBrandForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch activations"})
	}
	return c.JSON(list)
}

func (h *ActivationHandler) Verify(c *fiber.Ctx) error {
	return h.decide(c, models.ActivationStatusVerified)
}

func (h *ActivationHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, models.ActivationStatusRejected)
}

func (h *ActivationHandler) decide(c *fiber.Ctx, status string) error {
	verifierID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid activation ID"})
	}

	// Notes body is optional.
	var req DecideActivationRequest
	_ = c.BodyParser(&req)

	perms := authctx.GetPermissions(c)
	var activation *models.VehicleActivation
	if status == models.ActivationStatusVerified {
		activation, err = h.service.Verify(id, verifierID, req.Notes, perms)
	} else {
		activation, err = h.service.Reject(id, verifierID, req.Notes, perms)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrActivationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update activation"})
	}

	return c.JSON(activation)
}
