package savedcars

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

type SavedCarHandler struct {
	savedCarService *SavedCarService
}

func NewSavedCarHandler(savedCarService *SavedCarService) *SavedCarHandler {
	return &SavedCarHandler{savedCarService: savedCarService}
}

func (h *SavedCarHandler) SaveCar(c *fiber.Ctx) error {
	trimID, err := uuid.Parse(c.Params("trim_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid trim ID"})
	}

	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	saved, err := h.savedCarService.Save(userID, trimID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrimNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrAlreadySaved):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to save car"})
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *SavedCarHandler) UnsaveCar(c *fiber.Ctx) error {
	trimID, err := uuid.Parse(c.Params("trim_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid trim ID"})
	}

	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	if err := h.savedCarService.Unsave(userID, trimID); err != nil {
		if errors.Is(err, ErrNotSaved) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to unsave car"})
	}

	return c.JSON(fiber.Map{"message": "Car removed from saved list"})
}

func (h *SavedCarHandler) ListSavedCars(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	entries, err := h.savedCarService.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch saved cars"})
	}
	return c.JSON(entries)
}
