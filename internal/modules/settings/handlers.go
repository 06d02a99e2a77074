package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

type SettingHandler struct {
	settingService *SettingService
}

func NewSettingHandler(settingService *SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	all, err := h.settingService.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch settings"})
	}
	return c.JSON(all)
}

func (h *SettingHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.settingService.Get(c.Params("key"))
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch setting"})
	}
	return c.JSON(setting)
}

func (h *SettingHandler) SetSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.Key == "" {
		req.Key = c.Params("key")
	}

	setting, err := h.settingService.Set(req.Key, req.Value)
	if err != nil {
		if errors.Is(err, ErrKeyRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to save setting"})
	}
	return c.JSON(setting)
}

func (h *SettingHandler) DeleteSetting(c *fiber.Ctx) error {
	if err := h.settingService.Delete(c.Params("key")); err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete setting"})
	}
	return c.JSON(fiber.Map{"message": "Setting deleted"})
}
