package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/database"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
