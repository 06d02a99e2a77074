package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
)

// =============================================================================
// BrandHandler
// =============================================================================

type BrandHandler struct {
	brandService *BrandService
}

func NewBrandHandler(brandService *BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	includeInactive := authctx.GetPermissions(c).ManagePlatform && c.Query("all") == "true"
	brands, err := h.brandService.List(includeInactive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch brands"})
	}
	return c.JSON(brands)
}

func (h *BrandHandler) GetBrandBySlug(c *fiber.Ctx) error {
	brand, err := h.brandService.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch brand"})
	}
	return c.JSON(brand)
}

func (h *BrandHandler) CreateBrand(c *fiber.Ctx) error {
	var req BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	brand, err := h.brandService.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrSlugRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create brand"})
	}

	return c.Status(fiber.StatusCreated).JSON(brand)
}

func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
	}

	var req BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	brand, err := h.brandService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBrandNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update brand"})
	}

	return c.JSON(brand)
}

func (h *BrandHandler) DeleteBrand(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand ID"})
	}

	if err := h.brandService.Delete(id); err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete brand"})
	}

	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}

// =============================================================================
// ModelHandler
// =============================================================================

type ModelHandler struct {
	modelService *ModelService
}

func NewModelHandler(modelService *ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

func (h *ModelHandler) ListModels(c *fiber.Ctx) error {
	brandID, err := uuid.Parse(c.Query("brand_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "brand_id query parameter is required"})
	}

	list, err := h.modelService.ListByBrand(brandID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch models"})
	}
	return c.JSON(list)
}

func (h *ModelHandler) CreateModel(c *fiber.Ctx) error {
	var req ModelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	m, err := h.modelService.Create(&req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create model"})
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *ModelHandler) UpdateModel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid model ID"})
	}

	var req ModelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	m, err := h.modelService.Update(id, &req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrModelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update model"})
	}

	return c.JSON(m)
}

func (h *ModelHandler) DeleteModel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid model ID"})
	}

	if err := h.modelService.Delete(id, authctx.GetPermissions(c)); err != nil {
		switch {
		case errors.Is(err, ErrModelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete model"})
	}

	return c.JSON(fiber.Map{"message": "Model deleted successfully"})
}

// =============================================================================
// TrimHandler
// =============================================================================

type TrimHandler struct {
	trimService *TrimService
}

func NewTrimHandler(trimService *TrimService) *TrimHandler {
	return &TrimHandler{trimService: trimService}
}

func (h *TrimHandler) ListTrims(c *fiber.Ctx) error {
	var f TrimFilter

	if v := c.Query("model_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid model_id"})
		}
		f.ModelID = &id
	}
	if v := c.Query("brand_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid brand_id"})
		}
		f.BrandID = &id
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit", "0"))

	trims, err := h.trimService.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch trims"})
	}
	return c.JSON(trims)
}

func (h *TrimHandler) GetTrim(c *fiber.Ctx) error {
	param := c.Params("id")

	var detail *TrimDetail
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		detail, err = h.trimService.GetDetail(id)
	} else {
		detail, err = h.trimService.GetDetailBySlug(param)
	}
	if err != nil {
		if errors.Is(err, ErrTrimNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch trim"})
	}

	return c.JSON(detail)
}

func (h *TrimHandler) CreateTrim(c *fiber.Ctx) error {
	var req TrimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	trim, err := h.trimService.Create(&req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrSlugRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrModelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create trim"})
	}

	return c.Status(fiber.StatusCreated).JSON(trim)
}

func (h *TrimHandler) UpdateTrim(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid trim ID"})
	}

	var req TrimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	trim, err := h.trimService.Update(id, &req, authctx.GetPermissions(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrTrimNotFound), errors.Is(err, ErrModelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update trim"})
	}

	return c.JSON(trim)
}

func (h *TrimHandler) DeleteTrim(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid trim ID"})
	}

	if err := h.trimService.Delete(id, authctx.GetPermissions(c)); err != nil {
		switch {
		case errors.Is(err, ErrTrimNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBrandForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete trim"})
	}

	return c.JSON(fiber.Map{"message": "Trim deleted successfully"})
}
