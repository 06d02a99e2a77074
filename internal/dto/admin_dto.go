package dto

import "github.com/google/uuid"

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type GrantBrandAdminRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	BrandID uuid.UUID `json:"brand_id"`
}

type UsersListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
