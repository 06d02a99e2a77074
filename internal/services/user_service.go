package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrBrandNotFound = errors.New("brand not found")
	ErrAlreadyGrants = errors.New("user already manages this brand")
)

// UserService covers the admin console's user management: listing, role
// changes and brand-admin grants.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(page, limit int) (*dto.UsersListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &dto.UsersListResponse{Total: total, Page: page, Limit: limit}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			Role:      u.Role,
		})
	}
	return resp, nil
}

// UpdateRole mutates a user's role. Only admin-tier callers reach this; the
// role value itself is validated against the known set.
func (s *UserService) UpdateRole(userID uuid.UUID, role string) (*models.User, error) {
	if !authz.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role
	return &user, nil
}

// GrantBrandAdmin adds a brand_admins row and promotes the user to
// brand_admin if they are not already privileged.
func (s *UserService) GrantBrandAdmin(req *dto.GrantBrandAdminRequest) (*models.BrandAdmin, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", req.BrandID).Error; err != nil {
		return nil, ErrBrandNotFound
	}

	grant := models.BrandAdmin{
		BrandID: req.BrandID,
		UserID:  req.UserID,
	}
	if err := s.db.Create(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyGrants
		}
		return nil, fmt.Errorf("failed to create brand grant: %w", err)
	}

	if user.Role != authz.RoleAdmin && user.Role != authz.RoleBrandAdmin {
		if err := s.db.Model(&user).Update("role", authz.RoleBrandAdmin).Error; err != nil {
			return nil, fmt.Errorf("failed to promote user: %w", err)
		}
	}

	return &grant, nil
}

// RevokeBrandAdmin removes a grant; when it was the user's last one the role
// drops back to user.
func (s *UserService) RevokeBrandAdmin(userID, brandID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND brand_id = ?", userID, brandID).
		Delete(&models.BrandAdmin{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke brand grant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	var remaining int64
	if err := s.db.Model(&models.BrandAdmin{}).Where("user_id = ?", userID).
		Count(&remaining).Error; err != nil {
		return fmt.Errorf("failed to count remaining grants: %w", err)
	}
	if remaining == 0 {
		return s.db.Model(&models.User{}).Where("id = ? AND role = ?", userID, authz.RoleBrandAdmin).
			Update("role", authz.RoleUser).Error
	}
	return nil
}
