package community

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrCommunityNotFound = errors.New("community not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrNameRequired      = errors.New("name is required")
	ErrSlugRequired      = errors.New("slug is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrNotOwner          = errors.New("not the author of this post")
)

// --- DTOs ---

type CommunityRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommunityDetail bundles a community with its newest posts.
type CommunityDetail struct {
	models.Community
	Posts []models.CommunityPost `json:"posts"`
}

type CommunityService struct {
	db *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

func (s *CommunityService) ListActive() ([]models.Community, error) {
	var list []models.Community
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	return list, nil
}

func (s *CommunityService) GetBySlug(slug string, postLimit int) (*CommunityDetail, error) {
	var community models.Community
	if err := s.db.Where("slug = ? AND is_active = ?", slug, true).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to fetch community: %w", err)
	}

	if postLimit <= 0 || postLimit > 100 {
		postLimit = 50
	}

	detail := &CommunityDetail{Community: community}
	if err := s.db.Where("community_id = ?", community.ID).
		Order("created_at DESC").Limit(postLimit).Find(&detail.Posts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return detail, nil
}

func (s *CommunityService) Create(req *CommunityRequest) (*models.Community, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Slug == "" {
		return nil, ErrSlugRequired
	}

	community := models.Community{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		community.IsActive = *req.IsActive
	}

	if err := s.db.Create(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create community: %w", err)
	}
	return &community, nil
}

func (s *CommunityService) Update(id uuid.UUID, req *CommunityRequest) (*models.Community, error) {
	var community models.Community
	if err := s.db.First(&community, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to fetch community: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&community).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to update community: %w", err)
		}
	}

	if err := s.db.First(&community, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload community: %w", err)
	}
	return &community, nil
}

func (s *CommunityService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Community{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete community: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommunityNotFound
	}
	return nil
}

func (s *CommunityService) CreatePost(communityID, authorID uuid.UUID, req *PostRequest) (*models.CommunityPost, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	var community models.Community
	if err := s.db.Where("id = ? AND is_active = ?", communityID, true).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to fetch community: %w", err)
	}

	post := models.CommunityPost{
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       req.Title,
		Content:     req.Content,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

func (s *CommunityService) DeletePost(id, callerID uuid.UUID, perms authz.Permissions) error {
	var post models.CommunityPost
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	if post.AuthorID != callerID && !perms.Moderate {
		return ErrNotOwner
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
