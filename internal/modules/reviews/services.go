package reviews

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrTitleRequired   = errors.New("title is required")
	ErrSlugRequired    = errors.New("slug is required")
	ErrContentRequired = errors.New("content is required")
	ErrNotOwner        = errors.New("not the author of this content")
)

// --- DTOs ---

type ReviewRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// ReviewDetail bundles a review with its comments.
type ReviewDetail struct {
	models.ReviewPost
	Comments []models.Comment `json:"comments"`
}

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) ListPublished(limit int) ([]models.ReviewPost, error) {
	q := s.db.Where("is_published = ?", true).Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.ReviewPost
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return list, nil
}

func (s *ReviewService) GetBySlug(slug string) (*ReviewDetail, error) {
	var review models.ReviewPost
	if err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}

	detail := &ReviewDetail{ReviewPost: review}
	if err := s.db.Where("review_post_id = ?", review.ID).
		Order("created_at ASC").Find(&detail.Comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return detail, nil
}

func (s *ReviewService) Create(authorID uuid.UUID, req *ReviewRequest) (*models.ReviewPost, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.Slug == "" {
		return nil, ErrSlugRequired
	}

	review := models.ReviewPost{
		AuthorID:      authorID,
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
	}

	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) Update(id, callerID uuid.UUID, req *ReviewRequest, perms authz.Permissions) (*models.ReviewPost, error) {
	var review models.ReviewPost
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}

	if review.AuthorID != callerID && !perms.Moderate {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if req.CoverImageURL != "" {
		updates["cover_image_url"] = req.CoverImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&review).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
	}

	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload review: %w", err)
	}
	return &review, nil
}

// Publish is moderator-only and stamps published_at once.
func (s *ReviewService) Publish(id uuid.UUID) (*models.ReviewPost, error) {
	var review models.ReviewPost
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}

	if review.IsPublished {
		return &review, nil
	}

	now := time.Now()
	if err := s.db.Model(&review).Updates(map[string]interface{}{
		"is_published": true,
		"published_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to publish review: %w", err)
	}
	review.IsPublished = true
	review.PublishedAt = &now
	return &review, nil
}

func (s *ReviewService) Delete(id, callerID uuid.UUID, perms authz.Permissions) error {
	var review models.ReviewPost
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to fetch review: %w", err)
	}

	if review.AuthorID != callerID && !perms.Moderate {
		return ErrNotOwner
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (s *ReviewService) AddComment(reviewID, authorID uuid.UUID, req *CommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, ErrContentRequired
	}

	var review models.ReviewPost
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}

	comment := models.Comment{
		ReviewPostID: reviewID,
		AuthorID:     authorID,
		Content:      req.Content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

func (s *ReviewService) DeleteComment(id, callerID uuid.UUID, perms authz.Permissions) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to fetch comment: %w", err)
	}

	if comment.AuthorID != callerID && !perms.Moderate {
		return ErrNotOwner
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
