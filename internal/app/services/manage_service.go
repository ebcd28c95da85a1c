package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/camnote/internal/app/content"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// ManageService is the administrator's create/edit/delete surface for content.
// Every mutation answers with the department's refreshed list.
type ManageService interface {
	List(ctx context.Context, category models.Category, department string) (*dto.ManageListResponse, error)
	Create(ctx context.Context, category models.Category, department string, form *dto.ContentForm) (*dto.ManageListResponse, error)
	Update(ctx context.Context, category models.Category, department, id string, form *dto.ContentForm) (*dto.ManageListResponse, error)
	Delete(ctx context.Context, category models.Category, department, id string, confirmed bool) (*dto.ManageListResponse, error)
}

type manageServiceImpl struct {
	contentRepo repositories.IContentRepository
	location    *time.Location
	now         func() time.Time
}

// NewManageService creates a new ManageService
func NewManageService(contentRepo repositories.IContentRepository, location *time.Location) ManageService {
	return &manageServiceImpl{
		contentRepo: contentRepo,
		location:    location,
		now:         time.Now,
	}
}

func checkScope(category models.Category, department string) error {
	if _, ok := content.PolicyFor(category); !ok {
		return apperrors.ErrResourceNotFound
	}
	if strings.TrimSpace(department) == "" {
		return apperrors.ErrDepartmentRequired
	}
	return nil
}

func checkForm(form *dto.ContentForm) error {
	if form == nil || strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Content) == "" {
		return apperrors.ErrContentFieldsMissing
	}
	return nil
}

// List returns the department's items, newest first
func (s *manageServiceImpl) List(ctx context.Context, category models.Category, department string) (*dto.ManageListResponse, error) {
	if err := checkScope(category, department); err != nil {
		return nil, err
	}

	items, err := s.contentRepo.FindByDepartment(ctx, category, department)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", category, err)
	}

	out := make([]dto.ContentItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item, s.location, true))
	}
	return &dto.ManageListResponse{
		Category:   string(category),
		Department: department,
		Items:      out,
	}, nil
}

// Create adds an item to the department
func (s *manageServiceImpl) Create(ctx context.Context, category models.Category, department string, form *dto.ContentForm) (*dto.ManageListResponse, error) {
	if err := checkScope(category, department); err != nil {
		return nil, err
	}
	if err := checkForm(form); err != nil {
		return nil, err
	}

	now := s.now()
	item := &models.ContentItem{
		ID:         uuid.New().String(),
		Category:   category,
		Title:      form.Title,
		Content:    form.Content,
		Department: department,
		CreatedAt:  &now,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info().Str("category", string(category)).Str("id", item.ID).Str("department", department).Msg("Content created")
	return s.List(ctx, category, department)
}

// Update rewrites an item's title and content and moves it to department
func (s *manageServiceImpl) Update(ctx context.Context, category models.Category, department, id string, form *dto.ContentForm) (*dto.ManageListResponse, error) {
	if err := checkScope(category, department); err != nil {
		return nil, err
	}
	if err := checkForm(form); err != nil {
		return nil, err
	}

	err := s.contentRepo.Update(ctx, &models.ContentItem{
		ID:         id,
		Category:   category,
		Title:      form.Title,
		Content:    form.Content,
		Department: department,
	})
	if err != nil {
		return nil, err
	}

	return s.List(ctx, category, department)
}

// Delete removes an item once the caller has confirmed
func (s *manageServiceImpl) Delete(ctx context.Context, category models.Category, department, id string, confirmed bool) (*dto.ManageListResponse, error) {
	if err := checkScope(category, department); err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, apperrors.ErrConfirmationRequired
	}

	if err := s.contentRepo.Delete(ctx, category, id); err != nil {
		return nil, err
	}

	logger.Info().Str("category", string(category)).Str("id", id).Msg("Content deleted")
	return s.List(ctx, category, department)
}
