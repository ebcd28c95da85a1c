package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/camnote/internal/app/content"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/helpers"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// MessageDepartmentRequired is shown on a view page when the viewer has no department
const MessageDepartmentRequired = "전공 정보가 없습니다. 먼저 로그인하고 전공 정보를 설정해주세요."

// ContentOptions configures presentation of content
type ContentOptions struct {
	Location              *time.Location
	PopularLimit          int
	NoticeMissingRedirect bool
}

// ContentService serves the read side of notices, events and benefits
type ContentService interface {
	List(ctx context.Context, category models.Category, viewer *identity.Session, sort content.SortState) (*dto.ContentListResponse, error)
	Detail(ctx context.Context, category models.Category, id string) (*dto.ContentItemResponse, error)
	Home(ctx context.Context, viewer *identity.Session) (*dto.HomeResponse, error)
}

type contentServiceImpl struct {
	contentRepo repositories.IContentRepository
	userRepo    repositories.IUserRepository
	opts        ContentOptions
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repositories.IContentRepository, userRepo repositories.IUserRepository, opts ContentOptions) ContentService {
	if opts.PopularLimit <= 0 {
		opts.PopularLimit = 5
	}
	return &contentServiceImpl{
		contentRepo: contentRepo,
		userRepo:    userRepo,
		opts:        opts,
	}
}

func sortStateDTO(s content.SortState) dto.SortStateDTO {
	return dto.SortStateDTO{Key: string(s.Key), Order: string(s.Order)}
}

// toItemResponse converts an item. withBody controls whether the content text is included.
func toItemResponse(item *models.ContentItem, loc *time.Location, withBody bool) dto.ContentItemResponse {
	resp := dto.ContentItemResponse{
		ID:          item.ID,
		Category:    string(item.Category),
		Title:       item.Title,
		Department:  item.Department,
		CreatedAt:   item.CreatedAt,
		DisplayTime: helpers.FormatDisplayTime(item.CreatedAtOrZero(), loc),
		ViewCount:   item.ViewCount,
	}
	if withBody {
		resp.Content = item.Content
	}
	if policy, ok := content.PolicyFor(item.Category); ok {
		resp.Path = policy.DetailPathFor(item.ID)
	}
	return resp
}

func (s *contentServiceImpl) toItemResponses(items []*models.ContentItem, withBody bool) []dto.ContentItemResponse {
	out := make([]dto.ContentItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item, s.opts.Location, withBody))
	}
	return out
}

// viewerDepartment resolves the department stored on the viewer's user record
func (s *contentServiceImpl) viewerDepartment(ctx context.Context, viewer *identity.Session) (string, error) {
	if viewer == nil {
		return "", nil
	}
	user, err := s.userRepo.GetByID(ctx, viewer.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("error loading viewer department: %w", err)
	}
	if !user.HasDepartment() {
		return "", nil
	}
	return *user.Department, nil
}

// List returns the viewer's department items of one category in the requested order
func (s *contentServiceImpl) List(ctx context.Context, category models.Category, viewer *identity.Session, sort content.SortState) (*dto.ContentListResponse, error) {
	policy, ok := content.PolicyFor(category)
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}

	resp := &dto.ContentListResponse{
		Category: string(category),
		Sort:     sortStateDTO(sort),
		Controls: dto.SortControls{
			Title: sortStateDTO(sort.Toggle(content.SortByTitle)),
			Date:  sortStateDTO(sort.Toggle(content.SortByDate)),
		},
		Items: []dto.ContentItemResponse{},
	}

	department, err := s.viewerDepartment(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if department == "" {
		resp.DepartmentRequired = true
		resp.Message = MessageDepartmentRequired
		return resp, nil
	}
	resp.Department = department

	var items []*models.ContentItem
	switch policy.Filter {
	case content.FilterInStore:
		items, err = s.contentRepo.FindByDepartment(ctx, category, department)
	default:
		items, err = s.contentRepo.FindAll(ctx, category)
		items = content.FilterByDepartment(items, department)
	}
	if err != nil {
		logger.Error().Err(err).Str("category", string(category)).Msg("Failed to load content list")
		return nil, fmt.Errorf("error listing %s: %w", category, err)
	}

	content.SortItems(items, sort)
	resp.Items = s.toItemResponses(items, false)
	return resp, nil
}

// Detail returns one item and counts the view
func (s *contentServiceImpl) Detail(ctx context.Context, category models.Category, id string) (*dto.ContentItemResponse, error) {
	item, err := s.contentRepo.FindByID(ctx, category, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrContentNotFound) {
			return nil, s.notFound(category)
		}
		return nil, fmt.Errorf("error loading %s item: %w", category, err)
	}

	count, err := s.contentRepo.IncrementViewCount(ctx, category, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrContentNotFound) {
			return nil, s.notFound(category)
		}
		return nil, fmt.Errorf("error counting view: %w", err)
	}
	item.ViewCount = count

	resp := toItemResponse(item, s.opts.Location, true)
	return &resp, nil
}

func (s *contentServiceImpl) notFound(category models.Category) error {
	if category == models.CategoryNotices && s.opts.NoticeMissingRedirect {
		return apperrors.NewCustomError(apperrors.ErrContentNotFound, "notice not found").
			WithDetails(map[string]interface{}{"redirect": navigation.PathNotices})
	}
	return apperrors.ErrContentNotFound
}

// Home returns the most viewed items of the viewer's department. Without a
// department the ranking spans all departments.
func (s *contentServiceImpl) Home(ctx context.Context, viewer *identity.Session) (*dto.HomeResponse, error) {
	resp := &dto.HomeResponse{
		Notices:  []dto.ContentItemResponse{},
		Events:   []dto.ContentItemResponse{},
		Benefits: []dto.ContentItemResponse{},
	}

	department, err := s.viewerDepartment(ctx, viewer)
	if err != nil {
		return nil, err
	}
	resp.Department = department

	for _, category := range models.Categories {
		items, err := s.contentRepo.TopByViewCount(ctx, category, department, s.opts.PopularLimit)
		if err != nil {
			return nil, fmt.Errorf("error loading popular %s: %w", category, err)
		}
		converted := s.toItemResponses(items, false)
		switch category {
		case models.CategoryNotices:
			resp.Notices = converted
		case models.CategoryEvents:
			resp.Events = converted
		case models.CategoryBenefits:
			resp.Benefits = converted
		}
	}
	return resp, nil
}
