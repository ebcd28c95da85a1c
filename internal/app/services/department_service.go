package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/pkg/validation"
)

// DepartmentService handles department selection for users and the administrator
type DepartmentService interface {
	ListDepartments() *dto.DepartmentListResponse

	// User flow
	GetUserDepartment(ctx context.Context, userID string) (*dto.DepartmentResponse, error)
	SetUserDepartment(ctx context.Context, session *identity.Session, name string) (*dto.DepartmentResponse, error)
	MajorCheck(ctx context.Context, session *identity.Session) (*dto.RedirectResponse, error)

	// Admin flow, keyed by session
	SelectAdminDepartment(ctx context.Context, sessionID, name string) (*dto.DepartmentResponse, error)
	GetAdminDepartment(ctx context.Context, sessionID string) (*dto.DepartmentResponse, error)
	ClearAdminDepartment(ctx context.Context, sessionID string) error
	Dashboard(ctx context.Context, sessionID string) (*dto.AdminDashboardResponse, error)
}

type departmentServiceImpl struct {
	departments validation.DepartmentList
	userRepo    repositories.IUserRepository
	sessionRepo repositories.ISessionRepository
	now         func() time.Time
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departments []string, userRepo repositories.IUserRepository, sessionRepo repositories.ISessionRepository) DepartmentService {
	return &departmentServiceImpl{
		departments: validation.DepartmentList(departments),
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// validateDepartment trims name and checks it against the known list
func (s *departmentServiceImpl) validateDepartment(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.ErrDepartmentRequired
	}
	if !s.departments.Contains(name) {
		return "", apperrors.ErrUnknownDepartment
	}
	return name, nil
}

// ListDepartments returns the known department names
func (s *departmentServiceImpl) ListDepartments() *dto.DepartmentListResponse {
	return &dto.DepartmentListResponse{Departments: s.departments.Names()}
}

// GetUserDepartment returns the stored department, "" when none is set
func (s *departmentServiceImpl) GetUserDepartment(ctx context.Context, userID string) (*dto.DepartmentResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return &dto.DepartmentResponse{}, nil
		}
		return nil, fmt.Errorf("error getting user department: %w", err)
	}
	if !user.HasDepartment() {
		return &dto.DepartmentResponse{}, nil
	}
	return &dto.DepartmentResponse{Department: *user.Department}, nil
}

// SetUserDepartment stores a validated department on the user record
func (s *departmentServiceImpl) SetUserDepartment(ctx context.Context, session *identity.Session, name string) (*dto.DepartmentResponse, error) {
	department, err := s.validateDepartment(name)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error loading user: %w", err)
		}
		user = &models.User{
			ID:          session.AccountID,
			Email:       session.Email,
			DisplayName: session.DisplayName,
			CreatedAt:   s.now(),
		}
	}

	if err := s.userRepo.SetDepartment(ctx, user, department); err != nil {
		return nil, err
	}

	logger.Info().Str("userID", session.AccountID).Str("department", department).Msg("User department saved")
	return &dto.DepartmentResponse{Department: department, Redirect: navigation.PathHome}, nil
}

// MajorCheck decides where a freshly signed-in user goes next
func (s *departmentServiceImpl) MajorCheck(ctx context.Context, session *identity.Session) (*dto.RedirectResponse, error) {
	if session == nil {
		return &dto.RedirectResponse{Redirect: navigation.PathLogin}, nil
	}

	user, err := s.userRepo.GetByID(ctx, session.AccountID)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error checking user department: %w", err)
	}
	if err == nil && user.HasDepartment() {
		return &dto.RedirectResponse{Redirect: navigation.PathHome}, nil
	}
	return &dto.RedirectResponse{Redirect: navigation.PathMajor}, nil
}

// SelectAdminDepartment stores the administrator's selection on the session
func (s *departmentServiceImpl) SelectAdminDepartment(ctx context.Context, sessionID, name string) (*dto.DepartmentResponse, error) {
	department, err := s.validateDepartment(name)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SetAdminDepartment(ctx, sessionID, &department); err != nil {
		return nil, err
	}

	return &dto.DepartmentResponse{
		Department: department,
		Redirect:   navigation.AdminDashboardPath(department),
	}, nil
}

// GetAdminDepartment reads the session's selection
func (s *departmentServiceImpl) GetAdminDepartment(ctx context.Context, sessionID string) (*dto.DepartmentResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.AdminDepartment == nil {
		return &dto.DepartmentResponse{}, nil
	}
	return &dto.DepartmentResponse{Department: *session.AdminDepartment}, nil
}

// ClearAdminDepartment drops the session's selection
func (s *departmentServiceImpl) ClearAdminDepartment(ctx context.Context, sessionID string) error {
	return s.sessionRepo.SetAdminDepartment(ctx, sessionID, nil)
}

var dashboardEntries = []struct {
	label string
	path  string
}{
	{label: "공지사항 관리", path: navigation.PathAdminNotices},
	{label: "행사/소식 관리", path: navigation.PathAdminEvents},
	{label: "제휴 혜택 관리", path: navigation.PathAdminBenefits},
	{label: "피드백 관리", path: navigation.PathAdminFeedbacks},
	{label: "사용자 관리", path: navigation.PathAdminUsers},
}

// Dashboard returns the management links for the selected department
func (s *departmentServiceImpl) Dashboard(ctx context.Context, sessionID string) (*dto.AdminDashboardResponse, error) {
	selection, err := s.GetAdminDepartment(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if selection.Department == "" {
		return &dto.AdminDashboardResponse{Redirect: navigation.PathAdminSelectMajor}, nil
	}

	query := "?major=" + url.QueryEscape(selection.Department)
	links := make([]dto.DashboardLink, 0, len(dashboardEntries))
	for _, e := range dashboardEntries {
		path := e.path
		if path != navigation.PathAdminFeedbacks && path != navigation.PathAdminUsers {
			path += query
		}
		links = append(links, dto.DashboardLink{Label: e.label, Path: path})
	}

	return &dto.AdminDashboardResponse{Department: selection.Department, Links: links}, nil
}
