package services

import (
	"context"
	"fmt"

	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/helpers"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// UserService is the administrator's view of user records
type UserService interface {
	ListUsers(ctx context.Context, page, size int) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, id string, confirmed bool) error
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Department:  helpers.StringValue(u.Department),
		CreatedAt:   u.CreatedAt,
	}
}

// ListUsers returns one page of user records, newest first
func (s *userServiceImpl) ListUsers(ctx context.Context, page, size int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return &dto.UserListResponse{
		Users:      out,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// DeleteUser removes a user record once confirmed. The account stays.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("userID", id).Msg("User record deleted")
	return nil
}
