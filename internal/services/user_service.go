package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"church_backend/internal/models"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for User ---
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExists      = errors.New("username is already taken")
	ErrManagerNotAllowed   = errors.New("cannot register a user with status of manager")
	ErrMemberForUserAbsent = errors.New("member for user not found")
	ErrDeleteSelf          = errors.New("you cannot delete your own account")
)

// --- User DTOs ---
type CreateUserRequest struct {
	Username string    `json:"username" binding:"required,notblank"`
	Password string    `json:"password" binding:"required,min=8"`
	Status   string    `json:"status" binding:"required,status"`
	MemberID uuid.UUID `json:"memberId" binding:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank"`
	Status   *string `json:"status" binding:"omitempty,status"`
}

// --- UserService Interface ---
type UserService interface {
	CreateUser(ctx context.Context, caller models.AuthUser, req CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUsers(ctx context.Context, caller models.AuthUser, page, limit int) ([]models.User, int, error)
	UpdateUser(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, caller models.AuthUser, id uuid.UUID) error
}

type userService struct {
	userRepo   repositories.UserRepository
	memberRepo repositories.MemberRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(ur repositories.UserRepository, mr repositories.MemberRepository) UserService {
	return &userService{userRepo: ur, memberRepo: mr}
}

// CreateUser registers a login for an existing member. The user inherits the member's church and group.
func (s *userService) CreateUser(ctx context.Context, caller models.AuthUser, req CreateUserRequest) (*models.User, error) {
	status := models.Status(req.Status)
	if status == models.StatusManager && caller.Status != models.StatusManager {
		return nil, ErrManagerNotAllowed
	}

	member, err := s.memberRepo.GetMemberByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: member ID %s", ErrMemberForUserAbsent, req.MemberID)
		}
		return nil, fmt.Errorf("failed to validate member for user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Status:       status,
		MemberID:     member.ID,
		ChurchID:     member.ChurchID,
		GroupID:      member.GroupID,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ChurchName = member.ChurchName
	user.MemberFirstName, user.MemberLastName = &member.FirstName, &member.LastName
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsers lists users in the caller's part of the hierarchy.
func (s *userService) GetUsers(ctx context.Context, caller models.AuthUser, page, limit int) ([]models.User, int, error) {
	users, total, err := s.userRepo.GetUsers(ctx, callerScope(caller), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if status == models.StatusManager && caller.Status != models.StatusManager {
			return nil, ErrManagerNotAllowed
		}
		user.Status = status
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, user.Username)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, caller models.AuthUser, id uuid.UUID) error {
	if id == caller.ID {
		return ErrDeleteSelf
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
