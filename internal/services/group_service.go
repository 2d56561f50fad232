package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"church_backend/internal/models"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Group ---
var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupNameExists = errors.New("a group with this name already exists")
	ErrGroupInUse      = errors.New("group still has churches and cannot be deleted")
)

// --- Group DTOs ---
type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Location    string  `json:"location" binding:"required,notblank"`
	Pastor      string  `json:"pastor" binding:"required,notblank"`
	PhoneNumber string  `json:"phoneNumber" binding:"required,notblank"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank"`
	Location    *string `json:"location" binding:"omitempty,notblank"`
	Pastor      *string `json:"pastor" binding:"omitempty,notblank"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,notblank"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

// --- GroupService Interface ---
type GroupService interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.Group, error)
	GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetGroups(ctx context.Context, page, limit int, search string) ([]models.Group, int, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, req UpdateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

type groupService struct {
	groupRepo repositories.GroupRepository
}

// NewGroupService creates a new instance of GroupService.
func NewGroupService(repo repositories.GroupRepository) GroupService {
	return &groupService{groupRepo: repo}
}

func (s *groupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Pastor:      strings.TrimSpace(req.Pastor),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       req.Email,
	}
	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrGroupNameExists, group.Name)
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

func (s *groupService) GetGroups(ctx context.Context, page, limit int, search string) ([]models.Group, int, error) {
	groups, total, err := s.groupRepo.GetGroups(ctx, page, limit, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, total, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, id uuid.UUID, req UpdateGroupRequest) (*models.Group, error) {
	group, err := s.GetGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		group.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		group.Location = strings.TrimSpace(*req.Location)
	}
	if req.Pastor != nil {
		group.Pastor = strings.TrimSpace(*req.Pastor)
	}
	if req.PhoneNumber != nil {
		group.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Email != nil {
		group.Email = req.Email
	}

	if err := s.groupRepo.UpdateGroup(ctx, group); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrGroupNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrGroupNameExists, group.Name)
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if err := s.groupRepo.DeleteGroup(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrGroupNotFound
		case errors.Is(err, repositories.ErrForeignKey):
			return ErrGroupInUse
		}
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
