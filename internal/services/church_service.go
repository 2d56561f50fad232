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

// --- Custom Service Errors for Church ---
var (
	ErrChurchNotFound   = errors.New("church not found")
	ErrChurchNameExists = errors.New("a church with same name in the group already exists")
	ErrChurchInUse      = errors.New("church still has members or users and cannot be deleted")
)

// --- Church DTOs ---
type CreateChurchRequest struct {
	Name        string    `json:"name" binding:"required,notblank"`
	Location    string    `json:"location" binding:"required,notblank"`
	Pastor      string    `json:"pastor" binding:"required,notblank"`
	PhoneNumber string    `json:"phoneNumber" binding:"required,notblank"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	GroupID     uuid.UUID `json:"groupId" binding:"required"`
}

type UpdateChurchRequest struct {
	Name        *string    `json:"name" binding:"omitempty,notblank"`
	Location    *string    `json:"location" binding:"omitempty,notblank"`
	Pastor      *string    `json:"pastor" binding:"omitempty,notblank"`
	PhoneNumber *string    `json:"phoneNumber" binding:"omitempty,notblank"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	GroupID     *uuid.UUID `json:"groupId"`
}

// --- ChurchService Interface ---
type ChurchService interface {
	CreateChurch(ctx context.Context, req CreateChurchRequest) (*models.Church, error)
	GetChurchByID(ctx context.Context, id uuid.UUID) (*models.Church, error)
	GetChurches(ctx context.Context, caller models.AuthUser, page, limit int, search string) ([]models.Church, int, error)
	UpdateChurch(ctx context.Context, id uuid.UUID, req UpdateChurchRequest) (*models.Church, error)
	DeleteChurch(ctx context.Context, id uuid.UUID) error
}

type churchService struct {
	churchRepo repositories.ChurchRepository
	groupRepo  repositories.GroupRepository
}

// NewChurchService creates a new instance of ChurchService.
func NewChurchService(cr repositories.ChurchRepository, gr repositories.GroupRepository) ChurchService {
	return &churchService{churchRepo: cr, groupRepo: gr}
}

func (s *churchService) ensureGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.groupRepo.GetGroupByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to validate group: %w", err)
	}
	return nil
}

func (s *churchService) CreateChurch(ctx context.Context, req CreateChurchRequest) (*models.Church, error) {
	if err := s.ensureGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}
	church := &models.Church{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Pastor:      strings.TrimSpace(req.Pastor),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       req.Email,
		GroupID:     req.GroupID,
	}
	if err := s.churchRepo.CreateChurch(ctx, church); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrChurchNameExists, church.Name)
		}
		return nil, fmt.Errorf("failed to create church: %w", err)
	}
	return church, nil
}

func (s *churchService) GetChurchByID(ctx context.Context, id uuid.UUID) (*models.Church, error) {
	church, err := s.churchRepo.GetChurchByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChurchNotFound
		}
		return nil, fmt.Errorf("failed to get church: %w", err)
	}
	return church, nil
}

// GetChurches lists churches. Everyone below manager only sees the churches of their own group.
func (s *churchService) GetChurches(ctx context.Context, caller models.AuthUser, page, limit int, search string) ([]models.Church, int, error) {
	filter := repositories.ChurchListFilter{Search: strings.TrimSpace(search), Page: page, Limit: limit}
	if caller.Status != models.StatusManager {
		groupID := caller.GroupID
		filter.GroupID = &groupID
	}
	churches, total, err := s.churchRepo.GetChurches(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list churches: %w", err)
	}
	return churches, total, nil
}

func (s *churchService) UpdateChurch(ctx context.Context, id uuid.UUID, req UpdateChurchRequest) (*models.Church, error) {
	church, err := s.GetChurchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		church.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		church.Location = strings.TrimSpace(*req.Location)
	}
	if req.Pastor != nil {
		church.Pastor = strings.TrimSpace(*req.Pastor)
	}
	if req.PhoneNumber != nil {
		church.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Email != nil {
		church.Email = req.Email
	}
	if req.GroupID != nil && *req.GroupID != church.GroupID {
		if err := s.ensureGroup(ctx, *req.GroupID); err != nil {
			return nil, err
		}
		church.GroupID = *req.GroupID
	}

	if err := s.churchRepo.UpdateChurch(ctx, church); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrChurchNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrChurchNameExists, church.Name)
		}
		return nil, fmt.Errorf("failed to update church: %w", err)
	}
	return church, nil
}

func (s *churchService) DeleteChurch(ctx context.Context, id uuid.UUID) error {
	if err := s.churchRepo.DeleteChurch(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrChurchNotFound
		case errors.Is(err, repositories.ErrForeignKey):
			return ErrChurchInUse
		}
		return fmt.Errorf("failed to delete church: %w", err)
	}
	return nil
}
