package services

import (
	"context"
	"errors"
	"fmt"

	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
)

const DefaultSpecialServicePageSize = 6

// --- Custom Service Errors for Special Services ---
var (
	ErrSpecialServiceNotFound = errors.New("service record not found")
	ErrSpecialServiceExists   = errors.New("this category has already been recorded for the church on this date")
	ErrSpecialServiceScope    = errors.New("a church or group identifier is required")
)

// --- Special Service DTOs ---
type CreateSpecialServiceRequest struct {
	Date     string     `json:"date" binding:"required,datetime=2006-01-02"`
	Category string     `json:"category" binding:"required,category"`
	Adults   int        `json:"adults" binding:"min=0"`
	Youths   int        `json:"youths" binding:"min=0"`
	Children int        `json:"children" binding:"min=0"`
	ChurchID *uuid.UUID `json:"churchId"`
}

type UpdateSpecialServiceRequest struct {
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category *string `json:"category" binding:"omitempty,category"`
	Adults   *int    `json:"adults" binding:"omitempty,min=0"`
	Youths   *int    `json:"youths" binding:"omitempty,min=0"`
	Children *int    `json:"children" binding:"omitempty,min=0"`
}

// SpecialServiceListQuery pages through one category in one month.
type SpecialServiceListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Month    string `form:"month" binding:"required,yearmonth"`
	Category string `form:"category" binding:"required,category"`
	ChurchID string `form:"churchId" binding:"omitempty,uuid"`
	GroupID  string `form:"groupId" binding:"omitempty,uuid"`
}

// --- SpecialServiceService Interface ---
type SpecialServiceService interface {
	CreateSpecialService(ctx context.Context, caller models.AuthUser, req CreateSpecialServiceRequest) (*models.SpecialServiceRecord, error)
	GetSpecialServices(ctx context.Context, caller models.AuthUser, q SpecialServiceListQuery) ([]models.SpecialServiceRecord, int, error)
	UpdateSpecialService(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateSpecialServiceRequest) (*models.SpecialServiceRecord, error)
	DeleteSpecialService(ctx context.Context, caller models.AuthUser, id uuid.UUID) error
}

type specialServiceService struct {
	specialRepo repositories.SpecialServiceRepository
	churchRepo  repositories.ChurchRepository
}

// NewSpecialServiceService creates a new instance of SpecialServiceService.
func NewSpecialServiceService(sr repositories.SpecialServiceRepository, cr repositories.ChurchRepository) SpecialServiceService {
	return &specialServiceService{specialRepo: sr, churchRepo: cr}
}

func (s *specialServiceService) CreateSpecialService(ctx context.Context, caller models.AuthUser, req CreateSpecialServiceRequest) (*models.SpecialServiceRecord, error) {
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	church, err := scopedChurch(ctx, s.churchRepo, caller, req.ChurchID)
	if err != nil {
		return nil, err
	}

	rec := &models.SpecialServiceRecord{
		Date:     date,
		Category: models.SpecialServiceCategory(req.Category),
		Adults:   req.Adults,
		Youths:   req.Youths,
		Children: req.Children,
		ChurchID: church.ID,
		GroupID:  church.GroupID,
	}
	if err := s.specialRepo.CreateSpecialService(ctx, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s on %s", ErrSpecialServiceExists, req.Category, req.Date)
		}
		return nil, fmt.Errorf("failed to create special service: %w", err)
	}
	rec.ChurchName, rec.ChurchLocation = &church.Name, &church.Location
	return rec, nil
}

// listScope decides which records a caller may page through. Church-level callers
// must name a church, everyone below manager must name a church or a group.
func (s *specialServiceService) listScope(ctx context.Context, caller models.AuthUser, q SpecialServiceListQuery) (models.ScopeFilter, error) {
	if caller.Status.IsChurchLevel() && q.ChurchID == "" {
		return models.ScopeFilter{}, fmt.Errorf("%w: church identifier is required", ErrSpecialServiceScope)
	}
	if caller.Status != models.StatusManager && q.ChurchID == "" && q.GroupID == "" {
		return models.ScopeFilter{}, ErrSpecialServiceScope
	}

	scope := requestScope(q.ChurchID, q.GroupID)
	switch {
	case scope.MatchNone || caller.Status == models.StatusManager:
		return scope, nil
	case scope.ChurchID != nil:
		if _, err := scopedChurch(ctx, s.churchRepo, caller, scope.ChurchID); err != nil {
			return models.ScopeFilter{}, err
		}
	case scope.GroupID != nil && *scope.GroupID != caller.GroupID:
		return models.ScopeFilter{}, ErrChurchOutOfScope
	}
	return scope, nil
}

func (s *specialServiceService) GetSpecialServices(ctx context.Context, caller models.AuthUser, q SpecialServiceListQuery) ([]models.SpecialServiceRecord, int, error) {
	year, month, err := reports.ParseMonth(q.Month)
	if err != nil {
		return nil, 0, err
	}
	scope, err := s.listScope(ctx, caller, q)
	if err != nil {
		return nil, 0, err
	}

	from, to := reports.MonthRange(year, month)
	records, total, err := s.specialRepo.GetSpecialServices(ctx, repositories.SpecialServiceListFilter{
		Scope:    scope,
		From:     from,
		To:       to,
		Category: models.SpecialServiceCategory(q.Category),
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list special services: %w", err)
	}
	return records, total, nil
}

func (s *specialServiceService) loadInScope(ctx context.Context, caller models.AuthUser, id uuid.UUID) (*models.SpecialServiceRecord, error) {
	rec, err := s.specialRepo.GetSpecialServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSpecialServiceNotFound
		}
		return nil, fmt.Errorf("failed to get special service: %w", err)
	}
	if !inScope(caller, rec.ChurchID, rec.GroupID) {
		return nil, ErrSpecialServiceNotFound
	}
	return rec, nil
}

func (s *specialServiceService) UpdateSpecialService(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateSpecialServiceRequest) (*models.SpecialServiceRecord, error) {
	rec, err := s.loadInScope(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Date != nil {
		if rec.Date, err = parseDay(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		rec.Category = models.SpecialServiceCategory(*req.Category)
	}
	if req.Adults != nil {
		rec.Adults = *req.Adults
	}
	if req.Youths != nil {
		rec.Youths = *req.Youths
	}
	if req.Children != nil {
		rec.Children = *req.Children
	}

	if err := s.specialRepo.UpdateSpecialService(ctx, rec); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrSpecialServiceNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s on %s", ErrSpecialServiceExists, rec.Category, rec.Date.Format(models.DateLayout))
		}
		return nil, fmt.Errorf("failed to update special service: %w", err)
	}
	return rec, nil
}

func (s *specialServiceService) DeleteSpecialService(ctx context.Context, caller models.AuthUser, id uuid.UUID) error {
	if _, err := s.loadInScope(ctx, caller, id); err != nil {
		return err
	}
	if err := s.specialRepo.DeleteSpecialService(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSpecialServiceNotFound
		}
		return fmt.Errorf("failed to delete special service: %w", err)
	}
	return nil
}
