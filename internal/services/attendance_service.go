package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/repositories"
	"church_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrAttendanceExists     = errors.New("attendance with this date exists")
	ErrAttendanceValidation = errors.New("attendance data validation error")
	ErrChurchOutOfScope     = errors.New("church is outside your scope")
)

// AttendanceCounts are the numeric fields of a service. Absent values are NULL on create.
type AttendanceCounts struct {
	AdultMale      *int             `json:"adultMale" binding:"omitempty,min=0"`
	AdultFemale    *int             `json:"adultFemale" binding:"omitempty,min=0"`
	YouthMale      *int             `json:"youthMale" binding:"omitempty,min=0"`
	YouthFemale    *int             `json:"youthFemale" binding:"omitempty,min=0"`
	ChildMale      *int             `json:"childMale" binding:"omitempty,min=0"`
	ChildFemale    *int             `json:"childFemale" binding:"omitempty,min=0"`
	NewcomerMale   *int             `json:"newcomerMale" binding:"omitempty,min=0"`
	NewcomerFemale *int             `json:"newcomerFemale" binding:"omitempty,min=0"`
	FirstOffering  *decimal.Decimal `json:"firstOffering"`
	SecondOffering *decimal.Decimal `json:"secondOffering"`
}

// --- Attendance DTOs ---
type CreateAttendanceRequest struct {
	Date     string     `json:"date" binding:"required,datetime=2006-01-02"`
	ChurchID *uuid.UUID `json:"churchId"`
	Reason   *string    `json:"reason"`
	AttendanceCounts
}

type UpdateAttendanceRequest struct {
	Date   *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Reason *string `json:"reason"`
	AttendanceCounts
}

// AttendanceListQuery selects the records of one church in one month.
type AttendanceListQuery struct {
	ChurchID string `form:"churchId" binding:"omitempty,uuid"`
	Month    string `form:"month" binding:"required,yearmonth"`
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	CreateAttendance(ctx context.Context, caller models.AuthUser, req CreateAttendanceRequest) (*models.AttendanceRecord, error)
	GetMonthlyAttendance(ctx context.Context, caller models.AuthUser, q AttendanceListQuery) ([]models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateAttendanceRequest) (*models.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, caller models.AuthUser, id uuid.UUID) error
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	churchRepo     repositories.ChurchRepository
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(ar repositories.AttendanceRepository, cr repositories.ChurchRepository) AttendanceService {
	return &attendanceService{attendanceRepo: ar, churchRepo: cr}
}

// scopedChurch resolves the church a request targets: the given id, or the caller's own church.
func scopedChurch(ctx context.Context, churches repositories.ChurchRepository, caller models.AuthUser, id *uuid.UUID) (*models.Church, error) {
	churchID := caller.ChurchID
	if id != nil && *id != uuid.Nil {
		churchID = *id
	}
	if churchID == uuid.Nil {
		return nil, ErrChurchRequired
	}
	church, err := churches.GetChurchByID(ctx, churchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChurchNotFound
		}
		return nil, fmt.Errorf("failed to load church: %w", err)
	}
	if !inScope(caller, church.ID, church.GroupID) {
		return nil, ErrChurchOutOfScope
	}
	return church, nil
}

func parseDay(value string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, please use YYYY-MM-DD", ErrAttendanceValidation, value)
	}
	return d, nil
}

func nonNegative(name string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative", ErrAttendanceValidation, name)
	}
	return nil
}

func (c AttendanceCounts) validate() error {
	if err := nonNegative("firstOffering", c.FirstOffering); err != nil {
		return err
	}
	return nonNegative("secondOffering", c.SecondOffering)
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*v)
}

// applyTo copies the counts onto rec. With zeroFill, absent values become 0 instead of NULL.
func (c AttendanceCounts) applyTo(rec *models.AttendanceRecord, zeroFill bool) {
	pick := func(v *int) *int {
		if v == nil && zeroFill {
			zero := 0
			return &zero
		}
		return v
	}
	money := func(v *decimal.Decimal) decimal.NullDecimal {
		if v == nil && zeroFill {
			return decimal.NewNullDecimal(decimal.Zero)
		}
		return nullDecimal(v)
	}
	rec.AdultMale, rec.AdultFemale = pick(c.AdultMale), pick(c.AdultFemale)
	rec.YouthMale, rec.YouthFemale = pick(c.YouthMale), pick(c.YouthFemale)
	rec.ChildMale, rec.ChildFemale = pick(c.ChildMale), pick(c.ChildFemale)
	rec.NewcomerMale, rec.NewcomerFemale = pick(c.NewcomerMale), pick(c.NewcomerFemale)
	rec.FirstOffering, rec.SecondOffering = money(c.FirstOffering), money(c.SecondOffering)
}

// reasonOf returns the trimmed reason, or nil when none was given.
func reasonOf(v *string) *string {
	if v == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*v))
}

// clearCounts turns rec into a no-service record.
func clearCounts(rec *models.AttendanceRecord, reason string) {
	AttendanceCounts{}.applyTo(rec, false)
	rec.Reason = &reason
}

func (s *attendanceService) CreateAttendance(ctx context.Context, caller models.AuthUser, req CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	church, err := scopedChurch(ctx, s.churchRepo, caller, req.ChurchID)
	if err != nil {
		return nil, err
	}

	rec := &models.AttendanceRecord{Date: date, ChurchID: church.ID, GroupID: church.GroupID}
	if reason := reasonOf(req.Reason); reason != nil {
		clearCounts(rec, *reason)
	} else {
		req.applyTo(rec, false)
	}

	if err := s.attendanceRepo.CreateAttendance(ctx, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrAttendanceExists, req.Date)
		}
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return rec, nil
}

// GetMonthlyAttendance lists the records of one church in a month, oldest first.
func (s *attendanceService) GetMonthlyAttendance(ctx context.Context, caller models.AuthUser, q AttendanceListQuery) ([]models.AttendanceRecord, error) {
	year, month, err := reports.ParseMonth(q.Month)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(q.ChurchID)
	if err != nil {
		id = uuid.Nil
	}
	church, err := scopedChurch(ctx, s.churchRepo, caller, &id)
	if err != nil {
		return nil, err
	}

	from, to := reports.MonthRange(year, month)
	records, err := s.attendanceRepo.FindAttendance(ctx, models.RecordFilter{
		From:  from,
		To:    to,
		Scope: models.ScopeFilter{ChurchID: &church.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) loadInScope(ctx context.Context, caller models.AuthUser, id uuid.UUID) (*models.AttendanceRecord, error) {
	rec, err := s.attendanceRepo.GetAttendanceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	if !inScope(caller, rec.ChurchID, rec.GroupID) {
		return nil, ErrAttendanceNotFound
	}
	return rec, nil
}

// UpdateAttendance switches a record between its two shapes. A non-blank reason
// clears every count; otherwise the reason is cleared and absent counts become 0.
func (s *attendanceService) UpdateAttendance(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	rec, err := s.loadInScope(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Date != nil {
		if rec.Date, err = parseDay(*req.Date); err != nil {
			return nil, err
		}
	}

	if reason := reasonOf(req.Reason); reason != nil {
		clearCounts(rec, *reason)
	} else {
		rec.Reason = nil
		req.applyTo(rec, true)
	}

	if err := s.attendanceRepo.UpdateAttendance(ctx, rec); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrAttendanceNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrAttendanceExists, rec.Date.Format(models.DateLayout))
		}
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	return rec, nil
}

func (s *attendanceService) DeleteAttendance(ctx context.Context, caller models.AuthUser, id uuid.UUID) error {
	if _, err := s.loadInScope(ctx, caller, id); err != nil {
		return err
	}
	if err := s.attendanceRepo.DeleteAttendance(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}
