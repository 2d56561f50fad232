package services

import (
	"context"
	"errors"
	"fmt"

	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/repositories"
	"church_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidReportQuery = errors.New("invalid report query")

// MonthlyReportQuery selects one month for a church or a group.
type MonthlyReportQuery struct {
	Month    string `form:"month" json:"month" binding:"required,yearmonth"`
	ChurchID string `form:"churchId" json:"churchId" binding:"required_without=GroupID,excluded_with=GroupID,omitempty,uuid"`
	GroupID  string `form:"groupId" json:"groupId" binding:"omitempty,uuid"`
}

// GeneralReportQuery selects a range of whole months for a church or a group.
type GeneralReportQuery struct {
	StartMonth string `form:"startMonth" json:"startMonth" binding:"required,yearmonth"`
	EndMonth   string `form:"endMonth" json:"endMonth" binding:"required,yearmonth,monthafter=StartMonth"`
	ChurchID   string `form:"churchId" json:"churchId" binding:"required_without=GroupID,excluded_with=GroupID,omitempty,uuid"`
	GroupID    string `form:"groupId" json:"groupId" binding:"omitempty,uuid"`
}

// RecordStore is the read side of the attendance and special service tables.
type RecordStore interface {
	FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error)
	FindSpecialServices(ctx context.Context, filter models.RecordFilter) ([]models.SpecialServiceRecord, error)
}

// IdentityResolver looks up the display names shown in report headers.
type IdentityResolver interface {
	GroupName(ctx context.Context, id uuid.UUID) (string, error)
	ChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error)
}

type recordStore struct {
	attendance repositories.AttendanceRepository
	special    repositories.SpecialServiceRepository
}

// NewRecordStore joins the two record repositories behind RecordStore.
func NewRecordStore(ar repositories.AttendanceRepository, sr repositories.SpecialServiceRepository) RecordStore {
	return &recordStore{attendance: ar, special: sr}
}

func (s *recordStore) FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	return s.attendance.FindAttendance(ctx, filter)
}

func (s *recordStore) FindSpecialServices(ctx context.Context, filter models.RecordFilter) ([]models.SpecialServiceRecord, error) {
	return s.special.FindSpecialServices(ctx, filter)
}

type identityResolver struct {
	groups   repositories.GroupRepository
	churches repositories.ChurchRepository
}

// NewIdentityResolver resolves names through the group and church repositories.
func NewIdentityResolver(gr repositories.GroupRepository, cr repositories.ChurchRepository) IdentityResolver {
	return &identityResolver{groups: gr, churches: cr}
}

func (r *identityResolver) GroupName(ctx context.Context, id uuid.UUID) (string, error) {
	return r.groups.GetGroupName(ctx, id)
}

func (r *identityResolver) ChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error) {
	return r.churches.GetChurchIdentity(ctx, id)
}

// ReportService builds the monthly and general attendance reports.
type ReportService interface {
	MonthlyReport(ctx context.Context, q MonthlyReportQuery) (*models.MonthlyReport, error)
	GeneralReport(ctx context.Context, q GeneralReportQuery) (*models.GeneralReport, error)
}

type reportService struct {
	records    RecordStore
	identities IdentityResolver
}

// NewReportService creates a new instance of ReportService.
func NewReportService(records RecordStore, identities IdentityResolver) ReportService {
	return &reportService{records: records, identities: identities}
}

// reportInput is everything a builder needs, fetched concurrently.
type reportInput struct {
	attendance []models.AttendanceRecord
	special    []models.SpecialServiceRecord
	groupName  *string
	churchName *string
}

func (s *reportService) MonthlyReport(ctx context.Context, q MonthlyReportQuery) (*models.MonthlyReport, error) {
	year, month, err := reports.ParseMonth(q.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReportQuery, err)
	}
	from, to := reports.MonthRange(year, month)

	in, err := s.load(ctx, models.RecordFilter{From: from, To: to, Scope: requestScope(q.ChurchID, q.GroupID)})
	if err != nil {
		return nil, fmt.Errorf("building monthly report for %s: %w", q.Month, err)
	}

	report := reports.BuildMonthly(year, month, in.attendance, in.special)
	report.GroupName = in.groupName
	report.ChurchName = in.churchName
	return report, nil
}

func (s *reportService) GeneralReport(ctx context.Context, q GeneralReportQuery) (*models.GeneralReport, error) {
	from, to, err := reports.PeriodRange(q.StartMonth, q.EndMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReportQuery, err)
	}
	if q.EndMonth <= q.StartMonth {
		return nil, fmt.Errorf("%w: endMonth must be after startMonth", ErrInvalidReportQuery)
	}

	in, err := s.load(ctx, models.RecordFilter{From: from, To: to, Scope: requestScope(q.ChurchID, q.GroupID)})
	if err != nil {
		return nil, fmt.Errorf("building general report for %s..%s: %w", q.StartMonth, q.EndMonth, err)
	}

	report := reports.BuildGeneral(in.attendance, in.special)
	report.GroupName = in.groupName
	report.ChurchName = in.churchName
	return report, nil
}

func (s *reportService) load(ctx context.Context, filter models.RecordFilter) (*reportInput, error) {
	in := &reportInput{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.records.FindAttendance(gctx, filter)
		if err != nil {
			return err
		}
		in.attendance = records
		return nil
	})
	g.Go(func() error {
		records, err := s.records.FindSpecialServices(gctx, filter)
		if err != nil {
			return err
		}
		in.special = records
		return nil
	})
	g.Go(func() error {
		in.groupName, in.churchName = s.resolveIdentity(gctx, filter.Scope)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// resolveIdentity never fails: a lookup miss leaves the name nil.
func (s *reportService) resolveIdentity(ctx context.Context, scope models.ScopeFilter) (groupName, churchName *string) {
	switch {
	case scope.MatchNone:
		return nil, nil
	case scope.ChurchID != nil:
		identity, err := s.identities.ChurchIdentity(ctx, *scope.ChurchID)
		if err != nil {
			utils.LogWarn(err, "ReportService: could not resolve church name", map[string]interface{}{"church_id": scope.ChurchID.String()})
			return nil, nil
		}
		churchName = &identity.Name
		if identity.GroupName != "" {
			groupName = &identity.GroupName
		}
		return groupName, churchName
	case scope.GroupID != nil:
		name, err := s.identities.GroupName(ctx, *scope.GroupID)
		if err != nil {
			utils.LogWarn(err, "ReportService: could not resolve group name", map[string]interface{}{"group_id": scope.GroupID.String()})
			return nil, nil
		}
		return &name, nil
	}
	return nil, nil
}
