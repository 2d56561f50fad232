package services

import (
	"context"
	"fmt"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	TargetGroup  = "group"
	TargetChurch = "church"

	trendMonths = 6
)

// DashboardQuery names whose dashboard is built. Target and ID are ignored for managers.
type DashboardQuery struct {
	Status string `form:"status" json:"status" binding:"required,status"`
	Target string `form:"target" json:"target" binding:"required_unless=Status manager,excluded_if=Status manager,omitempty,target"`
	ID     string `form:"id" json:"id" binding:"required_unless=Status manager,excluded_if=Status manager"`
}

// DashboardStore is the set of aggregate queries the dashboard reads.
type DashboardStore interface {
	CountGroups(ctx context.Context) (int, error)
	CountChurches(ctx context.Context, scope models.ScopeFilter) (int, error)
	CountUsers(ctx context.Context, scope models.ScopeFilter) (int, error)
	CountMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) (int, error)
	CountByDemographic(ctx context.Context, scope models.ScopeFilter) ([]repositories.DemographicCount, error)
	SumPeriod(ctx context.Context, scope models.ScopeFilter, from, to time.Time) (*models.PeriodTotals, error)
	MonthlyTotals(ctx context.Context, scope models.ScopeFilter, from, to time.Time) ([]models.MonthlyAttendanceTotals, error)
}

type dashboardStore struct {
	repositories.GroupRepository
	repositories.ChurchRepository
	repositories.UserRepository
	repositories.MemberRepository
	repositories.AttendanceRepository
}

// NewDashboardStore serves DashboardStore from the entity repositories.
func NewDashboardStore(
	gr repositories.GroupRepository,
	cr repositories.ChurchRepository,
	ur repositories.UserRepository,
	mr repositories.MemberRepository,
	ar repositories.AttendanceRepository,
) DashboardStore {
	return &dashboardStore{gr, cr, ur, mr, ar}
}

// demographicSlices fixes the order, label and chart color of each pie wedge.
var demographicSlices = []struct {
	name     string
	category string
	gender   string
	color    string
}{
	{"Adult Males", models.CategoryAdult, models.GenderMale, "#2e6da4"},
	{"Adult Females", models.CategoryAdult, models.GenderFemale, "#4a7c59"},
	{"Youth Males", models.CategoryYouth, models.GenderMale, "#c47c2b"},
	{"Youth Females", models.CategoryYouth, models.GenderFemale, "#b24b5a"},
	{"Children Males", models.CategoryChildren, models.GenderMale, "#6b4fa0"},
	{"Children Females", models.CategoryChildren, models.GenderFemale, "#2e8b80"},
}

// DashboardService assembles the role-dependent dashboard.
type DashboardService interface {
	Stats(ctx context.Context, q DashboardQuery) (*models.DashboardStats, error)
}

type dashboardService struct {
	store DashboardStore
	now   func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(store DashboardStore) DashboardService {
	return &dashboardService{store: store, now: time.Now}
}

// dashboardScope maps the query onto a filter. Managers see everything.
func dashboardScope(status models.Status, target, id string) models.ScopeFilter {
	if status == models.StatusManager {
		return models.ScopeFilter{}
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.ScopeFilter{MatchNone: true}
	}
	switch target {
	case TargetGroup:
		return models.ScopeFilter{GroupID: &parsed}
	case TargetChurch:
		return models.ScopeFilter{ChurchID: &parsed}
	}
	return models.ScopeFilter{MatchNone: true}
}

func (s *dashboardService) Stats(ctx context.Context, q DashboardQuery) (*models.DashboardStats, error) {
	status := models.Status(q.Status)
	scope := dashboardScope(status, q.Target, q.ID)
	now := s.now().UTC()

	monthStart, monthEnd := reports.MonthRange(now.Year(), now.Month())
	windowStart := monthStart.AddDate(0, -(trendMonths - 1), 0)

	var (
		stats        models.KPIStats
		monthly      []models.MonthlyAttendanceTotals
		demographics []repositories.DemographicCount
	)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst **int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = &n
			return nil
		})
	}

	if status == models.StatusManager {
		count(&stats.TotalGroups, s.store.CountGroups)
	}
	if status == models.StatusManager || status.IsGroupLevel() {
		count(&stats.TotalChurches, func(ctx context.Context) (int, error) { return s.store.CountChurches(ctx, scope) })
		count(&stats.TotalUsers, func(ctx context.Context) (int, error) { return s.store.CountUsers(ctx, scope) })
	}
	count(&stats.TotalMembers, func(ctx context.Context) (int, error) {
		return s.store.CountMembers(ctx, scope, models.MemberCriteria{})
	})
	if status != models.StatusManager {
		count(&stats.TotalWorkers, func(ctx context.Context) (int, error) {
			return s.store.CountMembers(ctx, scope, models.MemberCriteria{MemberStatus: models.MemberStatusWorker})
		})
	}
	if status.IsChurchLevel() {
		g.Go(func() error {
			totals, err := s.store.SumPeriod(gctx, scope, monthStart, monthEnd)
			if err != nil {
				return err
			}
			stats.NewComers = &totals.Newcomers
			stats.MonthlyOffering = &totals.Offering
			return nil
		})
	}
	g.Go(func() error {
		var err error
		monthly, err = s.store.MonthlyTotals(gctx, scope, windowStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		demographics, err = s.store.CountByDemographic(gctx, scope)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building dashboard for %s: %w", status, err)
	}

	attendance, offerings := trend(windowStart, monthly)
	return &models.DashboardStats{
		Stats:        stats,
		Attendance:   attendance,
		Demographics: pieSlices(demographics),
		Offerings:    offerings,
		PledgeData:   []models.PledgePoint{},
	}, nil
}

// trend lays the monthly totals onto a fixed window of months, zero-filling the gaps.
func trend(windowStart time.Time, totals []models.MonthlyAttendanceTotals) ([]models.AttendanceTrendPoint, []models.OfferingTrendPoint) {
	byMonth := make(map[string]models.MonthlyAttendanceTotals, len(totals))
	for _, t := range totals {
		byMonth[t.Month.Format(reports.MonthLayout)] = t
	}

	attendance := make([]models.AttendanceTrendPoint, 0, trendMonths)
	offerings := make([]models.OfferingTrendPoint, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := windowStart.AddDate(0, i, 0)
		label := month.Format("Jan")
		t, ok := byMonth[month.Format(reports.MonthLayout)]
		if !ok {
			t = models.MonthlyAttendanceTotals{FirstOffering: decimal.Zero, SecondOffering: decimal.Zero}
		}
		attendance = append(attendance, models.AttendanceTrendPoint{
			Month: label, Adults: t.Adults, Youths: t.Youths, Children: t.Children,
		})
		offerings = append(offerings, models.OfferingTrendPoint{
			Month: label, First: t.FirstOffering, Second: t.SecondOffering,
		})
	}
	return attendance, offerings
}

func pieSlices(counts []repositories.DemographicCount) []models.DemographicSlice {
	byKey := make(map[[2]string]int, len(counts))
	for _, c := range counts {
		byKey[[2]string{c.Category, c.Gender}] += c.Count
	}
	slices := make([]models.DemographicSlice, 0, len(demographicSlices))
	for _, d := range demographicSlices {
		slices = append(slices, models.DemographicSlice{
			Name:  d.name,
			Value: byKey[[2]string{d.category, d.gender}],
			Color: d.color,
		})
	}
	return slices
}
