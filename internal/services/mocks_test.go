package services

import (
	"context"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

// --- RecordStore / IdentityResolver ---

type mockRecordStore struct{ mock.Mock }

func (m *mockRecordStore) FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]models.AttendanceRecord)
	return records, args.Error(1)
}

func (m *mockRecordStore) FindSpecialServices(ctx context.Context, filter models.RecordFilter) ([]models.SpecialServiceRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]models.SpecialServiceRecord)
	return records, args.Error(1)
}

type mockIdentityResolver struct{ mock.Mock }

func (m *mockIdentityResolver) GroupName(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockIdentityResolver) ChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error) {
	args := m.Called(ctx, id)
	identity, _ := args.Get(0).(*models.ChurchIdentity)
	return identity, args.Error(1)
}

// --- DashboardStore ---

type mockDashboardStore struct{ mock.Mock }

func (m *mockDashboardStore) CountGroups(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) CountChurches(ctx context.Context, scope models.ScopeFilter) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) CountUsers(ctx context.Context, scope models.ScopeFilter) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) CountMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) (int, error) {
	args := m.Called(ctx, scope, criteria)
	return args.Int(0), args.Error(1)
}

func (m *mockDashboardStore) CountByDemographic(ctx context.Context, scope models.ScopeFilter) ([]repositories.DemographicCount, error) {
	args := m.Called(ctx, scope)
	counts, _ := args.Get(0).([]repositories.DemographicCount)
	return counts, args.Error(1)
}

func (m *mockDashboardStore) SumPeriod(ctx context.Context, scope models.ScopeFilter, from, to time.Time) (*models.PeriodTotals, error) {
	args := m.Called(ctx, scope, from, to)
	totals, _ := args.Get(0).(*models.PeriodTotals)
	return totals, args.Error(1)
}

func (m *mockDashboardStore) MonthlyTotals(ctx context.Context, scope models.ScopeFilter, from, to time.Time) ([]models.MonthlyAttendanceTotals, error) {
	args := m.Called(ctx, scope, from, to)
	totals, _ := args.Get(0).([]models.MonthlyAttendanceTotals)
	return totals, args.Error(1)
}

// --- Repositories ---

type mockChurchRepo struct{ mock.Mock }

func (m *mockChurchRepo) CreateChurch(ctx context.Context, church *models.Church) error {
	return m.Called(ctx, church).Error(0)
}

func (m *mockChurchRepo) GetChurchByID(ctx context.Context, id uuid.UUID) (*models.Church, error) {
	args := m.Called(ctx, id)
	church, _ := args.Get(0).(*models.Church)
	return church, args.Error(1)
}

func (m *mockChurchRepo) GetChurches(ctx context.Context, filter repositories.ChurchListFilter) ([]models.Church, int, error) {
	args := m.Called(ctx, filter)
	churches, _ := args.Get(0).([]models.Church)
	return churches, args.Int(1), args.Error(2)
}

func (m *mockChurchRepo) UpdateChurch(ctx context.Context, church *models.Church) error {
	return m.Called(ctx, church).Error(0)
}

func (m *mockChurchRepo) DeleteChurch(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockChurchRepo) CountChurches(ctx context.Context, scope models.ScopeFilter) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *mockChurchRepo) GetChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error) {
	args := m.Called(ctx, id)
	identity, _ := args.Get(0).(*models.ChurchIdentity)
	return identity, args.Error(1)
}

type mockAttendanceRepo struct{ mock.Mock }

func (m *mockAttendanceRepo) CreateAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAttendanceRepo) GetAttendanceByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*models.AttendanceRecord)
	return rec, args.Error(1)
}

func (m *mockAttendanceRepo) UpdateAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAttendanceRepo) DeleteAttendance(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAttendanceRepo) FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]models.AttendanceRecord)
	return records, args.Error(1)
}

func (m *mockAttendanceRepo) SumPeriod(ctx context.Context, scope models.ScopeFilter, from, to time.Time) (*models.PeriodTotals, error) {
	args := m.Called(ctx, scope, from, to)
	totals, _ := args.Get(0).(*models.PeriodTotals)
	return totals, args.Error(1)
}

func (m *mockAttendanceRepo) MonthlyTotals(ctx context.Context, scope models.ScopeFilter, from, to time.Time) ([]models.MonthlyAttendanceTotals, error) {
	args := m.Called(ctx, scope, from, to)
	totals, _ := args.Get(0).([]models.MonthlyAttendanceTotals)
	return totals, args.Error(1)
}

type mockMemberRepo struct{ mock.Mock }

func (m *mockMemberRepo) CreateMember(ctx context.Context, member *models.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*models.Member)
	return member, args.Error(1)
}

func (m *mockMemberRepo) GetMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria, page, limit int) ([]models.Member, int, error) {
	args := m.Called(ctx, scope, criteria, page, limit)
	members, _ := args.Get(0).([]models.Member)
	return members, args.Int(1), args.Error(2)
}

func (m *mockMemberRepo) UpdateMember(ctx context.Context, member *models.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) DeleteMember(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMemberRepo) CountMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) (int, error) {
	args := m.Called(ctx, scope, criteria)
	return args.Int(0), args.Error(1)
}

func (m *mockMemberRepo) CountByDemographic(ctx context.Context, scope models.ScopeFilter) ([]repositories.DemographicCount, error) {
	args := m.Called(ctx, scope)
	counts, _ := args.Get(0).([]repositories.DemographicCount)
	return counts, args.Error(1)
}

func (m *mockMemberRepo) GetRecipients(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) ([]models.Recipient, error) {
	args := m.Called(ctx, scope, criteria)
	recipients, _ := args.Get(0).([]models.Recipient)
	return recipients, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetUsers(ctx context.Context, scope models.ScopeFilter, page, limit int) ([]models.User, int, error) {
	args := m.Called(ctx, scope, page, limit)
	users, _ := args.Get(0).([]models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) CountUsers(ctx context.Context, scope models.ScopeFilter) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

type mockResetRepo struct{ mock.Mock }

func (m *mockResetRepo) SaveCode(ctx context.Context, userID uuid.UUID, codeHash string) error {
	return m.Called(ctx, userID, codeHash).Error(0)
}

func (m *mockResetRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error) {
	args := m.Called(ctx, userID)
	reset, _ := args.Get(0).(*models.PasswordReset)
	return reset, args.Error(1)
}

func (m *mockResetRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
