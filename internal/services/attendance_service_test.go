package services

import (
	"context"
	"testing"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/reports"
	"church_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func churchAdmin(church *models.Church) models.AuthUser {
	return models.AuthUser{ID: uuid.New(), ChurchID: church.ID, GroupID: church.GroupID, Status: models.StatusChurchAdmin}
}

func testChurch() *models.Church {
	return &models.Church{ID: uuid.New(), GroupID: uuid.New(), Name: "Grace Chapel", Location: "Kumasi"}
}

func TestCreateAttendance_UsesCallerChurch(t *testing.T) {
	church := testChurch()
	churches := new(mockChurchRepo)
	records := new(mockAttendanceRepo)
	churches.On("GetChurchByID", mock.Anything, church.ID).Return(church, nil)
	records.On("CreateAttendance", mock.Anything, mock.AnythingOfType("*models.AttendanceRecord")).Return(nil)

	offering := decimal.RequireFromString("52.40")
	rec, err := NewAttendanceService(records, churches).CreateAttendance(context.Background(), churchAdmin(church), CreateAttendanceRequest{
		Date:             "2024-03-03",
		AttendanceCounts: AttendanceCounts{AdultMale: intp(20), FirstOffering: &offering},
	})

	require.NoError(t, err)
	assert.Equal(t, church.ID, rec.ChurchID)
	assert.Equal(t, church.GroupID, rec.GroupID)
	assert.Equal(t, 20, *rec.AdultMale)
	assert.Nil(t, rec.AdultFemale)
	assert.True(t, rec.FirstOffering.Valid)
	assert.False(t, rec.SecondOffering.Valid)
	assert.Nil(t, rec.Reason)
}

func TestCreateAttendance_ReasonDropsCounts(t *testing.T) {
	church := testChurch()
	churches := new(mockChurchRepo)
	records := new(mockAttendanceRepo)
	churches.On("GetChurchByID", mock.Anything, church.ID).Return(church, nil)
	records.On("CreateAttendance", mock.Anything, mock.Anything).Return(nil)

	rec, err := NewAttendanceService(records, churches).CreateAttendance(context.Background(), churchAdmin(church), CreateAttendanceRequest{
		Date:             "2024-03-04",
		Reason:           strp("  Public holiday "),
		AttendanceCounts: AttendanceCounts{AdultMale: intp(3)},
	})

	require.NoError(t, err)
	assert.Equal(t, "Public holiday", *rec.Reason)
	assert.Nil(t, rec.AdultMale)
}

func TestCreateAttendance_RejectsOtherChurch(t *testing.T) {
	own := testChurch()
	other := testChurch()
	churches := new(mockChurchRepo)
	churches.On("GetChurchByID", mock.Anything, other.ID).Return(other, nil)
	records := new(mockAttendanceRepo)

	_, err := NewAttendanceService(records, churches).CreateAttendance(context.Background(), churchAdmin(own), CreateAttendanceRequest{
		Date:     "2024-03-03",
		ChurchID: &other.ID,
	})

	assert.ErrorIs(t, err, ErrChurchOutOfScope)
	records.AssertNotCalled(t, "CreateAttendance", mock.Anything, mock.Anything)
}

func TestCreateAttendance_DuplicateDate(t *testing.T) {
	church := testChurch()
	churches := new(mockChurchRepo)
	records := new(mockAttendanceRepo)
	churches.On("GetChurchByID", mock.Anything, church.ID).Return(church, nil)
	records.On("CreateAttendance", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

	_, err := NewAttendanceService(records, churches).CreateAttendance(context.Background(), churchAdmin(church), CreateAttendanceRequest{Date: "2024-03-03"})

	assert.ErrorIs(t, err, ErrAttendanceExists)
}

func TestCreateAttendance_NegativeOffering(t *testing.T) {
	church := testChurch()
	negative := decimal.NewFromInt(-5)

	_, err := NewAttendanceService(new(mockAttendanceRepo), new(mockChurchRepo)).CreateAttendance(context.Background(), churchAdmin(church), CreateAttendanceRequest{
		Date:             "2024-03-03",
		AttendanceCounts: AttendanceCounts{SecondOffering: &negative},
	})

	assert.ErrorIs(t, err, ErrAttendanceValidation)
}

func TestUpdateAttendance_ReasonClearsEveryCount(t *testing.T) {
	church := testChurch()
	existing := &models.AttendanceRecord{
		ID: uuid.New(), Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		AdultMale: intp(10), YouthFemale: intp(4),
		FirstOffering: decimal.NewNullDecimal(decimal.NewFromInt(30)),
		ChurchID:      church.ID, GroupID: church.GroupID,
	}
	records := new(mockAttendanceRepo)
	records.On("GetAttendanceByID", mock.Anything, existing.ID).Return(existing, nil)
	records.On("UpdateAttendance", mock.Anything, existing).Return(nil)

	rec, err := NewAttendanceService(records, new(mockChurchRepo)).
		UpdateAttendance(context.Background(), churchAdmin(church), existing.ID, UpdateAttendanceRequest{Reason: strp("Convention")})

	require.NoError(t, err)
	assert.Equal(t, "Convention", *rec.Reason)
	assert.Nil(t, rec.AdultMale)
	assert.Nil(t, rec.YouthFemale)
	assert.False(t, rec.FirstOffering.Valid)
}

func TestUpdateAttendance_CountsClearReasonAndZeroFill(t *testing.T) {
	church := testChurch()
	existing := &models.AttendanceRecord{
		ID: uuid.New(), Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Reason:   strp("Rain"),
		ChurchID: church.ID, GroupID: church.GroupID,
	}
	records := new(mockAttendanceRepo)
	records.On("GetAttendanceByID", mock.Anything, existing.ID).Return(existing, nil)
	records.On("UpdateAttendance", mock.Anything, existing).Return(nil)

	rec, err := NewAttendanceService(records, new(mockChurchRepo)).
		UpdateAttendance(context.Background(), churchAdmin(church), existing.ID, UpdateAttendanceRequest{
			Reason:           strp("   "),
			AttendanceCounts: AttendanceCounts{ChildMale: intp(6)},
		})

	require.NoError(t, err)
	assert.Nil(t, rec.Reason)
	assert.Equal(t, 6, *rec.ChildMale)
	require.NotNil(t, rec.AdultMale)
	assert.Equal(t, 0, *rec.AdultMale)
	assert.True(t, rec.SecondOffering.Valid)
	assert.True(t, rec.SecondOffering.Decimal.IsZero())
}

func TestUpdateAttendance_OutOfScopeIsNotFound(t *testing.T) {
	church := testChurch()
	existing := &models.AttendanceRecord{ID: uuid.New(), ChurchID: uuid.New(), GroupID: church.GroupID}
	records := new(mockAttendanceRepo)
	records.On("GetAttendanceByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := NewAttendanceService(records, new(mockChurchRepo)).
		UpdateAttendance(context.Background(), churchAdmin(church), existing.ID, UpdateAttendanceRequest{})

	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestGetMonthlyAttendance_InvalidMonth(t *testing.T) {
	church := testChurch()

	_, err := NewAttendanceService(new(mockAttendanceRepo), new(mockChurchRepo)).
		GetMonthlyAttendance(context.Background(), churchAdmin(church), AttendanceListQuery{Month: "March"})

	assert.ErrorIs(t, err, reports.ErrInvalidMonth)
}
