package repositories

import (
	"context"
	"regexp"
	"testing"

	"church_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_CountMembers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)
	groupID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM members m WHERE m.group_id = $1 AND m.member_status = $2`)).
		WithArgs(groupID, models.MemberStatusWorker).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

	n, err := repo.CountMembers(context.Background(), models.ScopeFilter{GroupID: &groupID},
		models.MemberCriteria{MemberStatus: models.MemberStatusWorker})

	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_CountMembers_Unscoped(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM members m`)).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(230))

	n, err := repo.CountMembers(context.Background(), models.ScopeFilter{}, models.MemberCriteria{})

	require.NoError(t, err)
	assert.Equal(t, 230, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_GetRecipients(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)
	churchID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT m.first_name, m.phone_number FROM members m WHERE m.church_id = $1 AND m.gender = $2`)).
		WithArgs(churchID, models.GenderFemale).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "phone_number"}).
			AddRow("Ama", "0241234567").
			AddRow("Esi", "0209876543"))

	recipients, err := repo.GetRecipients(context.Background(), models.ScopeFilter{ChurchID: &churchID},
		models.MemberCriteria{Gender: models.GenderFemale})

	require.NoError(t, err)
	assert.Equal(t, []models.Recipient{
		{FirstName: "Ama", PhoneNumber: "0241234567"},
		{FirstName: "Esi", PhoneNumber: "0209876543"},
	}, recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_CountByDemographic(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY m.category, m.gender`)).
		WillReturnRows(sqlmock.NewRows([]string{"category", "gender", "count"}).
			AddRow("Adult", "Male", 10).
			AddRow("Children", "Female", 4))

	counts, err := repo.CountByDemographic(context.Background(), models.ScopeFilter{})

	require.NoError(t, err)
	assert.Equal(t, []DemographicCount{
		{Category: "Adult", Gender: "Male", Count: 10},
		{Category: "Children", Gender: "Female", Count: 4},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
