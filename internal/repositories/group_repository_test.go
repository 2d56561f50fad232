package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"church_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_CreateGroup_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO groups`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate", Constraint: "groups_name_key"})

	err := repo.CreateGroup(context.Background(), &models.Group{Name: "Accra"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_GetGroups(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGroupRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM groups g WHERE g.name ILIKE $1 ORDER BY g.name ASC LIMIT $2 OFFSET $3`)).
		WithArgs("Acc%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "location", "pastor", "phone_number", "email", "created_at", "updated_at",
			"churches", "members", "total_count",
		}).AddRow(uuid.NewString(), "Accra", "Accra", "Rev. Mensah", "0240000000", nil, now, now, 3, 120, 1))

	groups, total, err := repo.GetGroups(context.Background(), 1, 10, "Acc")

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, groups, 1)
	assert.Equal(t, 3, *groups[0].Churches)
	assert.Equal(t, 120, *groups[0].Members)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChurchRepository_GetChurchIdentity(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChurchRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.name, g.name FROM churches c JOIN groups g`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"name", "name"}).AddRow("Zion", "Accra"))

	identity, err := repo.GetChurchIdentity(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, &models.ChurchIdentity{Name: "Zion", GroupName: "Accra"}, identity)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.name, g.name FROM churches c JOIN groups g`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"name", "name"}))

	_, err = repo.GetChurchIdentity(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
