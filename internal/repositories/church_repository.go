package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// ChurchListFilter narrows church listings.
type ChurchListFilter struct {
	GroupID *uuid.UUID
	Search  string
	Page    int
	Limit   int
}

// ChurchRepository defines the interface for church-related database operations.
type ChurchRepository interface {
	CreateChurch(ctx context.Context, church *models.Church) error
	GetChurchByID(ctx context.Context, id uuid.UUID) (*models.Church, error)
	GetChurches(ctx context.Context, filter ChurchListFilter) ([]models.Church, int, error)
	UpdateChurch(ctx context.Context, church *models.Church) error
	DeleteChurch(ctx context.Context, id uuid.UUID) error
	CountChurches(ctx context.Context, scope models.ScopeFilter) (int, error)
	GetChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error)
}

type churchRepository struct {
	db *sql.DB
}

// NewChurchRepository creates a new instance of ChurchRepository.
func NewChurchRepository(db *sql.DB) ChurchRepository {
	return &churchRepository{db: db}
}

const churchColumns = `c.id, c.name, c.location, c.pastor, c.phone_number, c.email, c.group_id, c.created_at, c.updated_at`

func scanChurch(s scanner, c *models.Church, extra ...interface{}) error {
	dest := []interface{}{&c.ID, &c.Name, &c.Location, &c.Pastor, &c.PhoneNumber, &c.Email, &c.GroupID, &c.CreatedAt, &c.UpdatedAt}
	return s.Scan(append(dest, extra...)...)
}

// CreateChurch inserts a new church. Names are unique within a group.
func (r *churchRepository) CreateChurch(ctx context.Context, church *models.Church) error {
	query := `INSERT INTO churches (name, location, pastor, phone_number, email, group_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		church.Name, church.Location, church.Pastor, church.PhoneNumber, church.Email, church.GroupID, now,
	).Scan(&church.ID, &church.CreatedAt, &church.UpdatedAt)
	if err != nil {
		return writeError(err, "creating church")
	}
	return nil
}

// GetChurchByID retrieves a church with its group name.
func (r *churchRepository) GetChurchByID(ctx context.Context, id uuid.UUID) (*models.Church, error) {
	church := &models.Church{}
	query := `SELECT ` + churchColumns + `, g.name
	          FROM churches c LEFT JOIN groups g ON g.id = c.group_id
	          WHERE c.id = $1`
	if err := scanChurch(r.db.QueryRowContext(ctx, query, id), church, &church.GroupName); err != nil {
		return nil, readError(err, fmt.Sprintf("getting church by ID %s", id))
	}
	return church, nil
}

// GetChurches lists churches with group names and member counts.
func (r *churchRepository) GetChurches(ctx context.Context, filter ChurchListFilter) ([]models.Church, int, error) {
	var w whereBuilder
	if filter.GroupID != nil {
		w.add("c.group_id = $%d", *filter.GroupID)
	}
	if filter.Search != "" {
		w.add("c.name ILIKE $%d", filter.Search+"%")
	}
	query := `SELECT ` + churchColumns + `, g.name,
	                 (SELECT COUNT(*) FROM members m WHERE m.church_id = c.id) AS members,
	                 COUNT(*) OVER() AS total_count
	          FROM churches c LEFT JOIN groups g ON g.id = c.group_id` + w.clause() + ` ORDER BY c.name ASC`
	query += w.paginate(filter.Page, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying churches: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	churches := []models.Church{}
	totalCount := 0
	for rows.Next() {
		var c models.Church
		var members int
		if err := scanChurch(rows, &c, &c.GroupName, &members, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning church: %v", ErrDatabaseError, err)
		}
		c.Members = &members
		churches = append(churches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating church rows: %v", ErrDatabaseError, err)
	}
	return churches, totalCount, nil
}

// UpdateChurch updates an existing church.
func (r *churchRepository) UpdateChurch(ctx context.Context, church *models.Church) error {
	query := `UPDATE churches SET name = $1, location = $2, pastor = $3, phone_number = $4, email = $5, group_id = $6, updated_at = $7
	          WHERE id = $8`

	church.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		church.Name, church.Location, church.Pastor, church.PhoneNumber, church.Email, church.GroupID, church.UpdatedAt, church.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating church ID %s", church.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating church ID %s", church.ID))
}

// DeleteChurch removes a church. Attendance and special services go with it;
// members and users keep it alive.
func (r *churchRepository) DeleteChurch(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM churches WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting church ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting church ID %s", id))
}

// CountChurches counts churches in scope. A church scope counts the church itself.
func (r *churchRepository) CountChurches(ctx context.Context, scope models.ScopeFilter) (int, error) {
	var w whereBuilder
	if scope.MatchNone {
		w.raw("FALSE")
	}
	if scope.ChurchID != nil {
		w.add("id = $%d", *scope.ChurchID)
	}
	if scope.GroupID != nil {
		w.add("group_id = $%d", *scope.GroupID)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM churches`+w.clause(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting churches: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// GetChurchIdentity returns the names of a church and of its group.
func (r *churchRepository) GetChurchIdentity(ctx context.Context, id uuid.UUID) (*models.ChurchIdentity, error) {
	identity := &models.ChurchIdentity{}
	query := `SELECT c.name, g.name FROM churches c JOIN groups g ON g.id = c.group_id WHERE c.id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&identity.Name, &identity.GroupName); err != nil {
		return nil, readError(err, fmt.Sprintf("getting identity of church ID %s", id))
	}
	return identity, nil
}
