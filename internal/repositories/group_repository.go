package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// GroupRepository defines the interface for group-related database operations.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetGroups(ctx context.Context, page, limit int, search string) ([]models.Group, int, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	CountGroups(ctx context.Context) (int, error)
	GetGroupName(ctx context.Context, id uuid.UUID) (string, error)
}

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new instance of GroupRepository.
func NewGroupRepository(db *sql.DB) GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = `g.id, g.name, g.location, g.pastor, g.phone_number, g.email, g.created_at, g.updated_at`

func scanGroup(s scanner, g *models.Group, extra ...interface{}) error {
	dest := []interface{}{&g.ID, &g.Name, &g.Location, &g.Pastor, &g.PhoneNumber, &g.Email, &g.CreatedAt, &g.UpdatedAt}
	return s.Scan(append(dest, extra...)...)
}

// CreateGroup inserts a new group and fills its generated fields.
func (r *groupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (name, location, pastor, phone_number, email, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		group.Name, group.Location, group.Pastor, group.PhoneNumber, group.Email, now,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return writeError(err, "creating group")
	}
	return nil
}

// GetGroupByID retrieves a group by its ID.
func (r *groupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	group := &models.Group{}
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.id = $1`
	if err := scanGroup(r.db.QueryRowContext(ctx, query, id), group); err != nil {
		return nil, readError(err, fmt.Sprintf("getting group by ID %s", id))
	}
	return group, nil
}

// GetGroups lists groups with their church and member counts. search matches a name prefix.
func (r *groupRepository) GetGroups(ctx context.Context, page, limit int, search string) ([]models.Group, int, error) {
	var w whereBuilder
	if search != "" {
		w.add("g.name ILIKE $%d", search+"%")
	}
	query := `SELECT ` + groupColumns + `,
	                 (SELECT COUNT(*) FROM churches c WHERE c.group_id = g.id) AS churches,
	                 (SELECT COUNT(*) FROM members m WHERE m.group_id = g.id) AS members,
	                 COUNT(*) OVER() AS total_count
	          FROM groups g` + w.clause() + ` ORDER BY g.name ASC`
	query += w.paginate(page, limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying groups: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	groups := []models.Group{}
	totalCount := 0
	for rows.Next() {
		var g models.Group
		var churches, members int
		if err := scanGroup(rows, &g, &churches, &members, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning group: %v", ErrDatabaseError, err)
		}
		g.Churches, g.Members = &churches, &members
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating group rows: %v", ErrDatabaseError, err)
	}
	return groups, totalCount, nil
}

// UpdateGroup updates an existing group.
func (r *groupRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	query := `UPDATE groups SET name = $1, location = $2, pastor = $3, phone_number = $4, email = $5, updated_at = $6
	          WHERE id = $7`

	group.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		group.Name, group.Location, group.Pastor, group.PhoneNumber, group.Email, group.UpdatedAt, group.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating group ID %s", group.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating group ID %s", group.ID))
}

// DeleteGroup removes a group. Groups that still own churches cannot be deleted.
func (r *groupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting group ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting group ID %s", id))
}

// CountGroups counts every group.
func (r *groupRepository) CountGroups(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting groups: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// GetGroupName returns the display name of a group.
func (r *groupRepository) GetGroupName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	if err := r.db.QueryRowContext(ctx, `SELECT name FROM groups WHERE id = $1`, id).Scan(&name); err != nil {
		return "", readError(err, fmt.Sprintf("getting name of group ID %s", id))
	}
	return name, nil
}
