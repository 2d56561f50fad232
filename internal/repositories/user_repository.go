package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for login accounts and their tokens.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context, scope models.ScopeFilter, page, limit int) ([]models.User, int, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context, scope models.ScopeFilter) (int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.username, u.password_hash, u.status, u.member_id, u.church_id, u.group_id,
	u.refresh_token, u.created_at, u.updated_at, c.name, m.first_name, m.last_name`

const userFrom = ` FROM users u
	LEFT JOIN churches c ON c.id = u.church_id
	LEFT JOIN members m ON m.id = u.member_id`

func scanUser(s scanner, u *models.User, extra ...interface{}) error {
	dest := []interface{}{
		&u.ID, &u.Username, &u.PasswordHash, &u.Status, &u.MemberID, &u.ChurchID, &u.GroupID,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt, &u.ChurchName, &u.MemberFirstName, &u.MemberLastName,
	}
	return s.Scan(append(dest, extra...)...)
}

// CreateUser inserts a new user. PasswordHash must already be hashed.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password_hash, status, member_id, church_id, group_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Status, user.MemberID, user.ChurchID, user.GroupID, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return writeError(err, "creating user")
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + userFrom + ` WHERE u.id = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), user); err != nil {
		return nil, readError(err, fmt.Sprintf("finding user by ID %s", id))
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + userFrom + ` WHERE u.username = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, username), user); err != nil {
		return nil, readError(err, fmt.Sprintf("finding user by username %s", username))
	}
	return user, nil
}

// GetUsers lists users in scope, newest first.
func (r *userRepository) GetUsers(ctx context.Context, scope models.ScopeFilter, page, limit int) ([]models.User, int, error) {
	var w whereBuilder
	w.scope(scope, "u.")
	query := `SELECT ` + userColumns + `, COUNT(*) OVER() AS total_count` + userFrom + w.clause() + ` ORDER BY u.created_at DESC`
	query += w.paginate(page, limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	totalCount := 0
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, totalCount, nil
}

// UpdateUser updates the username and status of a user.
func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = $1, status = $2, updated_at = $3 WHERE id = $4`,
		user.Username, user.Status, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating user ID %s", user.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating user ID %s", user.ID))
}

// UpdatePassword replaces the password hash and revokes the refresh token.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, refresh_token = NULL, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating password of user ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("updating password of user ID %s", id))
}

// SetRefreshToken stores the current refresh token; nil clears it.
func (r *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET refresh_token = $1 WHERE id = $2`, token, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("storing refresh token of user ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("storing refresh token of user ID %s", id))
}

// DeleteUser removes a user.
func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting user ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting user ID %s", id))
}

// CountUsers counts users in scope.
func (r *userRepository) CountUsers(ctx context.Context, scope models.ScopeFilter) (int, error) {
	var w whereBuilder
	w.scope(scope, "")

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.clause(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", ErrDatabaseError, err)
	}
	return n, nil
}
