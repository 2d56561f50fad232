package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// PasswordResetRepository stores the pending reset code of each user.
type PasswordResetRepository interface {
	SaveCode(ctx context.Context, userID uuid.UUID, codeHash string) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type passwordResetRepository struct {
	db *sql.DB
}

// NewPasswordResetRepository creates a new instance of PasswordResetRepository.
func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// SaveCode stores a new code for the user, replacing any earlier one.
func (r *passwordResetRepository) SaveCode(ctx context.Context, userID uuid.UUID, codeHash string) error {
	query := `INSERT INTO password_resets (user_id, code_hash, created_at) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE SET code_hash = EXCLUDED.code_hash, created_at = EXCLUDED.created_at`
	if _, err := r.db.ExecContext(ctx, query, userID, codeHash, time.Now().UTC()); err != nil {
		return writeError(err, fmt.Sprintf("saving reset code of user ID %s", userID))
	}
	return nil
}

// GetByUserID returns the pending code of a user.
func (r *passwordResetRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, code_hash, created_at FROM password_resets WHERE user_id = $1`, userID,
	).Scan(&reset.ID, &reset.UserID, &reset.CodeHash, &reset.CreatedAt)
	if err != nil {
		return nil, readError(err, fmt.Sprintf("getting reset code of user ID %s", userID))
	}
	return reset, nil
}

// DeleteByUserID discards the pending code of a user. Deleting nothing is not an error.
func (r *passwordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE user_id = $1`, userID); err != nil {
		return writeError(err, fmt.Sprintf("deleting reset code of user ID %s", userID))
	}
	return nil
}
