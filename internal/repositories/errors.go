package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"church_backend/internal/models"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a write references a missing row or a delete
	// would orphan dependent rows.
	ErrForeignKey = errors.New("foreign key constraint violated")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// writeError maps driver errors of inserts, updates and deletes onto the repository sentinels.
func writeError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrForeignKey, pqErr.Message, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// readError maps a single-row lookup error.
func readError(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// expectAffected turns "zero rows touched" into ErrNotFound.
func expectAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s: %v", ErrDatabaseError, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// dateArg renders a calendar day for comparison against DATE columns, so the
// session time zone never shifts the boundary.
func dateArg(t time.Time) string {
	return t.Format(models.DateLayout)
}

// whereBuilder collects AND-ed conditions with positional arguments.
// Conditions use %d (or %[1]d when repeated) where the placeholder number goes.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) raw(cond string) {
	w.conds = append(w.conds, cond)
}

// scope applies a church or group restriction on the columns of alias.
func (w *whereBuilder) scope(s models.ScopeFilter, alias string) {
	if s.MatchNone {
		w.raw("FALSE")
		return
	}
	if s.ChurchID != nil {
		w.add(alias+"church_id = $%d", *s.ChurchID)
	}
	if s.GroupID != nil {
		w.add(alias+"group_id = $%d", *s.GroupID)
	}
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// paginate appends LIMIT/OFFSET placeholders when limit is positive.
func (w *whereBuilder) paginate(page, limit int) string {
	if limit <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	w.args = append(w.args, limit, (page-1)*limit)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
