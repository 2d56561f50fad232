package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// AttendanceRepository defines the interface for regular service attendance records.
type AttendanceRepository interface {
	CreateAttendance(ctx context.Context, rec *models.AttendanceRecord) error
	GetAttendanceByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, rec *models.AttendanceRecord) error
	DeleteAttendance(ctx context.Context, id uuid.UUID) error
	FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error)
	SumPeriod(ctx context.Context, scope models.ScopeFilter, from, to time.Time) (*models.PeriodTotals, error)
	MonthlyTotals(ctx context.Context, scope models.ScopeFilter, from, to time.Time) ([]models.MonthlyAttendanceTotals, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.date, a.reason, a.adult_male, a.adult_female, a.youth_male, a.youth_female,
	a.child_male, a.child_female, a.newcomer_male, a.newcomer_female, a.first_offering, a.second_offering,
	a.church_id, a.group_id, a.created_at, a.updated_at`

func scanAttendance(s scanner, a *models.AttendanceRecord) error {
	return s.Scan(
		&a.ID, &a.Date, &a.Reason, &a.AdultMale, &a.AdultFemale, &a.YouthMale, &a.YouthFemale,
		&a.ChildMale, &a.ChildFemale, &a.NewcomerMale, &a.NewcomerFemale, &a.FirstOffering, &a.SecondOffering,
		&a.ChurchID, &a.GroupID, &a.CreatedAt, &a.UpdatedAt,
	)
}

// CreateAttendance inserts a record. A church has at most one record per date.
func (r *attendanceRepository) CreateAttendance(ctx context.Context, a *models.AttendanceRecord) error {
	query := `INSERT INTO attendance (date, reason, adult_male, adult_female, youth_male, youth_female, child_male,
	              child_female, newcomer_male, newcomer_female, first_offering, second_offering, church_id, group_id,
	              created_at, updated_at)
	          VALUES ($1::date, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		dateArg(a.Date), a.Reason, a.AdultMale, a.AdultFemale, a.YouthMale, a.YouthFemale, a.ChildMale,
		a.ChildFemale, a.NewcomerMale, a.NewcomerFemale, a.FirstOffering, a.SecondOffering, a.ChurchID, a.GroupID, now,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return writeError(err, "creating attendance")
	}
	return nil
}

// GetAttendanceByID retrieves a record by its ID.
func (r *attendanceRepository) GetAttendanceByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	rec := &models.AttendanceRecord{}
	query := `SELECT ` + attendanceColumns + ` FROM attendance a WHERE a.id = $1`
	if err := scanAttendance(r.db.QueryRowContext(ctx, query, id), rec); err != nil {
		return nil, readError(err, fmt.Sprintf("getting attendance by ID %s", id))
	}
	return rec, nil
}

// UpdateAttendance overwrites the counts, offerings and reason of a record.
func (r *attendanceRepository) UpdateAttendance(ctx context.Context, a *models.AttendanceRecord) error {
	query := `UPDATE attendance SET date = $1::date, reason = $2, adult_male = $3, adult_female = $4, youth_male = $5,
	              youth_female = $6, child_male = $7, child_female = $8, newcomer_male = $9, newcomer_female = $10,
	              first_offering = $11, second_offering = $12, updated_at = $13
	          WHERE id = $14`

	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		dateArg(a.Date), a.Reason, a.AdultMale, a.AdultFemale, a.YouthMale,
		a.YouthFemale, a.ChildMale, a.ChildFemale, a.NewcomerMale, a.NewcomerFemale,
		a.FirstOffering, a.SecondOffering, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating attendance ID %s", a.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating attendance ID %s", a.ID))
}

// DeleteAttendance removes a record.
func (r *attendanceRepository) DeleteAttendance(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting attendance ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting attendance ID %s", id))
}

// FindAttendance returns every record in scope dated within the filter range, oldest first.
func (r *attendanceRepository) FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	var w whereBuilder
	w.add("a.date >= $%d::date", dateArg(filter.From))
	w.add("a.date <= $%d::date", dateArg(filter.To))
	w.scope(filter.Scope, "a.")
	query := `SELECT ` + attendanceColumns + ` FROM attendance a` + w.clause() + ` ORDER BY a.date ASC`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("%w: scanning attendance: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// SumPeriod adds up newcomers and both offerings of the records in scope and range.
func (r *attendanceRepository) SumPeriod(ctx context.Context, scope models.ScopeFilter, from, to time.Time) (*models.PeriodTotals, error) {
	var w whereBuilder
	w.add("a.date >= $%d::date", dateArg(from))
	w.add("a.date <= $%d::date", dateArg(to))
	w.scope(scope, "a.")
	query := `SELECT COALESCE(SUM(COALESCE(a.newcomer_male, 0) + COALESCE(a.newcomer_female, 0)), 0),
	                 COALESCE(SUM(COALESCE(a.first_offering, 0) + COALESCE(a.second_offering, 0)), 0)
	          FROM attendance a` + w.clause()

	totals := &models.PeriodTotals{}
	if err := r.db.QueryRowContext(ctx, query, w.args...).Scan(&totals.Newcomers, &totals.Offering); err != nil {
		return nil, fmt.Errorf("%w: summing attendance period: %v", ErrDatabaseError, err)
	}
	return totals, nil
}

// MonthlyTotals sums attendance and offerings per calendar month, oldest first.
// Months without records are absent.
func (r *attendanceRepository) MonthlyTotals(ctx context.Context, scope models.ScopeFilter, from, to time.Time) ([]models.MonthlyAttendanceTotals, error) {
	var w whereBuilder
	w.add("a.date >= $%d::date", dateArg(from))
	w.add("a.date <= $%d::date", dateArg(to))
	w.scope(scope, "a.")
	query := `SELECT date_trunc('month', a.date)::date AS month,
	                 COALESCE(SUM(COALESCE(a.adult_male, 0) + COALESCE(a.adult_female, 0)), 0),
	                 COALESCE(SUM(COALESCE(a.youth_male, 0) + COALESCE(a.youth_female, 0)), 0),
	                 COALESCE(SUM(COALESCE(a.child_male, 0) + COALESCE(a.child_female, 0)), 0),
	                 COALESCE(SUM(a.first_offering), 0),
	                 COALESCE(SUM(a.second_offering), 0)
	          FROM attendance a` + w.clause() + `
	          GROUP BY 1 ORDER BY 1`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying monthly attendance totals: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	totals := []models.MonthlyAttendanceTotals{}
	for rows.Next() {
		var m models.MonthlyAttendanceTotals
		if err := rows.Scan(&m.Month, &m.Adults, &m.Youths, &m.Children, &m.FirstOffering, &m.SecondOffering); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly attendance totals: %v", ErrDatabaseError, err)
		}
		totals = append(totals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating monthly attendance totals: %v", ErrDatabaseError, err)
	}
	return totals, nil
}
