package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// SpecialServiceListFilter narrows the paginated special service listing.
type SpecialServiceListFilter struct {
	Scope    models.ScopeFilter
	From     time.Time
	To       time.Time
	Category models.SpecialServiceCategory
	Page     int
	Limit    int
}

// SpecialServiceRepository defines the interface for special service records.
type SpecialServiceRepository interface {
	CreateSpecialService(ctx context.Context, rec *models.SpecialServiceRecord) error
	GetSpecialServiceByID(ctx context.Context, id uuid.UUID) (*models.SpecialServiceRecord, error)
	GetSpecialServices(ctx context.Context, filter SpecialServiceListFilter) ([]models.SpecialServiceRecord, int, error)
	UpdateSpecialService(ctx context.Context, rec *models.SpecialServiceRecord) error
	DeleteSpecialService(ctx context.Context, id uuid.UUID) error
	FindSpecialServices(ctx context.Context, filter models.RecordFilter) ([]models.SpecialServiceRecord, error)
}

type specialServiceRepository struct {
	db *sql.DB
}

// NewSpecialServiceRepository creates a new instance of SpecialServiceRepository.
func NewSpecialServiceRepository(db *sql.DB) SpecialServiceRepository {
	return &specialServiceRepository{db: db}
}

const specialServiceColumns = `s.id, s.date, s.category, s.adults, s.youths, s.children, s.church_id, s.group_id,
	s.created_at, s.updated_at, c.name, c.location`

const specialServiceFrom = ` FROM special_services s LEFT JOIN churches c ON c.id = s.church_id`

func scanSpecialService(s scanner, rec *models.SpecialServiceRecord, extra ...interface{}) error {
	dest := []interface{}{
		&rec.ID, &rec.Date, &rec.Category, &rec.Adults, &rec.Youths, &rec.Children, &rec.ChurchID, &rec.GroupID,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.ChurchName, &rec.ChurchLocation,
	}
	return s.Scan(append(dest, extra...)...)
}

// CreateSpecialService inserts a record. A church has one record per date and category.
func (r *specialServiceRepository) CreateSpecialService(ctx context.Context, rec *models.SpecialServiceRecord) error {
	query := `INSERT INTO special_services (date, category, adults, youths, children, church_id, group_id, created_at, updated_at)
	          VALUES ($1::date, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		dateArg(rec.Date), rec.Category, rec.Adults, rec.Youths, rec.Children, rec.ChurchID, rec.GroupID, now,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return writeError(err, "creating special service")
	}
	return nil
}

// GetSpecialServiceByID retrieves a record with its church name and location.
func (r *specialServiceRepository) GetSpecialServiceByID(ctx context.Context, id uuid.UUID) (*models.SpecialServiceRecord, error) {
	rec := &models.SpecialServiceRecord{}
	query := `SELECT ` + specialServiceColumns + specialServiceFrom + ` WHERE s.id = $1`
	if err := scanSpecialService(r.db.QueryRowContext(ctx, query, id), rec); err != nil {
		return nil, readError(err, fmt.Sprintf("getting special service by ID %s", id))
	}
	return rec, nil
}

// GetSpecialServices lists records of one category and range, newest first.
func (r *specialServiceRepository) GetSpecialServices(ctx context.Context, filter SpecialServiceListFilter) ([]models.SpecialServiceRecord, int, error) {
	var w whereBuilder
	w.add("s.date >= $%d::date", dateArg(filter.From))
	w.add("s.date <= $%d::date", dateArg(filter.To))
	if filter.Category != "" {
		w.add("s.category = $%d", filter.Category)
	}
	w.scope(filter.Scope, "s.")
	query := `SELECT ` + specialServiceColumns + `, COUNT(*) OVER() AS total_count` + specialServiceFrom + w.clause() +
		` ORDER BY s.date DESC, s.created_at DESC`
	query += w.paginate(filter.Page, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying special services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.SpecialServiceRecord{}
	totalCount := 0
	for rows.Next() {
		var rec models.SpecialServiceRecord
		if err := scanSpecialService(rows, &rec, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning special service: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating special service rows: %v", ErrDatabaseError, err)
	}
	return records, totalCount, nil
}

// UpdateSpecialService overwrites the date, category and counts of a record.
func (r *specialServiceRepository) UpdateSpecialService(ctx context.Context, rec *models.SpecialServiceRecord) error {
	query := `UPDATE special_services SET date = $1::date, category = $2, adults = $3, youths = $4, children = $5, updated_at = $6
	          WHERE id = $7`

	rec.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		dateArg(rec.Date), rec.Category, rec.Adults, rec.Youths, rec.Children, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating special service ID %s", rec.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating special service ID %s", rec.ID))
}

// DeleteSpecialService removes a record.
func (r *specialServiceRepository) DeleteSpecialService(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM special_services WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting special service ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting special service ID %s", id))
}

// FindSpecialServices returns every record in scope dated within the filter range, oldest first.
func (r *specialServiceRepository) FindSpecialServices(ctx context.Context, filter models.RecordFilter) ([]models.SpecialServiceRecord, error) {
	var w whereBuilder
	w.add("s.date >= $%d::date", dateArg(filter.From))
	w.add("s.date <= $%d::date", dateArg(filter.To))
	w.scope(filter.Scope, "s.")
	query := `SELECT ` + specialServiceColumns + specialServiceFrom + w.clause() + ` ORDER BY s.date ASC`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying special services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.SpecialServiceRecord{}
	for rows.Next() {
		var rec models.SpecialServiceRecord
		if err := scanSpecialService(rows, &rec); err != nil {
			return nil, fmt.Errorf("%w: scanning special service: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating special service rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
