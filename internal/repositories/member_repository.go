package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church_backend/internal/models"

	"github.com/google/uuid"
)

// DemographicCount is the number of members of one category and gender.
type DemographicCount struct {
	Category string
	Gender   string
	Count    int
}

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria, page, limit int) ([]models.Member, int, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
	CountMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) (int, error)
	CountByDemographic(ctx context.Context, scope models.ScopeFilter) ([]DemographicCount, error)
	GetRecipients(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) ([]models.Recipient, error)
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `m.id, m.first_name, m.last_name, m.email, m.phone_number, m.house_address, m.gps_address,
	m.gender, m.relationship_status, m.category, m.work_or_school, m.level_or_position, m.program_or_department,
	m.emergency_contact, m.emergency_name, m.emergency_relation, m.emergency_address, m.member_status,
	m.profile_image_url, m.church_id, m.group_id, m.created_at, m.updated_at`

func scanMember(s scanner, m *models.Member, extra ...interface{}) error {
	dest := []interface{}{
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber, &m.HouseAddress, &m.GPSAddress,
		&m.Gender, &m.RelationshipStatus, &m.Category, &m.WorkOrSchool, &m.LevelOrPosition, &m.ProgramOrDepartment,
		&m.EmergencyContact, &m.EmergencyName, &m.EmergencyRelation, &m.EmergencyAddress, &m.MemberStatus,
		&m.ProfileImageURL, &m.ChurchID, &m.GroupID, &m.CreatedAt, &m.UpdatedAt,
	}
	return s.Scan(append(dest, extra...)...)
}

func memberFilter(w *whereBuilder, scope models.ScopeFilter, criteria models.MemberCriteria) {
	w.scope(scope, "m.")
	if criteria.Search != "" {
		w.add("(m.first_name ILIKE $%[1]d OR m.last_name ILIKE $%[1]d OR m.phone_number ILIKE $%[1]d)", "%"+criteria.Search+"%")
	}
	if criteria.Category != "" {
		w.add("m.category = $%d", criteria.Category)
	}
	if criteria.Gender != "" {
		w.add("m.gender = $%d", criteria.Gender)
	}
	if criteria.MemberStatus != "" {
		w.add("m.member_status = $%d", criteria.MemberStatus)
	}
}

// CreateMember inserts a new member.
func (r *memberRepository) CreateMember(ctx context.Context, m *models.Member) error {
	query := `INSERT INTO members (first_name, last_name, email, phone_number, house_address, gps_address,
	              gender, relationship_status, category, work_or_school, level_or_position, program_or_department,
	              emergency_contact, emergency_name, emergency_relation, emergency_address, member_status,
	              profile_image_url, church_id, group_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21)
	          RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		m.FirstName, m.LastName, m.Email, m.PhoneNumber, m.HouseAddress, m.GPSAddress,
		m.Gender, m.RelationshipStatus, m.Category, m.WorkOrSchool, m.LevelOrPosition, m.ProgramOrDepartment,
		m.EmergencyContact, m.EmergencyName, m.EmergencyRelation, m.EmergencyAddress, m.MemberStatus,
		m.ProfileImageURL, m.ChurchID, m.GroupID, now,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return writeError(err, "creating member")
	}
	return nil
}

// GetMemberByID retrieves a member with the name of their church.
func (r *memberRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + `, c.name
	          FROM members m LEFT JOIN churches c ON c.id = m.church_id
	          WHERE m.id = $1`
	if err := scanMember(r.db.QueryRowContext(ctx, query, id), member, &member.ChurchName); err != nil {
		return nil, readError(err, fmt.Sprintf("getting member by ID %s", id))
	}
	return member, nil
}

// GetMembers lists members in scope matching criteria, newest first.
func (r *memberRepository) GetMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria, page, limit int) ([]models.Member, int, error) {
	var w whereBuilder
	memberFilter(&w, scope, criteria)
	query := `SELECT ` + memberColumns + `, c.name, COUNT(*) OVER() AS total_count
	          FROM members m LEFT JOIN churches c ON c.id = m.church_id` + w.clause() + ` ORDER BY m.created_at DESC`
	query += w.paginate(page, limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	members := []models.Member{}
	totalCount := 0
	for rows.Next() {
		var m models.Member
		if err := scanMember(rows, &m, &m.ChurchName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, totalCount, nil
}

// UpdateMember updates every editable field of a member.
func (r *memberRepository) UpdateMember(ctx context.Context, m *models.Member) error {
	query := `UPDATE members SET first_name = $1, last_name = $2, email = $3, phone_number = $4, house_address = $5,
	              gps_address = $6, gender = $7, relationship_status = $8, category = $9, work_or_school = $10,
	              level_or_position = $11, program_or_department = $12, emergency_contact = $13, emergency_name = $14,
	              emergency_relation = $15, emergency_address = $16, member_status = $17, profile_image_url = $18,
	              church_id = $19, group_id = $20, updated_at = $21
	          WHERE id = $22`

	m.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		m.FirstName, m.LastName, m.Email, m.PhoneNumber, m.HouseAddress,
		m.GPSAddress, m.Gender, m.RelationshipStatus, m.Category, m.WorkOrSchool,
		m.LevelOrPosition, m.ProgramOrDepartment, m.EmergencyContact, m.EmergencyName,
		m.EmergencyRelation, m.EmergencyAddress, m.MemberStatus, m.ProfileImageURL,
		m.ChurchID, m.GroupID, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return writeError(err, fmt.Sprintf("updating member ID %s", m.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating member ID %s", m.ID))
}

// DeleteMember removes a member together with any login linked to them.
func (r *memberRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return writeError(err, fmt.Sprintf("deleting member ID %s", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting member ID %s", id))
}

// CountMembers counts members in scope matching criteria.
func (r *memberRepository) CountMembers(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) (int, error) {
	var w whereBuilder
	memberFilter(&w, scope, criteria)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members m`+w.clause(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting members: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// CountByDemographic groups the members in scope by category and gender.
func (r *memberRepository) CountByDemographic(ctx context.Context, scope models.ScopeFilter) ([]DemographicCount, error) {
	var w whereBuilder
	w.scope(scope, "m.")
	query := `SELECT m.category, m.gender, COUNT(*) FROM members m` + w.clause() + ` GROUP BY m.category, m.gender`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: counting member demographics: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := []DemographicCount{}
	for rows.Next() {
		var d DemographicCount
		if err := rows.Scan(&d.Category, &d.Gender, &d.Count); err != nil {
			return nil, fmt.Errorf("%w: scanning member demographics: %v", ErrDatabaseError, err)
		}
		counts = append(counts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating member demographics: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// GetRecipients returns the first name and phone number of every matching member.
func (r *memberRepository) GetRecipients(ctx context.Context, scope models.ScopeFilter, criteria models.MemberCriteria) ([]models.Recipient, error) {
	var w whereBuilder
	memberFilter(&w, scope, criteria)
	query := `SELECT m.first_name, m.phone_number FROM members m` + w.clause() + ` ORDER BY m.first_name`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recipients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	recipients := []models.Recipient{}
	for rows.Next() {
		var rc models.Recipient
		if err := rows.Scan(&rc.FirstName, &rc.PhoneNumber); err != nil {
			return nil, fmt.Errorf("%w: scanning recipient: %v", ErrDatabaseError, err)
		}
		recipients = append(recipients, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recipients: %v", ErrDatabaseError, err)
	}
	return recipients, nil
}
