package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"church_backend/internal/models"
	"church_backend/internal/repositories"
	"church_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Member ---
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrChurchRequired  = errors.New("church is required")
	ErrMemberForbidden = errors.New("member belongs to a church outside your scope")
)

// --- Member DTOs ---
type CreateMemberRequest struct {
	FirstName           string     `json:"firstName" binding:"required,notblank"`
	LastName            string     `json:"lastName" binding:"required,notblank"`
	Email               *string    `json:"email" binding:"omitempty,email"`
	PhoneNumber         string     `json:"phoneNumber" binding:"required,notblank"`
	HouseAddress        *string    `json:"houseAddress"`
	GPSAddress          *string    `json:"gpsAddress"`
	Gender              string     `json:"gender" binding:"required,gender"`
	RelationshipStatus  string     `json:"relationshipStatus" binding:"required,notblank"`
	Category            string     `json:"category" binding:"required,membercategory"`
	WorkOrSchool        *string    `json:"workOrSchool"`
	LevelOrPosition     *string    `json:"levelOrPosition"`
	ProgramOrDepartment *string    `json:"programOrDepartment"`
	EmergencyContact    string     `json:"emergencyContact" binding:"required,notblank"`
	EmergencyName       string     `json:"emergencyName" binding:"required,notblank"`
	EmergencyRelation   string     `json:"emergencyRelation" binding:"required,notblank"`
	EmergencyAddress    *string    `json:"emergencyAddress"`
	MemberStatus        string     `json:"memberStatus" binding:"required,memberstatus"`
	ProfileImageURL     *string    `json:"profileImageUrl" binding:"omitempty,url"`
	ChurchID            *uuid.UUID `json:"churchId"`
}

type UpdateMemberRequest struct {
	FirstName           *string    `json:"firstName" binding:"omitempty,notblank"`
	LastName            *string    `json:"lastName" binding:"omitempty,notblank"`
	Email               *string    `json:"email" binding:"omitempty,email"`
	PhoneNumber         *string    `json:"phoneNumber" binding:"omitempty,notblank"`
	HouseAddress        *string    `json:"houseAddress"`
	GPSAddress          *string    `json:"gpsAddress"`
	Gender              *string    `json:"gender" binding:"omitempty,gender"`
	RelationshipStatus  *string    `json:"relationshipStatus" binding:"omitempty,notblank"`
	Category            *string    `json:"category" binding:"omitempty,membercategory"`
	WorkOrSchool        *string    `json:"workOrSchool"`
	LevelOrPosition     *string    `json:"levelOrPosition"`
	ProgramOrDepartment *string    `json:"programOrDepartment"`
	EmergencyContact    *string    `json:"emergencyContact" binding:"omitempty,notblank"`
	EmergencyName       *string    `json:"emergencyName" binding:"omitempty,notblank"`
	EmergencyRelation   *string    `json:"emergencyRelation" binding:"omitempty,notblank"`
	EmergencyAddress    *string    `json:"emergencyAddress"`
	MemberStatus        *string    `json:"memberStatus" binding:"omitempty,memberstatus"`
	ProfileImageURL     *string    `json:"profileImageUrl" binding:"omitempty,url"`
	ChurchID            *uuid.UUID `json:"churchId"`
}

// MemberListQuery filters the member listing.
type MemberListQuery struct {
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	Search       string `form:"search"`
	Category     string `form:"category" binding:"omitempty,membercategory"`
	MemberStatus string `form:"memberStatus" binding:"omitempty,memberstatus"`
}

// --- MemberService Interface ---
type MemberService interface {
	CreateMember(ctx context.Context, caller models.AuthUser, req CreateMemberRequest) (*models.Member, error)
	GetMemberByID(ctx context.Context, caller models.AuthUser, id uuid.UUID) (*models.Member, error)
	GetMembers(ctx context.Context, caller models.AuthUser, q MemberListQuery) ([]models.Member, int, error)
	UpdateMember(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateMemberRequest) (*models.Member, error)
	DeleteMember(ctx context.Context, caller models.AuthUser, id uuid.UUID) error
}

type memberService struct {
	memberRepo repositories.MemberRepository
	churchRepo repositories.ChurchRepository
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(mr repositories.MemberRepository, cr repositories.ChurchRepository) MemberService {
	return &memberService{memberRepo: mr, churchRepo: cr}
}

// churchOf loads the church a member is attached to; its group is copied onto the member.
func (s *memberService) churchOf(ctx context.Context, id uuid.UUID) (*models.Church, error) {
	church, err := s.churchRepo.GetChurchByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChurchNotFound
		}
		return nil, fmt.Errorf("failed to load church of member: %w", err)
	}
	return church, nil
}

// inScope reports whether the caller may see a member of the given church and group.
func inScope(caller models.AuthUser, churchID, groupID uuid.UUID) bool {
	switch {
	case caller.Status.IsChurchLevel():
		return caller.ChurchID == churchID
	case caller.Status.IsGroupLevel():
		return caller.GroupID == groupID
	}
	return true
}

func (s *memberService) CreateMember(ctx context.Context, caller models.AuthUser, req CreateMemberRequest) (*models.Member, error) {
	churchID := caller.ChurchID
	if req.ChurchID != nil {
		churchID = *req.ChurchID
	}
	if churchID == uuid.Nil {
		return nil, ErrChurchRequired
	}
	church, err := s.churchOf(ctx, churchID)
	if err != nil {
		return nil, err
	}
	if !inScope(caller, church.ID, church.GroupID) {
		return nil, ErrMemberForbidden
	}

	member := &models.Member{
		FirstName:           strings.TrimSpace(req.FirstName),
		LastName:            strings.TrimSpace(req.LastName),
		Email:               req.Email,
		PhoneNumber:         strings.TrimSpace(req.PhoneNumber),
		HouseAddress:        req.HouseAddress,
		GPSAddress:          req.GPSAddress,
		Gender:              req.Gender,
		RelationshipStatus:  req.RelationshipStatus,
		Category:            req.Category,
		WorkOrSchool:        req.WorkOrSchool,
		LevelOrPosition:     req.LevelOrPosition,
		ProgramOrDepartment: req.ProgramOrDepartment,
		EmergencyContact:    req.EmergencyContact,
		EmergencyName:       req.EmergencyName,
		EmergencyRelation:   req.EmergencyRelation,
		EmergencyAddress:    req.EmergencyAddress,
		MemberStatus:        req.MemberStatus,
		ProfileImageURL:     req.ProfileImageURL,
		ChurchID:            church.ID,
		GroupID:             church.GroupID,
	}
	if err := s.memberRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	member.ChurchName = &church.Name
	return member, nil
}

func (s *memberService) GetMemberByID(ctx context.Context, caller models.AuthUser, id uuid.UUID) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if !inScope(caller, member.ChurchID, member.GroupID) {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// GetMembers lists the members the caller's status lets them see.
func (s *memberService) GetMembers(ctx context.Context, caller models.AuthUser, q MemberListQuery) ([]models.Member, int, error) {
	criteria := models.MemberCriteria{
		Search:       strings.TrimSpace(q.Search),
		Category:     q.Category,
		MemberStatus: q.MemberStatus,
	}
	members, total, err := s.memberRepo.GetMembers(ctx, callerScope(caller), criteria, q.Page, q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

func (s *memberService) UpdateMember(ctx context.Context, caller models.AuthUser, id uuid.UUID, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.GetMemberByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	setString(&member.FirstName, req.FirstName)
	setString(&member.LastName, req.LastName)
	setString(&member.PhoneNumber, req.PhoneNumber)
	setString(&member.Gender, req.Gender)
	setString(&member.RelationshipStatus, req.RelationshipStatus)
	setString(&member.Category, req.Category)
	setString(&member.EmergencyContact, req.EmergencyContact)
	setString(&member.EmergencyName, req.EmergencyName)
	setString(&member.EmergencyRelation, req.EmergencyRelation)
	setString(&member.MemberStatus, req.MemberStatus)
	setOptional(&member.Email, req.Email)
	setOptional(&member.HouseAddress, req.HouseAddress)
	setOptional(&member.GPSAddress, req.GPSAddress)
	setOptional(&member.WorkOrSchool, req.WorkOrSchool)
	setOptional(&member.LevelOrPosition, req.LevelOrPosition)
	setOptional(&member.ProgramOrDepartment, req.ProgramOrDepartment)
	setOptional(&member.EmergencyAddress, req.EmergencyAddress)
	setOptional(&member.ProfileImageURL, req.ProfileImageURL)

	if req.ChurchID != nil && *req.ChurchID != member.ChurchID {
		church, err := s.churchOf(ctx, *req.ChurchID)
		if err != nil {
			return nil, err
		}
		if !inScope(caller, church.ID, church.GroupID) {
			return nil, ErrMemberForbidden
		}
		member.ChurchID, member.GroupID, member.ChurchName = church.ID, church.GroupID, &church.Name
	}

	if err := s.memberRepo.UpdateMember(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

func (s *memberService) DeleteMember(ctx context.Context, caller models.AuthUser, id uuid.UUID) error {
	if _, err := s.GetMemberByID(ctx, caller, id); err != nil {
		return err
	}
	if err := s.memberRepo.DeleteMember(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// setOptional copies v into dst; an empty string clears the column.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	*dst = utils.NewNullString(strings.TrimSpace(*v))
}
