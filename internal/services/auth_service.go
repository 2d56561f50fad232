package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/repositories"
	"church_backend/internal/sms"
	"church_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetCodeDigits = 6
	resetCodeTTL    = 10 * time.Minute
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("refresh token is invalid or revoked")
	ErrTokenGeneration    = errors.New("failed to generate token")
	ErrResetNotAllowed    = errors.New("username and phone number do not match")
	ErrInvalidResetCode   = errors.New("reset code is invalid or expired")
	ErrSMSDelivery        = errors.New("failed to deliver sms")
)

// --- Data Transfer Objects (DTOs) ---

// AuthResponse is returned on login and refresh. The refresh token travels as a cookie only.
type AuthResponse struct {
	User         models.AuthUser `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"-"`
}

type PasswordResetRequest struct {
	Username    string `json:"username" binding:"required,notblank"`
	PhoneNumber string `json:"phoneNumber" binding:"required,notblank"`
}

type VerifyResetCodeRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
}

type ConfirmPasswordResetRequest struct {
	Username    string `json:"username" binding:"required,notblank"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req models.Credentials) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error
	VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) error
	ConfirmPasswordReset(ctx context.Context, req ConfirmPasswordResetRequest) error
}

// --- authService Implementation ---
type authService struct {
	userRepo   repositories.UserRepository
	memberRepo repositories.MemberRepository
	resetRepo  repositories.PasswordResetRepository
	tokens     *utils.TokenManager
	sender     sms.Sender
	now        func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	ur repositories.UserRepository,
	mr repositories.MemberRepository,
	rr repositories.PasswordResetRepository,
	tokens *utils.TokenManager,
	sender sms.Sender,
) AuthService {
	return &authService{
		userRepo:   ur,
		memberRepo: mr,
		resetRepo:  rr,
		tokens:     tokens,
		sender:     sender,
		now:        time.Now,
	}
}

func authUserOf(u *models.User) models.AuthUser {
	return models.AuthUser{ID: u.ID, ChurchID: u.ChurchID, GroupID: u.GroupID, Status: u.Status}
}

func claimsOf(u models.AuthUser) utils.Claims {
	return utils.Claims{
		UserID:   u.ID.String(),
		ChurchID: u.ChurchID.String(),
		GroupID:  u.GroupID.String(),
		Status:   string(u.Status),
	}
}

// Login checks the credentials and issues an access and a refresh token.
func (s *authService) Login(ctx context.Context, req models.Credentials) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := authUserOf(user)
	accessToken, err := s.tokens.GenerateAccessToken(claimsOf(identity))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(utils.Claims{UserID: identity.ID.String()})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{User: identity, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh issues a new access token when the refresh token is valid and still the stored one.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	user, err := s.refreshOwner(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefresh
	}

	identity := authUserOf(user)
	accessToken, err := s.tokens.GenerateAccessToken(claimsOf(identity))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{User: identity, AccessToken: accessToken}, nil
}

// Logout revokes the stored refresh token. Unknown or stale tokens are ignored.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user, err := s.refreshOwner(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			return nil
		}
		return err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *authService) refreshOwner(ctx context.Context, refreshToken string) (*models.User, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("failed to load refresh token owner: %w", err)
	}
	return user, nil
}

// RequestPasswordReset texts a one-time code to the phone number of the member linked to the user.
func (s *authService) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrResetNotAllowed
		}
		return fmt.Errorf("failed to look up user for reset: %w", err)
	}
	member, err := s.memberRepo.GetMemberByID(ctx, user.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrResetNotAllowed
		}
		return fmt.Errorf("failed to look up member for reset: %w", err)
	}
	if sms.NormalizePhoneNumber(member.PhoneNumber) != sms.NormalizePhoneNumber(req.PhoneNumber) {
		return ErrResetNotAllowed
	}

	code, err := newResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}
	if err := s.resetRepo.SaveCode(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	text := sms.FormatMessage(sms.Message{
		Text:      fmt.Sprintf("your password reset code is %s. It expires in %d minutes.", code, int(resetCodeTTL.Minutes())),
		FirstName: member.FirstName,
		AddNames:  true,
	})
	if err := s.sender.Send(ctx, member.PhoneNumber, text); err != nil {
		return fmt.Errorf("%w: %v", ErrSMSDelivery, err)
	}
	return nil
}

// VerifyResetCode checks a code without consuming it.
func (s *authService) VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) error {
	_, err := s.checkResetCode(ctx, req.Username, req.Code)
	return err
}

// ConfirmPasswordReset consumes the code and replaces the password.
func (s *authService) ConfirmPasswordReset(ctx context.Context, req ConfirmPasswordResetRequest) error {
	user, err := s.checkResetCode(ctx, req.Username, req.Code)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		utils.LogWarn(err, "AuthService: reset code not cleared after password change", map[string]interface{}{"user_id": user.ID.String()})
	}
	return nil
}

func (s *authService) checkResetCode(ctx context.Context, username, code string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidResetCode
		}
		return nil, fmt.Errorf("failed to look up user for reset: %w", err)
	}
	reset, err := s.resetRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidResetCode
		}
		return nil, fmt.Errorf("failed to load reset code: %w", err)
	}
	if s.now().Sub(reset.CreatedAt) > resetCodeTTL {
		return nil, ErrInvalidResetCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reset.CodeHash), []byte(code)); err != nil {
		return nil, ErrInvalidResetCode
	}
	return user, nil
}

func newResetCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < resetCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", resetCodeDigits, n.Int64()), nil
}
