package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"church_backend/internal/models"
	"church_backend/internal/repositories"
	"church_backend/internal/sms"
	"church_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() *utils.TokenManager {
	return utils.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func userWithPassword(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID: uuid.New(), Username: "kwame", PasswordHash: string(hash), Status: models.StatusChurchPastor,
		MemberID: uuid.New(), ChurchID: uuid.New(), GroupID: uuid.New(),
	}
}

func TestLogin_IssuesTokensAndStoresRefresh(t *testing.T) {
	user := userWithPassword(t, "correct horse")
	users := new(mockUserRepo)
	users.On("GetUserByUsername", mock.Anything, "kwame").Return(user, nil)
	users.On("SetRefreshToken", mock.Anything, user.ID, mock.AnythingOfType("*string")).Return(nil)
	tokens := testTokens()

	resp, err := NewAuthService(users, new(mockMemberRepo), new(mockResetRepo), tokens, sms.NewConsoleSender()).
		Login(context.Background(), models.Credentials{Username: " kwame ", Password: "correct horse"})

	require.NoError(t, err)
	assert.Equal(t, user.ChurchID, resp.User.ChurchID)
	assert.Equal(t, models.StatusChurchPastor, resp.User.Status)
	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, string(models.StatusChurchPastor), claims.Status)
	_, err = tokens.ValidateRefreshToken(resp.RefreshToken)
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := userWithPassword(t, "correct horse")
	users := new(mockUserRepo)
	users.On("GetUserByUsername", mock.Anything, "kwame").Return(user, nil)

	_, err := NewAuthService(users, new(mockMemberRepo), new(mockResetRepo), testTokens(), sms.NewConsoleSender()).
		Login(context.Background(), models.Credentials{Username: "kwame", Password: "battery staple"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrNotFound)

	_, err := NewAuthService(users, new(mockMemberRepo), new(mockResetRepo), testTokens(), sms.NewConsoleSender()).
		Login(context.Background(), models.Credentials{Username: "ghost", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RejectsRotatedToken(t *testing.T) {
	tokens := testTokens()
	user := userWithPassword(t, "pw")
	stale, err := tokens.GenerateRefreshToken(utils.Claims{UserID: user.ID.String()})
	require.NoError(t, err)
	user.RefreshToken = strp("a-newer-token")

	users := new(mockUserRepo)
	users.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	_, err = NewAuthService(users, new(mockMemberRepo), new(mockResetRepo), tokens, sms.NewConsoleSender()).
		Refresh(context.Background(), stale)

	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_GarbageToken(t *testing.T) {
	_, err := NewAuthService(new(mockUserRepo), new(mockMemberRepo), new(mockResetRepo), testTokens(), sms.NewConsoleSender()).
		Refresh(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLogout_RevokesStoredToken(t *testing.T) {
	tokens := testTokens()
	user := userWithPassword(t, "pw")
	token, err := tokens.GenerateRefreshToken(utils.Claims{UserID: user.ID.String()})
	require.NoError(t, err)
	user.RefreshToken = &token

	users := new(mockUserRepo)
	users.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)
	users.On("SetRefreshToken", mock.Anything, user.ID, (*string)(nil)).Return(nil)

	err = NewAuthService(users, new(mockMemberRepo), new(mockResetRepo), tokens, sms.NewConsoleSender()).
		Logout(context.Background(), token)

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestRequestPasswordReset_TextsCodeToMemberPhone(t *testing.T) {
	user := userWithPassword(t, "pw")
	member := &models.Member{ID: user.MemberID, FirstName: "kwame", PhoneNumber: "0244123456"}
	users := new(mockUserRepo)
	members := new(mockMemberRepo)
	resets := new(mockResetRepo)
	sender := sms.NewConsoleSender()
	users.On("GetUserByUsername", mock.Anything, "kwame").Return(user, nil)
	members.On("GetMemberByID", mock.Anything, member.ID).Return(member, nil)
	resets.On("SaveCode", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	err := NewAuthService(users, members, resets, testTokens(), sender).RequestPasswordReset(context.Background(),
		PasswordResetRequest{Username: "kwame", PhoneNumber: "233244123456"})

	require.NoError(t, err)
	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "233244123456", sent[0].To)
	code := regexp.MustCompile(`\d{6}`).FindString(sent[0].Text)
	require.NotEmpty(t, code)

	savedHash := resets.Calls[0].Arguments.String(2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedHash), []byte(code)))
}

func TestRequestPasswordReset_PhoneMismatch(t *testing.T) {
	user := userWithPassword(t, "pw")
	users := new(mockUserRepo)
	members := new(mockMemberRepo)
	resets := new(mockResetRepo)
	users.On("GetUserByUsername", mock.Anything, "kwame").Return(user, nil)
	members.On("GetMemberByID", mock.Anything, user.MemberID).Return(&models.Member{PhoneNumber: "0244123456"}, nil)

	err := NewAuthService(users, members, resets, testTokens(), sms.NewConsoleSender()).RequestPasswordReset(context.Background(),
		PasswordResetRequest{Username: "kwame", PhoneNumber: "0200000000"})

	assert.ErrorIs(t, err, ErrResetNotAllowed)
	resets.AssertNotCalled(t, "SaveCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPasswordReset(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user := userWithPassword(t, "old")
	codeHash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)

	newService := func(issuedAt time.Time) (*authService, *mockUserRepo, *mockResetRepo) {
		users := new(mockUserRepo)
		resets := new(mockResetRepo)
		users.On("GetUserByUsername", mock.Anything, "kwame").Return(user, nil)
		resets.On("GetByUserID", mock.Anything, user.ID).
			Return(&models.PasswordReset{UserID: user.ID, CodeHash: string(codeHash), CreatedAt: issuedAt}, nil)
		svc := NewAuthService(users, new(mockMemberRepo), resets, testTokens(), sms.NewConsoleSender()).(*authService)
		svc.now = func() time.Time { return now }
		return svc, users, resets
	}

	t.Run("valid code replaces password", func(t *testing.T) {
		svc, users, resets := newService(now.Add(-5 * time.Minute))
		users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)
		resets.On("DeleteByUserID", mock.Anything, user.ID).Return(nil)

		err := svc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetRequest{Username: "kwame", Code: "123456", NewPassword: "brand-new-pass"})

		require.NoError(t, err)
		hash := users.Calls[1].Arguments.String(2)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("brand-new-pass")))
		resets.AssertExpectations(t)
	})

	t.Run("expired code", func(t *testing.T) {
		svc, _, _ := newService(now.Add(-11 * time.Minute))

		err := svc.VerifyResetCode(context.Background(), VerifyResetCodeRequest{Username: "kwame", Code: "123456"})

		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})

	t.Run("wrong code", func(t *testing.T) {
		svc, _, _ := newService(now.Add(-time.Minute))

		err := svc.VerifyResetCode(context.Background(), VerifyResetCodeRequest{Username: "kwame", Code: "654321"})

		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})
}
