package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/util"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
	}
}

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB, *stubMailer, *stubGoogleVerifier) {
	testDB := setupTestDB(t)
	mail := &stubMailer{}
	google := &stubGoogleVerifier{}

	authService := NewAuthService(
		repository.NewUserRepository(testDB),
		newTestNotificationService(testDB),
		mail,
		google,
		testJWTConfig(),
		"http://localhost:3000",
	)
	return authService, testDB, mail, google
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, testDB, mail, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:    "  Baker@Example.com ",
		Password: "secret123",
		Name:     "Bea Baker",
		Phone:    "09170000001",
	})
	require.NoError(t, err)

	assert.Equal(t, "baker@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerificationToken)
	require.NotNil(t, user.VerificationTokenExpiry)
	assert.True(t, util.VerifyPassword(user.PasswordHash, "secret123"))

	require.Equal(t, 1, mail.sentCount())
	assert.Equal(t, "baker@example.com", mail.lastMail().To)
	assert.Contains(t, mail.lastMail().Body, user.VerificationToken)

	var count int64
	testDB.Model(&model.Notification{}).Where("type = ?", model.NotificationTypeNewUser).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	input := RegisterInput{Email: "baker@example.com", Password: "secret123", Name: "Bea"}
	_, err := authService.Register(input)
	require.NoError(t, err)

	_, err = authService.Register(input)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_MailFailureRollsBack(t *testing.T) {
	authService, testDB, mail, _ := setupAuthServiceTest(t)

	mail.failNext = true
	_, err := authService.Register(RegisterInput{
		Email:    "baker@example.com",
		Password: "secret123",
		Name:     "Bea",
	})
	assert.ErrorIs(t, err, ErrVerificationEmailFailed)

	// The address stays free so the shopper can retry
	var count int64
	testDB.Model(&model.User{}).Where("email = ?", "baker@example.com").Count(&count)
	assert.Zero(t, count)

	_, err = authService.Register(RegisterInput{
		Email:    "baker@example.com",
		Password: "secret123",
		Name:     "Bea",
	})
	assert.NoError(t, err)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	verified, err := authService.VerifyEmail(user.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.VerificationToken)

	// The consumed token no longer works
	_, err = authService.VerifyEmail(user.VerificationToken)
	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestAuthService_VerifyEmail_ExpiredToken(t *testing.T) {
	authService, testDB, _, _ := setupAuthServiceTest(t)

	expired := time.Now().Add(-time.Minute)
	user := &model.User{
		Email: "stale@example.com", PasswordHash: "h", Name: "S", Role: model.RoleCustomer,
		VerificationToken: "stale-token", VerificationTokenExpiry: &expired,
	}
	testDB.Create(user)

	_, err := authService.VerifyEmail("stale-token")
	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestAuthService_ResendVerification(t *testing.T) {
	authService, _, mail, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)
	firstToken := user.VerificationToken

	require.NoError(t, authService.ResendVerification("baker@example.com"))
	assert.Equal(t, 2, mail.sentCount())
	assert.NotContains(t, mail.lastMail().Body, firstToken)

	assert.ErrorIs(t, authService.ResendVerification("ghost@example.com"), ErrUserNotFound)

	_, err = authService.VerifyEmail(mustTokenFor(t, authService, "baker@example.com"))
	require.NoError(t, err)
	assert.ErrorIs(t, authService.ResendVerification("baker@example.com"), ErrAlreadyVerified)
}

// mustTokenFor fetches the current verification token straight from the
// profile lookup path.
func mustTokenFor(t *testing.T, authService AuthService, email string) string {
	t.Helper()
	users, _, err := authService.ListUsers(100, 0)
	require.NoError(t, err)
	for i := range users {
		if users[i].Email == email {
			return users[i].VerificationToken
		}
	}
	t.Fatalf("no user with email %s", email)
	return ""
}

func TestAuthService_Login(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	// Unverified accounts with the right password are told why
	_, _, err = authService.Login("baker@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = authService.VerifyEmail(user.VerificationToken)
	require.NoError(t, err)

	loggedIn, tokens, err := authService.Login("baker@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, tokens)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret-key")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)

	_, _, err = authService.Login("baker@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GoogleSignIn_CreatesVerifiedUser(t *testing.T) {
	authService, testDB, _, google := setupAuthServiceTest(t)
	google.profile = &GoogleProfile{Subject: "google-sub-1", Email: "GBaker@Example.com", Name: "G Baker"}

	user, tokens, err := authService.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "gbaker@example.com", user.Email)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "google-sub-1", user.GoogleID)
	assert.NotNil(t, tokens)

	// Second sign-in finds the same account
	again, _, err := authService.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_GoogleSignIn_LinksExistingAccount(t *testing.T) {
	authService, _, _, google := setupAuthServiceTest(t)

	registered, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	google.profile = &GoogleProfile{Subject: "google-sub-2", Email: "baker@example.com", Name: "Bea"}
	linked, _, err := authService.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, linked.ID)
	assert.Equal(t, "google-sub-2", linked.GoogleID)
	assert.True(t, linked.IsVerified)
}

func TestAuthService_GoogleSignIn_RejectedToken(t *testing.T) {
	authService, _, _, google := setupAuthServiceTest(t)
	google.err = errors.New("aud mismatch")

	_, _, err := authService.GoogleSignIn(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	authService, testDB, mail, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)
	_, err = authService.VerifyEmail(user.VerificationToken)
	require.NoError(t, err)

	require.NoError(t, authService.ForgotPassword("baker@example.com"))

	var stored model.User
	testDB.First(&stored, user.ID)
	require.NotEmpty(t, stored.ResetToken)
	assert.Contains(t, mail.lastMail().Body, stored.ResetToken)

	require.NoError(t, authService.ResetPassword(stored.ResetToken, "newpass456"))

	_, _, err = authService.Login("baker@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = authService.Login("baker@example.com", "newpass456")
	assert.NoError(t, err)

	// The consumed token no longer resets anything
	assert.ErrorIs(t, authService.ResetPassword(stored.ResetToken, "x"), ErrInvalidResetToken)
}

func TestAuthService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	authService, _, mail, _ := setupAuthServiceTest(t)

	assert.NoError(t, authService.ForgotPassword("ghost@example.com"))
	assert.Zero(t, mail.sentCount())
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea", Phone: "09170000001",
	})
	require.NoError(t, err)

	name := "Beatrice Baker"
	updated, err := authService.UpdateProfile(user.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Beatrice Baker", updated.Name)
	// Fields left nil stay untouched
	assert.Equal(t, "09170000001", updated.Phone)

	_, err = authService.UpdateProfile(9999, UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateUserRole(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	promoted, err := authService.UpdateUserRole(user.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	_, err = authService.UpdateUserRole(user.ID, model.UserRole("owner"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = authService.UpdateUserRole(9999, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_DeleteUser(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	require.NoError(t, authService.DeleteUser(user.ID))

	_, err = authService.GetProfile(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, authService.DeleteUser(user.ID), ErrUserNotFound)
}

func TestAuthService_GetProfile(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email: "baker@example.com", Password: "secret123", Name: "Bea",
	})
	require.NoError(t, err)

	profile, err := authService.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)

	_, err = authService.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
