package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"github.com/bitebakers/brownie-backend/pkg/mailer"
	"github.com/bitebakers/brownie-backend/pkg/redis"
	"github.com/bitebakers/brownie-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists       = errors.New("email is already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailNotVerified         = errors.New("email address has not been verified")
	ErrUserNotFound             = errors.New("user not found")
	ErrAlreadyVerified          = errors.New("email is already verified")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrInvalidResetToken        = errors.New("invalid or expired reset token")
	ErrVerificationEmailFailed  = errors.New("could not send verification email")
	ErrGoogleTokenInvalid       = errors.New("invalid Google credential")
	ErrInvalidRole              = errors.New("invalid user role")
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// GoogleProfile is the subset of a verified Google identity the
// storefront cares about.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier validates a Google ID token and returns the profile it
// asserts.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	VerifyEmail(token string) (*model.User, error)
	ResendVerification(email string) error
	Login(email, password string) (*model.User, *util.TokenPair, error)
	GoogleSignIn(ctx context.Context, idToken string) (*model.User, *util.TokenPair, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error)
	ListUsers(limit, offset int) ([]model.User, int64, error)
	UpdateUserRole(userID uint, role model.UserRole) (*model.User, error)
	DeleteUser(userID uint) error
	Logout(ctx context.Context, tokenString string) error
}

type authService struct {
	userRepo      repository.UserRepository
	notifications NotificationService
	mail          mailer.Mailer
	google        GoogleVerifier
	jwtCfg        config.JWTConfig
	frontendURL   string
}

func NewAuthService(
	userRepo repository.UserRepository,
	notifications NotificationService,
	mail mailer.Mailer,
	google GoogleVerifier,
	jwtCfg config.JWTConfig,
	frontendURL string,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		notifications: notifications,
		mail:          mail,
		google:        google,
		jwtCfg:        jwtCfg,
		frontendURL:   frontendURL,
	}
}

// Register creates an unverified account and emails the verification
// link. If the email cannot be sent the account is rolled back, so the
// address stays free for a retry.
func (s *authService) Register(input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(verificationTokenTTL)
	user := &model.User{
		Email:                   email,
		PasswordHash:            hash,
		Name:                    input.Name,
		Phone:                   input.Phone,
		Role:                    model.RoleCustomer,
		VerificationToken:       util.GenerateOpaqueToken(),
		VerificationTokenExpiry: &expiry,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	subject, body := mailer.VerificationEmail(s.frontendURL, user.VerificationToken)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		logger.Error("Verification email failed, rolling back registration", err, map[string]interface{}{
			"email": user.Email,
		})
		if deleteErr := s.userRepo.HardDelete(user.ID); deleteErr != nil {
			logger.Error("Failed to roll back unverifiable registration", deleteErr, map[string]interface{}{
				"user_id": user.ID,
			})
		}
		return nil, ErrVerificationEmailFailed
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	s.notifications.NotifyNewUser(user)

	return user, nil
}

func (s *authService) VerifyEmail(token string) (*model.User, error) {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerificationToken
		}
		return nil, err
	}
	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return nil, ErrInvalidVerificationToken
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiry = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("Email verified", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

func (s *authService) ResendVerification(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	expiry := time.Now().Add(verificationTokenTTL)
	user.VerificationToken = util.GenerateOpaqueToken()
	user.VerificationTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	subject, body := mailer.VerificationEmail(s.frontendURL, user.VerificationToken)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		logger.Error("Failed to resend verification email", err, map[string]interface{}{
			"email": user.Email,
		})
		return ErrVerificationEmailFailed
	}
	return nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, nil, ErrEmailNotVerified
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{"user_id": user.ID})
	return user, tokens, nil
}

// GoogleSignIn signs a shopper in with a verified Google identity,
// creating the account on first sight. Google accounts skip email
// verification.
func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (*model.User, *util.TokenPair, error) {
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		logger.Warn("Google credential rejected", map[string]interface{}{"error": err.Error()})
		return nil, nil, ErrGoogleTokenInvalid
	}

	user, err := s.userRepo.FindByGoogleID(profile.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link to an existing password account with the same address,
		// or create a fresh one.
		user, err = s.userRepo.FindByEmail(strings.ToLower(profile.Email))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				Email:      strings.ToLower(profile.Email),
				Name:       profile.Name,
				Role:       model.RoleCustomer,
				IsVerified: true,
				GoogleID:   profile.Subject,
				// Random filler; Google accounts never log in by password.
				PasswordHash: util.GenerateOpaqueToken(),
			}
			if err := s.userRepo.Create(user); err != nil {
				return nil, nil, err
			}
			s.notifications.NotifyNewUser(user)
		} else if err != nil {
			return nil, nil, err
		} else {
			user.GoogleID = profile.Subject
			user.IsVerified = true
			if err := s.userRepo.Update(user); err != nil {
				return nil, nil, err
			}
		}
	} else if err != nil {
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// ForgotPassword issues a reset token and emails the link. An unknown
// address is not an error: the endpoint answers the same either way.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	user.ResetToken = util.GenerateOpaqueToken()
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	subject, body := mailer.PasswordResetEmail(s.frontendURL, user.ResetToken)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"email": user.Email,
		})
	}
	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	logger.Info("Password reset", map[string]interface{}{"user_id": user.ID})
	return nil
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers(limit, offset int) ([]model.User, int64, error) {
	return s.userRepo.FindAll(limit, offset)
}

func (s *authService) UpdateUserRole(userID uint, role model.UserRole) (*model.User, error) {
	if role != model.RoleCustomer && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User role changed", map[string]interface{}{
		"user_id": user.ID,
		"role":    role,
	})
	return user, nil
}

func (s *authService) DeleteUser(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(userID)
}

// Logout blacklists the access token for the remainder of its lifetime.
// Without Redis configured this is a no-op and tokens simply age out.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := util.ValidateToken(tokenString, s.jwtCfg.Secret)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	if err := redis.BlacklistToken(ctx, tokenString, remaining); err != nil {
		logger.Error("Failed to blacklist token on logout", err, nil)
		return err
	}
	return nil
}
