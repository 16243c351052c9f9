package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	applogger "LithiumHedge/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig are the account-handling knobs.
type AuthConfig struct {
	BcryptCost   int
	SessionTTL   time.Duration
	ResetCodeTTL time.Duration
}

// Auth implements registration, login, password lifecycle and settings.
type Auth struct {
	users    repository.UserStore
	codes    repository.CodeStore
	sessions repository.SessionStore
	logger   *applogger.Logger
	cfg      AuthConfig
}

// NewAuth wires the account service.
func NewAuth(
	users repository.UserStore,
	codes repository.CodeStore,
	sessions repository.SessionStore,
	logger *applogger.Logger,
	cfg AuthConfig,
) *Auth {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.ResetCodeTTL <= 0 {
		cfg.ResetCodeTTL = time.Hour
	}
	return &Auth{users: users, codes: codes, sessions: sessions, logger: logger, cfg: cfg}
}

// Register creates an account with default settings.
// Format constraints (username length, email shape, password length) are
// enforced at bind time; uniqueness is enforced here.
func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := a.users.SaveSettings(ctx, models.DefaultUserSettings(user.ID)); err != nil {
		a.logger.Warn("default settings save failed",
			applogger.String("user_id", user.ID), applogger.Error(err))
	}

	a.logger.Info("user registered", applogger.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and opens a session.
func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	user, err := a.users.ByUsername(ctx, req.Username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, models.ErrBadCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.ErrBadCredentials
	}

	now := time.Now().UTC()
	if err := a.users.TouchLogin(ctx, user.ID, now); err != nil {
		a.logger.Warn("last login update failed", applogger.Error(err))
	}

	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: now.Add(a.cfg.SessionTTL),
	}
	if err := a.sessions.Put(ctx, sess, a.cfg.SessionTTL); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Logout drops the session.
func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Drop(ctx, token)
}

// Resolve maps a bearer token to its session.
func (a *Auth) Resolve(ctx context.Context, token string) (*models.Session, error) {
	return a.sessions.Get(ctx, token)
}

// ChangePassword verifies the old password and stores a new hash.
func (a *Auth) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	user, err := a.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return models.ErrBadCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), a.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.users.UpdatePassword(ctx, user.ID, string(hash))
}

// RequestResetCode issues a 6-digit single-use code for the email.
// The code is returned to the caller for delivery; an account that does not
// exist yields ErrNotFound so the handler can decide what to disclose.
func (a *Auth) RequestResetCode(ctx context.Context, email string) (string, error) {
	if _, err := a.users.ByEmail(ctx, email); err != nil {
		return "", err
	}

	code, err := sixDigitCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	if err := a.codes.Put(ctx, email, code, a.cfg.ResetCodeTTL); err != nil {
		return "", err
	}
	return code, nil
}

// ResetPassword redeems a code and replaces the password.
func (a *Auth) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	ok, err := a.codes.Redeem(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrCodeInvalid
	}

	user, err := a.users.ByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), a.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return a.users.UpdatePassword(ctx, user.ID, string(hash))
}

// Settings returns the user's calculation defaults.
func (a *Auth) Settings(ctx context.Context, userID string) (models.UserSettings, error) {
	return a.users.Settings(ctx, userID)
}

// SaveSettings stores the user's calculation defaults.
func (a *Auth) SaveSettings(ctx context.Context, userID string, req models.SettingsRequest) (models.UserSettings, error) {
	s := models.UserSettings{
		UserID:            userID,
		DefaultCostPrice:  req.DefaultCostPrice,
		DefaultInventory:  req.DefaultInventory,
		DefaultHedgeRatio: req.DefaultHedgeRatio,
		ThemeColor:        req.ThemeColor,
	}
	if err := a.users.SaveSettings(ctx, s); err != nil {
		return models.UserSettings{}, err
	}
	return s, nil
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
