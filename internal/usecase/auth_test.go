package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"LithiumHedge/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (*Auth, *fakeUserStore, *fakeCodeStore, *fakeSessionStore) {
	t.Helper()
	users := newFakeUserStore()
	codes := newFakeCodeStore()
	sessions := newFakeSessionStore()
	auth := NewAuth(users, codes, sessions, testLogger(t), AuthConfig{
		BcryptCost:   bcrypt.MinCost,
		SessionTTL:   time.Hour,
		ResetCodeTTL: time.Minute,
	})
	return auth, users, codes, sessions
}

func register(t *testing.T, auth *Auth) *models.User {
	t.Helper()
	user, err := auth.Register(context.Background(), models.RegisterRequest{
		Username: "trader", Email: "trader@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestAuthRegisterAndLogin(t *testing.T) {
	auth, users, _, _ := newAuth(t)
	user := register(t, auth)

	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if got := users.settings[user.ID]; got.DefaultHedgeRatio != 0.8 {
		t.Errorf("default settings not created: %+v", got)
	}

	sess, err := auth.Login(context.Background(), models.LoginRequest{Username: "trader", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.UserID != user.ID || sess.Token == "" {
		t.Errorf("session = %+v", sess)
	}

	resolved, err := auth.Resolve(context.Background(), sess.Token)
	if err != nil || resolved.UserID != user.ID {
		t.Fatalf("Resolve = %+v, %v", resolved, err)
	}

	if err := auth.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := auth.Resolve(context.Background(), sess.Token); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("resolve after logout: %v", err)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	register(t, auth)

	_, err := auth.Register(context.Background(), models.RegisterRequest{
		Username: "trader", Email: "other@example.com", Password: "secret2",
	})
	if !errors.Is(err, models.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	register(t, auth)

	cases := []models.LoginRequest{
		{Username: "trader", Password: "wrong"},
		{Username: "nobody", Password: "secret1"},
	}
	for _, req := range cases {
		if _, err := auth.Login(context.Background(), req); !errors.Is(err, models.ErrBadCredentials) {
			t.Errorf("login %s: err = %v, want ErrBadCredentials", req.Username, err)
		}
	}
}

func TestAuthLoginInactive(t *testing.T) {
	auth, users, _, _ := newAuth(t)
	user := register(t, auth)
	users.users[user.ID].Active = false

	if _, err := auth.Login(context.Background(), models.LoginRequest{Username: "trader", Password: "secret1"}); !errors.Is(err, models.ErrBadCredentials) {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
}

func TestAuthChangePassword(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	user := register(t, auth)

	err := auth.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newsecret",
	})
	if !errors.Is(err, models.ErrBadCredentials) {
		t.Fatalf("wrong old password: err = %v", err)
	}

	err = auth.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		OldPassword: "secret1", NewPassword: "newsecret",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := auth.Login(context.Background(), models.LoginRequest{Username: "trader", Password: "secret1"}); !errors.Is(err, models.ErrBadCredentials) {
		t.Error("old password still accepted")
	}
	if _, err := auth.Login(context.Background(), models.LoginRequest{Username: "trader", Password: "newsecret"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestAuthResetCodeSingleUse(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	register(t, auth)

	code, err := auth.RequestResetCode(context.Background(), "trader@example.com")
	if err != nil {
		t.Fatalf("RequestResetCode: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code = %q, want six digits", code)
	}

	req := models.ResetPasswordRequest{Email: "trader@example.com", Code: code, NewPassword: "resetpass"}
	if err := auth.ResetPassword(context.Background(), req); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := auth.Login(context.Background(), models.LoginRequest{Username: "trader", Password: "resetpass"}); err != nil {
		t.Fatalf("login after reset: %v", err)
	}

	// Same code again must fail.
	if err := auth.ResetPassword(context.Background(), req); !errors.Is(err, models.ErrCodeInvalid) {
		t.Fatalf("reused code: err = %v, want ErrCodeInvalid", err)
	}
}

func TestAuthResetCodeUnknownEmail(t *testing.T) {
	auth, _, _, _ := newAuth(t)

	if _, err := auth.RequestResetCode(context.Background(), "nobody@example.com"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAuthResetWrongCode(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	register(t, auth)

	if _, err := auth.RequestResetCode(context.Background(), "trader@example.com"); err != nil {
		t.Fatalf("RequestResetCode: %v", err)
	}
	err := auth.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Email: "trader@example.com", Code: "000000", NewPassword: "resetpass",
	})
	if !errors.Is(err, models.ErrCodeInvalid) {
		t.Fatalf("err = %v, want ErrCodeInvalid", err)
	}
}

func TestAuthSettings(t *testing.T) {
	auth, _, _, _ := newAuth(t)
	user := register(t, auth)

	saved, err := auth.SaveSettings(context.Background(), user.ID, models.SettingsRequest{
		DefaultCostPrice: 150000, DefaultInventory: 200, DefaultHedgeRatio: 0.5, ThemeColor: "dark",
	})
	if err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if saved.DefaultCostPrice != 150000 || saved.ThemeColor != "dark" {
		t.Errorf("saved = %+v", saved)
	}

	got, err := auth.Settings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if got != saved {
		t.Errorf("settings = %+v, want %+v", got, saved)
	}
}
