package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"LithiumHedge/internal/domain/models"
)

// Create inserts a new user. Duplicate username or email maps to
// models.ErrUserExists.
func (s *SQLiteStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, active)
		 VALUES (?, ?, ?, ?, ?, 1)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.ErrUserExists
		}
		return fmt.Errorf("%w: insert user: %v", models.ErrPersistence, err)
	}
	return nil
}

// ByID looks a user up by id.
func (s *SQLiteStore) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, last_login, active
		 FROM users WHERE id = ?`, id))
}

// ByUsername looks a user up by username.
func (s *SQLiteStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, last_login, active
		 FROM users WHERE username = ?`, username))
}

// ByEmail looks a user up by email.
func (s *SQLiteStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, last_login, active
		 FROM users WHERE email = ?`, email))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	var active int
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &lastLogin, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan user: %v", models.ErrPersistence, err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	u.Active = active != 0
	return &u, nil
}

// UpdatePassword replaces the stored hash.
func (s *SQLiteStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("%w: update password: %v", models.ErrPersistence, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TouchLogin records a successful login time.
func (s *SQLiteStore) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`, at, userID)
	if err != nil {
		return fmt.Errorf("%w: touch login: %v", models.ErrPersistence, err)
	}
	return nil
}

// Settings returns the user's saved defaults, falling back to the standard
// defaults when none were saved yet.
func (s *SQLiteStore) Settings(ctx context.Context, userID string) (models.UserSettings, error) {
	var out models.UserSettings
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, default_cost_price, default_inventory, default_hedge_ratio, theme_color
		 FROM user_settings WHERE user_id = ?`, userID).
		Scan(&out.UserID, &out.DefaultCostPrice, &out.DefaultInventory, &out.DefaultHedgeRatio, &out.ThemeColor)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultUserSettings(userID), nil
	}
	if err != nil {
		return out, fmt.Errorf("%w: load settings: %v", models.ErrPersistence, err)
	}
	return out, nil
}

// SaveSettings upserts per-user defaults.
func (s *SQLiteStore) SaveSettings(ctx context.Context, st models.UserSettings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, default_cost_price, default_inventory, default_hedge_ratio, theme_color)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			default_cost_price = excluded.default_cost_price,
			default_inventory = excluded.default_inventory,
			default_hedge_ratio = excluded.default_hedge_ratio,
			theme_color = excluded.theme_color`,
		st.UserID, st.DefaultCostPrice, st.DefaultInventory, st.DefaultHedgeRatio, st.ThemeColor)
	if err != nil {
		return fmt.Errorf("%w: save settings: %v", models.ErrPersistence, err)
	}
	return nil
}
