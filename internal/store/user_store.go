package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// EnsureUser returns the single local user, creating it on first run.
func (s *SQLiteStore) EnsureUser(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM users ORDER BY created_at LIMIT 1").Scan(
		&user.ID, &user.Name, &user.CreatedAt,
	)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user = model.User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)",
		user.ID, user.Name, user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM users WHERE id = ?", id).Scan(
		&user.ID, &user.Name, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &user, nil
}
