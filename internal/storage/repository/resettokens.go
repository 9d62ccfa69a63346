package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unilocal/unilocal/internal/models"
)

// SaveResetToken сохраняет токен восстановления пароля.
func (s *Storage) SaveResetToken(ctx context.Context, token models.ResetToken) error {
	const op = "storage.SaveResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reset_tokens (token, user_uid, expires_at)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		token.Token, token.UserUID, token.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetResetToken возвращает токен восстановления по значению.
func (s *Storage) GetResetToken(ctx context.Context, token string) (*models.ResetToken, error) {
	const op = "storage.GetResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token, user_uid, expires_at
			  FROM reset_tokens
			  WHERE token = $1`
	t := &models.ResetToken{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&t.Token, &t.UserUID, &t.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
