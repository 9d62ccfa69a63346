package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unilocal/unilocal/internal/models"
)

// ErrUsernameExists возвращается, когда вставка профиля нарушает
// уникальный индекс по username.
var ErrUsernameExists = errors.New("username already exists")

// SaveProfile сохраняет профиль пользователя. Повторное сохранение
// перезаписывает существующий документ.
func (s *Storage) SaveProfile(ctx context.Context, profile models.Profile) error {
	const op = "storage.SaveProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (user_uid, name, username, email, city)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET name = EXCLUDED.name, username = EXCLUDED.username,
			      email = EXCLUDED.email, city = EXCLUDED.city`
	if _, err := s.DB.ExecContext(ctx, query,
		profile.UserUID, profile.Name, profile.Username, profile.Email, profile.City); err != nil {
		// Конфликт по user_uid закрывает ON CONFLICT, так что нарушение
		// уникальности здесь означает занятый username.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrUsernameExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProfile возвращает профиль по UID пользователя.
func (s *Storage) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, name, username, email, city, created_at
			  FROM profiles
			  WHERE user_uid = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&p.UserUID, &p.Name, &p.Username, &p.Email, &p.City, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetProfileByUsername возвращает профиль по имени пользователя.
func (s *Storage) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	const op = "storage.GetProfileByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, name, username, email, city, created_at
			  FROM profiles
			  WHERE username = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&p.UserUID, &p.Name, &p.Username, &p.Email, &p.City, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UsernameExists проверяет, занято ли имя пользователя.
// Проверка выполняется до вставки; уникальный индекс в схеме закрывает гонку.
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	const op = "storage.UsernameExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
