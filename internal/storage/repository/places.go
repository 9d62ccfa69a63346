package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unilocal/unilocal/internal/models"
)

// CreatePlace сохраняет новую заявку на место.
func (s *Storage) CreatePlace(ctx context.Context, place models.Place) error {
	const op = "storage.CreatePlace"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	photos, err := json.Marshal(place.Photos)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO places (id, name, category, description, address, phone, website,
			      weekday_open, weekday_close, saturday_open, saturday_close,
			      sunday_open, sunday_close, photos, submitted_by, submitted_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	if _, err := s.DB.ExecContext(ctx, query,
		place.ID, place.Name, place.Category, place.Description,
		place.Address, place.Phone, place.Website,
		place.Hours.WeekdayOpen, place.Hours.WeekdayClose,
		place.Hours.SaturdayOpen, place.Hours.SaturdayClose,
		place.Hours.SundayOpen, place.Hours.SundayClose,
		photos, place.SubmittedBy, place.SubmittedDate, place.Status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadPlace возвращает заявку по идентификатору.
func (s *Storage) ReadPlace(ctx context.Context, id string) (*models.Place, error) {
	const op = "storage.ReadPlace"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := selectPlace + ` WHERE id = $1`
	place, err := scanPlace(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return place, nil
}

// ListPlacesByStatus возвращает заявки с заданным статусом, новые первыми.
func (s *Storage) ListPlacesByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error) {
	const op = "storage.ListPlacesByStatus"
	query := selectPlace + ` WHERE status = $1 ORDER BY submitted_date DESC`
	return s.listPlaces(ctx, op, query, string(status))
}

// ListAllPlaces возвращает все заявки, новые первыми.
func (s *Storage) ListAllPlaces(ctx context.Context) ([]*models.Place, error) {
	const op = "storage.ListAllPlaces"
	query := selectPlace + ` ORDER BY submitted_date DESC`
	return s.listPlaces(ctx, op, query)
}

// UpdatePlaceStatus переводит заявку из Pending в новый статус.
// Возвращает количество обновлённых строк: 0 означает, что заявка
// отсутствует либо уже получила терминальный статус.
func (s *Storage) UpdatePlaceStatus(ctx context.Context, id string, status models.PlaceStatus) (int, error) {
	const op = "storage.UpdatePlaceStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE places
			  SET status = $1
			  WHERE id = $2 AND status = $3`
	res, err := s.DB.ExecContext(ctx, query, status, id, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// CountPlacesByStatus пересчитывает агрегированные счётчики заявок.
func (s *Storage) CountPlacesByStatus(ctx context.Context) (*models.ModerationStats, error) {
	const op = "storage.CountPlacesByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*) FILTER (WHERE status = 'PENDING'),
			      COUNT(*) FILTER (WHERE status = 'APPROVED'),
			      COUNT(*) FILTER (WHERE status = 'REJECTED')
			  FROM places`
	stats := &models.ModerationStats{}
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&stats.PendingCount, &stats.ApprovedCount, &stats.RejectedCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

const selectPlace = `SELECT id, name, category, description, address, phone, website,
			      weekday_open, weekday_close, saturday_open, saturday_close,
			      sunday_open, sunday_close, photos, submitted_by, submitted_date, status
			  FROM places`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(row rowScanner) (*models.Place, error) {
	p := &models.Place{}
	var photos []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description,
		&p.Address, &p.Phone, &p.Website,
		&p.Hours.WeekdayOpen, &p.Hours.WeekdayClose,
		&p.Hours.SaturdayOpen, &p.Hours.SaturdayClose,
		&p.Hours.SundayOpen, &p.Hours.SundayClose,
		&photos, &p.SubmittedBy, &p.SubmittedDate, &p.Status); err != nil {
		return nil, err
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &p.Photos); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *Storage) listPlaces(ctx context.Context, op, query string, args ...any) ([]*models.Place, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, place)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
