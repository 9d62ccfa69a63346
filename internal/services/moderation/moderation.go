// Package moderation реализует рабочий процесс модерации заявок на места:
// списки по статусу, терминальные решения approve/reject и агрегированную
// статистику.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/metrics"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/rabbitmq"
	"github.com/unilocal/unilocal/internal/storage/repository"
)

// StatsCacheKey — ключ кэша счётчиков модерации. Инвалидируется
// при каждой мутации статуса и при создании новой заявки.
const StatsCacheKey = "moderation:stats"

const statsCacheTTL = time.Minute

// ErrNotFound возвращается, если заявка не существует.
var ErrNotFound = errors.New("place not found")

// ErrNotPending возвращается при попытке решения по заявке,
// уже получившей терминальный статус.
var ErrNotPending = errors.New("place is not pending")

// PlaceRepository описывает контракт хранилища заявок.
type PlaceRepository interface {
	ReadPlace(ctx context.Context, id string) (*models.Place, error)
	ListPlacesByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error)
	ListAllPlaces(ctx context.Context) ([]*models.Place, error)
	UpdatePlaceStatus(ctx context.Context, id string, status models.PlaceStatus) (int, error)
	CountPlacesByStatus(ctx context.Context) (*models.ModerationStats, error)
}

// ProfileRepository отдаёт профиль автора заявки для уведомления.
type ProfileRepository interface {
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// Cache кэширует агрегированную статистику.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher публикует уведомления о решениях.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// ModerationService отвечает за списки заявок, решения модератора
// и статистику.
type ModerationService struct {
	places    PlaceRepository
	profiles  ProfileRepository
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// NewModerationService создает новый экземпляр ModerationService.
func NewModerationService(places PlaceRepository, profiles ProfileRepository,
	cache Cache, publisher Publisher, log *slog.Logger) *ModerationService {
	return &ModerationService{
		places:    places,
		profiles:  profiles,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// ListByStatus возвращает заявки с заданным статусом, новые первыми.
func (s *ModerationService) ListByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error) {
	const op = "moderation.ListByStatus"
	if !status.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q", op, status)
	}
	places, err := s.places.ListPlacesByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return places, nil
}

// ListAll возвращает все заявки независимо от статуса, новые первыми.
func (s *ModerationService) ListAll(ctx context.Context) ([]*models.Place, error) {
	const op = "moderation.ListAll"
	places, err := s.places.ListAllPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return places, nil
}

// Approve переводит заявку из Pending в Approved.
func (s *ModerationService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, models.StatusApproved)
}

// Reject переводит заявку из Pending в Rejected.
func (s *ModerationService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, models.StatusRejected)
}

// decide выполняет терминальный переход статуса. Условие status = PENDING
// проверяется самим UPDATE, поэтому два конкурирующих решения не могут
// пройти оба: второе получает ErrNotPending.
func (s *ModerationService) decide(ctx context.Context, id string, status models.PlaceStatus) error {
	const op = "moderation.decide"

	place, err := s.places.ReadPlace(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := s.places.UpdatePlaceStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotPending)
	}

	if err := s.cache.Invalidate(StatsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	metrics.ModerationDecisionsTotal.WithLabelValues(string(status)).Inc()

	s.notifySubmitter(ctx, place, status)

	s.log.Info("moderation decision applied",
		slog.String("place_id", id), slog.String("status", string(status)))
	return nil
}

// notifySubmitter публикует письмо автору заявки. Ошибка уведомления
// не откатывает уже принятое решение.
func (s *ModerationService) notifySubmitter(ctx context.Context, place *models.Place, status models.PlaceStatus) {
	profile, err := s.profiles.GetProfileByUsername(ctx, place.SubmittedBy)
	if err != nil {
		s.log.Warn("failed to resolve submitter profile",
			slog.String("username", place.SubmittedBy), sl.Err(err))
		return
	}

	message := models.DecisionEmail{
		Email:     profile.Email,
		Username:  profile.Username,
		PlaceName: place.Name,
		Status:    status,
	}
	if err := s.publisher.Publish(rabbitmq.ModerationDecisionRoutingKey, message); err != nil {
		s.log.Warn("failed to publish decision notification",
			slog.String("place_id", place.ID), sl.Err(err))
	}
}

// Stats возвращает счётчики заявок по статусам, кэшируя результат.
func (s *ModerationService) Stats(ctx context.Context) (*models.ModerationStats, error) {
	const op = "moderation.Stats"

	var cached models.ModerationStats
	found, err := s.cache.Get(StatsCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read stats cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.places.CountPlacesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(StatsCacheKey, stats, statsCacheTTL); err != nil {
		s.log.Warn("failed to write stats cache", sl.Err(err))
	}
	return stats, nil
}

// GetApprovedPlace возвращает заявку по id, только если она одобрена.
// Неодобренные места для обычных пользователей не существуют.
func (s *ModerationService) GetApprovedPlace(ctx context.Context, id string) (*models.Place, error) {
	const op = "moderation.GetApprovedPlace"

	place, err := s.places.ReadPlace(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if place.Status != models.StatusApproved {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return place, nil
}
