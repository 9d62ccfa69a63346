// Package draft реализует серверное состояние трёхшагового мастера подачи
// места: черновик хранится в Redis по имени пользователя и превращается
// в заявку со статусом Pending при отправке.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/metrics"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/moderation"
)

// draftTTL — время жизни незавершённого черновика.
const draftTTL = 24 * time.Hour

// Количество шагов мастера: данные, контакты, просмотр.
const (
	firstStep = 1
	lastStep  = 3
)

// ErrIncompleteStep возвращается при попытке перейти дальше первого шага
// без названия, категории или описания.
var ErrIncompleteStep = errors.New("step requires name, category and description")

// ErrUnknownCategory возвращается при категории вне допустимого списка.
var ErrUnknownCategory = errors.New("unknown place category")

// ErrNotReady возвращается при отправке заявки не с шага просмотра.
var ErrNotReady = errors.New("draft is not on the review step")

// PlaceCreator сохраняет готовую заявку в хранилище.
type PlaceCreator interface {
	CreatePlace(ctx context.Context, place models.Place) error
}

// Cache хранит черновики между запросами.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// DraftService отвечает за черновики мастера подачи места.
type DraftService struct {
	places PlaceCreator
	cache  Cache
	log    *slog.Logger
}

// NewDraftService создает новый экземпляр DraftService.
func NewDraftService(places PlaceCreator, cache Cache, log *slog.Logger) *DraftService {
	return &DraftService{places: places, cache: cache, log: log}
}

func draftKey(username string) string {
	return "draft:" + username
}

// Get возвращает текущий черновик пользователя, создавая пустой
// черновик на первом шаге, если его ещё нет.
func (s *DraftService) Get(_ context.Context, username string) (*models.PlaceDraft, error) {
	const op = "draft.Get"

	var draft models.PlaceDraft
	found, err := s.cache.Get(draftKey(username), &draft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		draft = models.PlaceDraft{Step: firstStep}
	}
	return &draft, nil
}

// SaveStep1 записывает основные данные места в черновик.
func (s *DraftService) SaveStep1(ctx context.Context, username string, data models.DummyDraftStep1) (*models.PlaceDraft, error) {
	const op = "draft.SaveStep1"

	if !models.ValidCategory(data.Category) {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownCategory)
	}

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	draft.Name = data.Name
	draft.Category = data.Category
	draft.Description = data.Description

	if err := s.save(username, draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// SaveStep2 записывает контакты и часы работы в черновик.
func (s *DraftService) SaveStep2(ctx context.Context, username string, data models.DummyDraftStep2) (*models.PlaceDraft, error) {
	const op = "draft.SaveStep2"

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	draft.Address = data.Address
	draft.Phone = data.Phone
	draft.Website = data.Website
	draft.Hours = models.OpeningHours{
		WeekdayOpen:   data.WeekdayOpen,
		WeekdayClose:  data.WeekdayClose,
		SaturdayOpen:  data.SaturdayOpen,
		SaturdayClose: data.SaturdayClose,
		SundayOpen:    data.SundayOpen,
		SundayClose:   data.SundayClose,
	}

	if err := s.save(username, draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// AddPhotos добавляет фотографии в черновик. Сверх лимита в шесть
// фотографий добавление молча усекается до свободных слотов.
func (s *DraftService) AddPhotos(ctx context.Context, username string, photos []string) (*models.PlaceDraft, error) {
	const op = "draft.AddPhotos"

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	free := models.MaxDraftPhotos - len(draft.Photos)
	if free <= 0 {
		return draft, nil
	}
	if len(photos) > free {
		photos = photos[:free]
	}
	draft.Photos = append(draft.Photos, photos...)

	if err := s.save(username, draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// Next переводит черновик на следующий шаг. Переход с первого шага
// требует названия, категории и описания.
func (s *DraftService) Next(ctx context.Context, username string) (*models.PlaceDraft, error) {
	const op = "draft.Next"

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft.Step >= lastStep {
		return draft, nil
	}
	if draft.Step == firstStep {
		if draft.Name == "" || draft.Category == "" || draft.Description == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrIncompleteStep)
		}
	}
	draft.Step++

	if err := s.save(username, draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// Prev возвращает черновик на предыдущий шаг, сохраняя введённые данные.
func (s *DraftService) Prev(ctx context.Context, username string) (*models.PlaceDraft, error) {
	const op = "draft.Prev"

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft.Step <= firstStep {
		return draft, nil
	}
	draft.Step--

	if err := s.save(username, draft); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// Submit превращает черновик в заявку со статусом Pending и очищает
// черновик. Отправка разрешена только с шага просмотра.
func (s *DraftService) Submit(ctx context.Context, username string) (*models.Place, error) {
	const op = "draft.Submit"

	draft, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft.Step != lastStep {
		return nil, fmt.Errorf("%s: %w", op, ErrNotReady)
	}
	if draft.Name == "" || draft.Category == "" || draft.Description == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrIncompleteStep)
	}

	place := models.Place{
		ID:            uuid.New().String(),
		Name:          draft.Name,
		Category:      draft.Category,
		Description:   draft.Description,
		Address:       draft.Address,
		Phone:         draft.Phone,
		Website:       draft.Website,
		Hours:         draft.Hours,
		Photos:        draft.Photos,
		SubmittedBy:   username,
		SubmittedDate: time.Now().UTC(),
		Status:        models.StatusPending,
	}
	if err := s.places.CreatePlace(ctx, place); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(draftKey(username)); err != nil {
		s.log.Warn("failed to clear draft after submit",
			slog.String("username", username), sl.Err(err))
	}
	if err := s.cache.Invalidate(moderation.StatsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	metrics.PlaceSubmissionsTotal.Inc()

	s.log.Info("place submitted for moderation",
		slog.String("place_id", place.ID), slog.String("username", username))
	return &place, nil
}

func (s *DraftService) save(username string, draft *models.PlaceDraft) error {
	return s.cache.Set(draftKey(username), draft, draftTTL)
}
