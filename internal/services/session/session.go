// Package session хранит навигационное состояние пользователя между
// запросами: текущий экран живёт в Redis и восстанавливается при входе.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/navigation"
)

// sessionTTL — время жизни навигационного состояния.
const sessionTTL = 12 * time.Hour

// Cache хранит состояние между запросами.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// State — сохранённое навигационное состояние пользователя.
type State struct {
	Screen      string `json:"screen"`
	IsModerator bool   `json:"is_moderator"`
}

// SessionService отвечает за текущий экран пользователя.
type SessionService struct {
	cache Cache
	log   *slog.Logger
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(cache Cache, log *slog.Logger) *SessionService {
	return &SessionService{cache: cache, log: log}
}

func sessionKey(username string) string {
	return "session:" + username
}

// Start инициализирует навигационное состояние после входа:
// модератор попадает на панель модерации, остальные — на главный экран.
func (s *SessionService) Start(_ context.Context, username string, isModerator bool) (*State, error) {
	const op = "session.Start"

	screen := navigation.ScreenMain
	if isModerator {
		screen = navigation.ScreenModerator
	}
	state := &State{Screen: string(screen), IsModerator: isModerator}
	if err := s.cache.Set(sessionKey(username), state, sessionTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("session started", slog.String("username", username),
		slog.String("screen", state.Screen))
	return state, nil
}

// Current возвращает сохранённое состояние. Отсутствующее или
// повреждённое состояние нормализуется на экран входа.
func (s *SessionService) Current(_ context.Context, username string) (*State, error) {
	const op = "session.Current"

	var state State
	found, err := s.cache.Get(sessionKey(username), &state)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return &State{Screen: string(navigation.ScreenLogin)}, nil
	}
	state.Screen = string(navigation.Normalize(state.Screen))
	return &state, nil
}

// Navigate заменяет текущий экран на целевой и сохраняет состояние.
// Неизвестная цель приводит на экран входа.
func (s *SessionService) Navigate(ctx context.Context, username, target string) (*State, error) {
	const op = "session.Navigate"

	state, err := s.Current(ctx, username)
	if err != nil {
		return nil, err
	}

	nav := navigation.Restore(state.Screen)
	state.Screen = string(nav.Navigate(target))

	if err := s.cache.Set(sessionKey(username), state, sessionTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

// End удаляет навигационное состояние при выходе из системы.
func (s *SessionService) End(_ context.Context, username string) error {
	const op = "session.End"

	if err := s.cache.Invalidate(sessionKey(username)); err != nil {
		s.log.Warn("failed to drop session state", slog.String("username", username), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
