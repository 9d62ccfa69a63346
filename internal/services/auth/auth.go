// Package services содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: регистрация, вход, федеративный вход, восстановление
// пароля. Все ошибки, отдаваемые наружу, классифицированы через authkind.
package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unilocal/unilocal/internal/lib/authkind"
	"github.com/unilocal/unilocal/internal/lib/jwt"
	"github.com/unilocal/unilocal/internal/lib/password"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/metrics"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/rabbitmq"
	"github.com/unilocal/unilocal/internal/storage/repository"
)

// RoleUser и RoleModerator — роли, попадающие в JWT.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ErrInvalidUsername возвращается при недопустимых символах в имени пользователя.
var ErrInvalidUsername = errors.New("username may contain only letters, digits and underscore")

// UserRepository описывает контракт для работы с учётными записями.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userUID string) (*models.User, error)
	GetUserByFederatedSubject(ctx context.Context, subject string) (*models.User, error)
}

// ProfileRepository описывает контракт для работы с профилями.
type ProfileRepository interface {
	SaveProfile(ctx context.Context, profile models.Profile) error
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// ResetTokenRepository описывает контракт для токенов восстановления пароля.
type ResetTokenRepository interface {
	SaveResetToken(ctx context.Context, token models.ResetToken) error
}

// Publisher публикует уведомления в очередь.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// AuthService отвечает за регистрацию, авторизацию, федеративный вход
// и восстановление пароля.
type AuthService struct {
	users          UserRepository
	profiles       ProfileRepository
	resets         ResetTokenRepository
	publisher      Publisher
	verifier       TokenVerifier
	jwtMaker       jwt.Maker
	moderatorEmail string
	log            *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, profiles ProfileRepository,
	resets ResetTokenRepository, publisher Publisher, verifier TokenVerifier,
	jwtMaker jwt.Maker, moderatorEmail string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:          users,
		profiles:       profiles,
		resets:         resets,
		publisher:      publisher,
		verifier:       verifier,
		jwtMaker:       jwtMaker,
		moderatorEmail: moderatorEmail,
		log:            log,
	}
}

// Register создает учётную запись и профиль нового пользователя.
//
// Локальная валидация (стойкость пароля, допустимые символы username)
// выполняется до любых обращений к хранилищу. Запись учётной записи
// и профиля не транзакционна: если запись профиля не удалась, учётная
// запись остаётся без профиля и восстанавливается при следующем входе.
func (s *AuthService) Register(ctx context.Context, name, username, email, rawPassword, city string) (*models.Session, error) {
	if err := password.ValidateStrength(rawPassword); err != nil {
		return nil, authkind.Wrap(authkind.KindWeakPassword, err)
	}

	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if !usernameRe.MatchString(username) {
		return nil, authkind.Wrap(authkind.KindUnknown, ErrInvalidUsername)
	}

	taken, err := s.profiles.UsernameExists(ctx, username)
	if err != nil {
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}
	if taken {
		return nil, authkind.New(authkind.KindUsernameTaken, "username "+username+" already exists")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, authkind.New(authkind.KindEmailInUse, "email "+email+" already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, authkind.Wrap(authkind.KindUnknown, err)
	}

	role := s.roleFor(email)
	userUID, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}

	profile := models.Profile{
		UserUID:   userUID,
		Name:      name,
		Username:  username,
		Email:     email,
		City:      city,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		// Гонка check-then-insert: конкурент успел занять username между
		// проверкой и вставкой, уникальный индекс вернул нарушение.
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, authkind.New(authkind.KindUsernameTaken, "username "+username+" already exists")
		}
		// Учётная запись уже создана; профиль будет дозаписан при входе.
		s.log.Warn("profile write failed after identity creation",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	metrics.RegistrationsTotal.Inc()

	return s.buildSession(username, role, userUID, &profile)
}

// Login проверяет учётные данные и возвращает сессию с профилем.
//
// Отсутствующий профиль дозаписывается из данных учётной записи —
// обе ветки входа (парольная и федеративная) ведут себя одинаково.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authkind.New(authkind.KindInvalidCredentials, "no user record for "+email)
		}
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}
	if user.Disabled {
		return nil, authkind.New(authkind.KindAccountDisabled, "account "+user.UID+" is disabled")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, authkind.Wrap(authkind.KindInvalidCredentials, err)
	}

	profile, err := s.ensureProfile(ctx, user, "")
	if err != nil {
		return nil, err
	}

	return s.buildSession(profile.Username, user.Role, user.UID, profile)
}

// LoginFederated обменивает токен внешнего провайдера на локальную сессию.
//
// При первом входе создаётся учётная запись и минимальный профиль:
// имя из токена, username — локальная часть email, пустой город.
func (s *AuthService) LoginFederated(ctx context.Context, rawToken string) (*models.Session, error) {
	identity, err := s.verifier.Verify(rawToken)
	if err != nil {
		return nil, authkind.Wrap(authkind.KindInvalidCredentials, err)
	}

	user, err := s.users.GetUserByFederatedSubject(ctx, identity.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.createFederatedUser(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		return nil, authkind.New(authkind.KindAccountDisabled, "account "+user.UID+" is disabled")
	}

	profile, err := s.ensureProfile(ctx, user, identity.Name)
	if err != nil {
		return nil, err
	}

	return s.buildSession(profile.Username, user.Role, user.UID, profile)
}

// SendPasswordReset создает токен восстановления и публикует письмо в очередь.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return authkind.New(authkind.KindUserNotFound, "no user record for "+email)
		}
		return authkind.Wrap(authkind.KindNetwork, err)
	}

	username := localPart(email)
	if profile, perr := s.profiles.GetProfile(ctx, user.UID); perr == nil {
		username = profile.Username
	}

	token := models.ResetToken{
		Token:     uuid.New().String(),
		UserUID:   user.UID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := s.resets.SaveResetToken(ctx, token); err != nil {
		return authkind.Wrap(authkind.KindNetwork, err)
	}

	message := models.ResetEmail{
		Email:    email,
		Username: username,
		Token:    token.Token,
	}
	if err := s.publisher.Publish(rabbitmq.PasswordResetRoutingKey, message); err != nil {
		return authkind.Wrap(authkind.KindNetwork, err)
	}

	s.log.Info("password reset queued", slog.String("user_uid", user.UID))
	return nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UID:  claims.UserUID,
		Role: claims.Role,
	}, nil
}

func (s *AuthService) createFederatedUser(ctx context.Context, identity *FederatedIdentity) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	// Пароль для федеративной учётной записи не используется,
	// но колонка обязательна: хэшируется случайное значение.
	hashed, err := password.GetHash(uuid.New().String())
	if err != nil {
		return nil, authkind.Wrap(authkind.KindUnknown, err)
	}

	subject := identity.Subject
	role := s.roleFor(email)
	uid, err := s.users.CreateUser(ctx, models.User{
		Email:            email,
		PasswordHash:     hashed,
		Role:             role,
		FederatedSubject: &subject,
	})
	if err != nil {
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}
	return &models.User{
		UID:              uid,
		Email:            email,
		Role:             role,
		FederatedSubject: &subject,
	}, nil
}

// ensureProfile возвращает профиль пользователя, дозаписывая минимальный
// профиль, если документ отсутствует.
func (s *AuthService) ensureProfile(ctx context.Context, user *models.User, displayName string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, user.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, authkind.Wrap(authkind.KindNetwork, err)
	}

	if displayName == "" {
		displayName = localPart(user.Email)
	}
	profile = &models.Profile{
		UserUID:   user.UID,
		Name:      displayName,
		Username:  localPart(user.Email),
		Email:     user.Email,
		City:      "",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.profiles.SaveProfile(ctx, *profile); err != nil {
		s.log.Warn("failed to backfill profile", slog.String("user_uid", user.UID), sl.Err(err))
	}
	return profile, nil
}

func (s *AuthService) buildSession(username, role, userUID string, profile *models.Profile) (*models.Session, error) {
	token, err := s.jwtMaker.GenerateToken(username, role, userUID)
	if err != nil {
		return nil, authkind.Wrap(authkind.KindUnknown, err)
	}
	return &models.Session{
		Token:       token,
		Role:        role,
		UserUID:     userUID,
		IsModerator: role == RoleModerator,
		Profile:     profile,
	}, nil
}

func (s *AuthService) roleFor(email string) string {
	if s.moderatorEmail != "" && strings.EqualFold(email, s.moderatorEmail) {
		return RoleModerator
	}
	return RoleUser
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
