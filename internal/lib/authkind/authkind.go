// Package authkind определяет структурированную классификацию ошибок
// аутентификации и регистрации. Сопоставление ошибки с категорией
// выполняется один раз на границе сервиса; обработчики работают только
// с категориями, никогда не разбирая текст нижележащей ошибки.
package authkind

import "errors"

// Kind — категория ошибки, отдаваемая клиенту.
type Kind string

const (
	// KindInvalidCredentials — неверный email или пароль.
	KindInvalidCredentials Kind = "invalid-credentials"
	// KindNetwork — ошибка связи с хранилищем или внешним сервисом.
	KindNetwork Kind = "network-error"
	// KindTooManyRequests — превышен лимит попыток.
	KindTooManyRequests Kind = "too-many-requests"
	// KindAccountDisabled — учётная запись заблокирована.
	KindAccountDisabled Kind = "account-disabled"
	// KindInvalidEmail — некорректный формат email.
	KindInvalidEmail Kind = "invalid-email"
	// KindEmailInUse — email уже зарегистрирован.
	KindEmailInUse Kind = "email-already-in-use"
	// KindWeakPassword — пароль не проходит требования стойкости.
	KindWeakPassword Kind = "weak-password"
	// KindUsernameTaken — имя пользователя уже занято.
	KindUsernameTaken Kind = "username-taken"
	// KindUserNotFound — учётная запись с таким email не существует.
	KindUserNotFound Kind = "user-not-found"
	// KindUnknown — прочие ошибки.
	KindUnknown Kind = "unknown"
)

// Error связывает категорию с исходной ошибкой, сохраняя цепочку Unwrap.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New создает ошибку заданной категории с текстовым описанием.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Wrap оборачивает существующую ошибку в категорию.
func Wrap(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf возвращает категорию ошибки. Для ошибок без категории — KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus возвращает HTTP-статус, соответствующий категории.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidCredentials:
		return 401
	case KindAccountDisabled:
		return 403
	case KindUserNotFound:
		return 404
	case KindEmailInUse, KindUsernameTaken:
		return 409
	case KindInvalidEmail, KindWeakPassword:
		return 422
	case KindTooManyRequests:
		return 429
	case KindNetwork:
		return 502
	default:
		return 500
	}
}

// Message возвращает человеко‑читаемое сообщение для категории.
func (k Kind) Message() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid credentials, check your email and password"
	case KindNetwork:
		return "connection error, check your internet"
	case KindTooManyRequests:
		return "too many attempts, try again later"
	case KindAccountDisabled:
		return "this account has been disabled"
	case KindInvalidEmail:
		return "email format is not valid"
	case KindEmailInUse:
		return "this email is already registered"
	case KindWeakPassword:
		return "password is too weak"
	case KindUsernameTaken:
		return "username is already taken"
	case KindUserNotFound:
		return "no account exists with this email"
	default:
		return "unknown error"
	}
}
