// Package models содержит доменную модель пользователя системы:
// учётную запись (identity) и профиль, хранящийся отдельным документом.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User представляет учётную запись пользователя (identity).
// Профиль хранится отдельно, см. Profile.
type User struct {
	UID              string    // Уникальный идентификатор пользователя
	Email            string    // Электронная почта (уникальная)
	PasswordHash     string    // Хэш пароля пользователя
	Role             string    // Роль пользователя, moderator или user
	FederatedSubject *string   // Subject внешнего провайдера (nil для email/password)
	Disabled         bool      // Учётная запись заблокирована
	CreatedAt        time.Time // Дата создания учётной записи
}

// Profile представляет профиль пользователя — отдельный документ,
// создаваемый при регистрации или при первом федеративном входе.
type Profile struct {
	UserUID   string    `json:"user_uid"`   // Идентификатор владельца
	Name      string    `json:"name"`       // Полное имя
	Username  string    `json:"username"`   // Имя пользователя (уникальное, в нижнем регистре)
	Email     string    `json:"email"`      // Электронная почта
	City      string    `json:"city"`       // Город
	CreatedAt time.Time `json:"created_at"` // Дата создания профиля
}

// Initials возвращает инициалы для аватара: первые буквы первых двух
// слов имени в верхнем регистре. Пустое имя дает пустую строку.
func (p Profile) Initials() string {
	words := strings.Fields(p.Name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Session — результат успешной аутентификации, отдаваемый клиенту.
type Session struct {
	Token       string   `json:"token"`        // JWT для последующих запросов
	Role        string   `json:"role"`         // Роль пользователя
	UserUID     string   `json:"user_uid"`     // Идентификатор пользователя
	IsModerator bool     `json:"is_moderator"` // Признак модератора
	Profile     *Profile `json:"profile"`      // Профиль; недостающий профиль восстанавливается при входе
}

// ResetToken — токен восстановления пароля с ограниченным временем жизни.
type ResetToken struct {
	Token     string
	UserUID   string
	ExpiresAt time.Time
}
