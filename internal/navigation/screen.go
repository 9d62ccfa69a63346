// Package navigation определяет закрытое перечисление экранов приложения
// и правила перехода между ними. Неизвестный идентификатор экрана не
// превращается в «пустой» экран — навигация закрывается на экран входа.
package navigation

// Screen — идентификатор экрана приложения. Тип закрыт: любые значения
// вне перечисленных констант нормализуются в ScreenLogin.
type Screen string

const (
	// ScreenLogin — экран входа; экран по умолчанию.
	ScreenLogin Screen = "login"
	// ScreenRegister — экран регистрации.
	ScreenRegister Screen = "register"
	// ScreenForgotPassword — экран восстановления пароля.
	ScreenForgotPassword Screen = "forgot_password"
	// ScreenMain — главный экран с картой.
	ScreenMain Screen = "main"
	// ScreenDetail — карточка места.
	ScreenDetail Screen = "detail"
	// ScreenCreate — мастер подачи нового места.
	ScreenCreate Screen = "create"
	// ScreenModerator — панель модератора.
	ScreenModerator Screen = "moderator"
	// ScreenMenu — меню приложения.
	ScreenMenu Screen = "menu"
	// ScreenProfile — экран профиля.
	ScreenProfile Screen = "profile"
)

// Known сообщает, входит ли экран в закрытое перечисление.
func (s Screen) Known() bool {
	switch s {
	case ScreenLogin, ScreenRegister, ScreenForgotPassword, ScreenMain,
		ScreenDetail, ScreenCreate, ScreenModerator, ScreenMenu, ScreenProfile:
		return true
	}
	return false
}

// Normalize возвращает экран без изменений, если он известен,
// иначе — ScreenLogin. Исключает случай «молчаливого» пустого экрана.
func Normalize(raw string) Screen {
	s := Screen(raw)
	if s.Known() {
		return s
	}
	return ScreenLogin
}
