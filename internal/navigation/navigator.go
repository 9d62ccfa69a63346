package navigation

// Navigator хранит текущий экран и выполняет безусловную замену экрана
// при переходе. Стека истории нет: «назад» реализуется самими экранами.
type Navigator struct {
	current Screen
}

// NewNavigator создает навигатор, начинающий с экрана входа.
func NewNavigator() *Navigator {
	return &Navigator{current: ScreenLogin}
}

// Restore создает навигатор с восстановленным текущим экраном,
// нормализуя неизвестные значения.
func Restore(raw string) *Navigator {
	return &Navigator{current: Normalize(raw)}
}

// Current возвращает текущий экран.
func (n *Navigator) Current() Screen {
	return n.current
}

// Navigate безусловно заменяет текущий экран на целевой.
// Неизвестная цель приводит на экран входа, а не к пустому состоянию.
func (n *Navigator) Navigate(target string) Screen {
	n.current = Normalize(target)
	return n.current
}
