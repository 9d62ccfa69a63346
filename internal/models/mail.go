package models

// ResetEmail — сообщение о восстановлении пароля, публикуемое в очередь
// и доставляемое сервисом отправки писем.
type ResetEmail struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// DecisionEmail — уведомление автору заявки о решении модератора.
type DecisionEmail struct {
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	PlaceName string      `json:"place_name"`
	Status    PlaceStatus `json:"status"`
}
