package rabbitmq

// NotificationsExchange — exchange для писем пользователям.
const NotificationsExchange = "notifications"

// Имена очередей и ключи маршрутизации уведомлений.
const (
	PasswordResetQueue      = "notifications.password_reset"
	PasswordResetRoutingKey = "password_reset"

	ModerationDecisionQueue      = "notifications.moderation_decision"
	ModerationDecisionRoutingKey = "moderation_decision"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает конфигурацию очередей уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PasswordResetQueue, RoutingKey: PasswordResetRoutingKey},
		{QueueName: ModerationDecisionQueue, RoutingKey: ModerationDecisionRoutingKey},
	}
}
