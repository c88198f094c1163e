package notificationservice

// Notification запрос на отправку уведомления
// Текст по категории и переменным собирает сам NotificationService
type Notification struct {
	UserID    int64             `json:"user_id"`
	Category  string            `json:"category"`
	Variables map[string]string `json:"variables,omitempty"`
}
