package notificationservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FailureRecorder счётчик неудачных отправок
type FailureRecorder interface {
	IncNotificationFailure(category string)
}
