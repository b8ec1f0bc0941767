package middleware

import "time"

// HTTPRecorder интерфейс сбора HTTP метрик
type HTTPRecorder interface {
	ObserveHTTPRequest(service, method, route string, status int, elapsed time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
