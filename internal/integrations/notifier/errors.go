package notifier

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrDeclareQueue возвращается при ошибке объявления очереди
	ErrDeclareQueue = errors.New("notifier: failed to declare queue")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("notifier: failed to publish message")

	// ErrClosed возвращается при публикации в закрытый publisher
	ErrClosed = errors.New("notifier: publisher closed")
)
