package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе почтового API
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrDisabled возвращается, когда отправка писем выключена конфигурацией
	ErrDisabled = errors.New("mailer client: mailer is disabled")
)
