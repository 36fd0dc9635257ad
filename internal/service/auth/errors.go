package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
	// Отдельных ошибок "нет такого пользователя" и "неверный пароль" нет намеренно.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth service: internal error")
)
