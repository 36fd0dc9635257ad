package create_reservation

import "errors"

var (
	// ErrServiceNotFound возвращается, когда указанная услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrDateNotAvailable возвращается для прошедшей даты или дня недели
	// вне маски доступности услуги
	ErrDateNotAvailable = errors.New("create_reservation: date is not available")

	// ErrTimeNotOffered возвращается, когда время отсутствует в шаблоне
	// доступности услуги
	ErrTimeNotOffered = errors.New("create_reservation: time is not offered by the service")

	// ErrSlotNotAvailable возвращается, когда слот уже удержан другой бронью
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
