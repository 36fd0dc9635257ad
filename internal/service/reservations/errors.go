package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrIllegalTransition возвращается при легальном статусе,
	// нарушающем таблицу переходов (например, из терминального состояния)
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrSlotNotAvailable возвращается, когда целевой слот переноса занят
	// или отсутствует в шаблоне доступности услуги
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
