package create_reservation

import (
	"time"

	"github.com/mcenturion/turnos-api/pkg/types"
)

// Request модель запроса на создание бронирования.
// ServiceID указывает услугу напрямую (клиентский флоу); ServiceName
// используется как fallback-ссылка и всегда попадает в денормализованный
// снимок. Status учитывается, только если это одно из распознанных значений,
// иначе бронь создается как pending.
type Request struct {
	Name        string
	Whatsapp    string
	ServiceID   *int64
	ServiceName string
	Date        time.Time
	Time        types.TimeString
	Status      *string
}

// Response модель созданного бронирования
type Response struct {
	ID          int64
	Code        string
	Name        string
	Whatsapp    string
	ServiceID   *int64
	ServiceName string
	Date        time.Time
	Time        types.TimeString
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
