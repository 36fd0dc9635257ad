package get_selectable_days

import "time"

// Request запрос на получение выбираемых дней месяца
type Request struct {
	ServiceID   *int64
	ServiceName string
	Month       time.Time // любой момент внутри нужного месяца
}

// Response дни месяца, доступные для выбора даты
type Response struct {
	ServiceID   *int64
	ServiceName string
	Month       time.Time
	Days        []time.Time
}
