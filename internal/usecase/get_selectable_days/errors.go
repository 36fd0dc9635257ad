package get_selectable_days

import "errors"

var (
	ErrServiceNotFound = errors.New("get_selectable_days: service not found")
	ErrInvalidInput    = errors.New("get_selectable_days: invalid input")
	ErrInternal        = errors.New("get_selectable_days: internal error")
)
