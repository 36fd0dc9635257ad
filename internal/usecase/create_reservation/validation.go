package create_reservation

import (
	"fmt"
	"strings"
)

// validateRequest валидирует обязательные поля запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Whatsapp) == "" {
		return fmt.Errorf("%w: whatsapp is required", ErrInvalidInput)
	}
	if req.ServiceID == nil && strings.TrimSpace(req.ServiceName) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	return nil
}
