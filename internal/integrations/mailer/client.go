package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
)

const newReservationSubject = "Nueva reserva de turno"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки транзакционных писем через Resend-совместимый API.
// Отправка всегда best-effort: вызывающий слой логирует и глотает ошибки,
// создание бронирования не должно падать из-за почты.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	adminEmail string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, apiKey, from, adminEmail string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		from:       from,
		adminEmail: adminEmail,
		enabled:    enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyNewReservation отправляет администратору письмо о новой заявке
func (c *Client) NotifyNewReservation(ctx context.Context, res *domain.Reservation) error {
	if !c.enabled {
		return ErrDisabled
	}

	payload := sendEmailRequest{
		From:    c.from,
		To:      []string{c.adminEmail},
		Subject: newReservationSubject,
		Text:    buildReservationText(res),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := c.baseURL + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Mailer: notification sent for reservation code=%s, email id=%s", res.Code, result.ID)
	return nil
}

// buildReservationText формирует текст письма о новой заявке.
// Формат строк повторяет формат уведомлений админ-консоли.
func buildReservationText(res *domain.Reservation) string {
	lines := []string{
		"Se registró una nueva reserva.",
		"",
		"Cliente: " + res.Name,
		"WhatsApp: " + res.Whatsapp,
		"Enlace: https://wa.me/" + digitsOnly(res.Whatsapp),
		"Servicio: " + res.ServiceName,
		"Fecha: " + res.Date.Format(domain.DateFormat),
		"Horario: " + res.Time.String(),
		"Estado: " + string(res.Status),
		"Código: " + res.Code,
	}
	return strings.Join(lines, "\n")
}

// digitsOnly нормализует телефон до цифр для ссылки wa.me
func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
