package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          1,
		Code:        "RES-m2k3f8a1-x9q2",
		Name:        "Ana García",
		Whatsapp:    "+598 99 123 456",
		ServiceID:   ptr.Ptr(int64(1)),
		ServiceName: "Corte de pelo",
		Date:        time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		Status:      domain.StatusPending,
	}
}

func TestNotifyNewReservation_SendsEmail(t *testing.T) {
	var captured sendEmailRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sendEmailResponse{ID: "email-123"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "Turnos <noreply@example.com>", "admin@example.com", true, 5*time.Second, nopLogger{})

	err := client.NotifyNewReservation(context.Background(), testReservation())
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@example.com"}, captured.To)
	assert.Equal(t, "Nueva reserva de turno", captured.Subject)
	assert.Contains(t, captured.Text, "Cliente: Ana García")
	assert.Contains(t, captured.Text, "Servicio: Corte de pelo")
	assert.Contains(t, captured.Text, "Fecha: 2026-03-17")
	assert.Contains(t, captured.Text, "Horario: 10:00")
	assert.Contains(t, captured.Text, "Enlace: https://wa.me/59899123456")
	assert.Contains(t, captured.Text, "Código: RES-m2k3f8a1-x9q2")
}

func TestNotifyNewReservation_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(errorResponse{Message: "invalid from address"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "bad", "admin@example.com", true, 5*time.Second, nopLogger{})

	err := client.NotifyNewReservation(context.Background(), testReservation())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestNotifyNewReservation_Disabled(t *testing.T) {
	client := NewClient("http://localhost:0", "", "", "", false, time.Second, nopLogger{})

	err := client.NotifyNewReservation(context.Background(), testReservation())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestBuildReservationText_PhoneNormalization(t *testing.T) {
	res := testReservation()
	res.Whatsapp = "099-123-456"

	text := buildReservationText(res)
	assert.Contains(t, text, "https://wa.me/099123456")
}
