package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcenturion/turnos-api/internal/domain"
	serviceRepo "github.com/mcenturion/turnos-api/internal/infra/storage/service"
	"github.com/mcenturion/turnos-api/internal/service/catalog/models"
	"github.com/mcenturion/turnos-api/pkg/ptr"
)

// --- фейки ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[int64]*domain.Service), nextID: 1}
}

func (r *fakeServiceRepo) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.services[created.ID] = &created
	r.nextID++
	return &created, nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(r.services))
	for _, svc := range r.services {
		out = append(out, svc)
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, id int64, update domain.ServiceUpdate) error {
	svc, ok := r.services[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	if update.Name != nil {
		svc.Name = *update.Name
	}
	if update.Duration != nil {
		svc.Duration = *update.Duration
	}
	if update.Price != nil {
		svc.Price = *update.Price
	}
	if update.AvailableDays != nil {
		svc.AvailableDays = *update.AvailableDays
	}
	if update.AvailableTimes != nil {
		svc.AvailableTimes = *update.AvailableTimes
	}
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

type fakeReservationRepo struct {
	detached []int64
	renamed  map[int64]string
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{renamed: make(map[int64]string)}
}

func (r *fakeReservationRepo) DetachService(ctx context.Context, serviceID int64) error {
	r.detached = append(r.detached, serviceID)
	return nil
}

func (r *fakeReservationRepo) UpdateServiceName(ctx context.Context, serviceID int64, name string) error {
	r.renamed[serviceID] = name
	return nil
}

func setupCatalog() (*Service, *fakeServiceRepo, *fakeReservationRepo) {
	svcRepo := newFakeServiceRepo()
	resRepo := newFakeReservationRepo()
	svc := NewService(svcRepo, resRepo, fakeTxManager{}, nopLogger{})
	return svc, svcRepo, resRepo
}

// --- тесты ---

func TestCatalog_Create_NormalizesAvailability(t *testing.T) {
	svc, _, _ := setupCatalog()

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:          "  Corte de pelo  ",
		Duration:      "45 min",
		Price:         500,
		AvailableDays: []int{9, 2, 4, -1},
	})
	require.NoError(t, err)

	assert.Equal(t, "Corte de pelo", created.Name)
	assert.Equal(t, []int{2, 4}, created.AvailableDays)
	// Пустой шаблон времен падает на дефолтную почасовую лестницу
	require.Len(t, created.AvailableTimes, 11)
	assert.Equal(t, "10:00", created.AvailableTimes[0])
	assert.Equal(t, "20:00", created.AvailableTimes[10])
}

func TestCatalog_Create_Validation(t *testing.T) {
	svc, _, _ := setupCatalog()

	tests := []struct {
		name string
		req  *models.CreateServiceRequest
	}{
		{name: "empty name", req: &models.CreateServiceRequest{Name: "   ", Duration: "30 min"}},
		{name: "empty duration", req: &models.CreateServiceRequest{Name: "Corte", Duration: ""}},
		{name: "bad time format", req: &models.CreateServiceRequest{
			Name: "Corte", Duration: "30 min", AvailableTimes: []string{"25:99"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCatalog_Update_RenameCascadesToReservations(t *testing.T) {
	svc, svcRepo, resRepo := setupCatalog()
	svcRepo.services[1] = &domain.Service{ID: 1, Name: "Corte", Duration: "30 min"}
	svcRepo.nextID = 2

	updated, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Name: ptr.Ptr("Corte premium"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Corte premium", updated.Name)
	assert.Equal(t, "Corte premium", resRepo.renamed[1])
}

func TestCatalog_Update_NoRenameNoCascade(t *testing.T) {
	svc, svcRepo, resRepo := setupCatalog()
	svcRepo.services[1] = &domain.Service{ID: 1, Name: "Corte", Duration: "30 min"}

	_, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Price: ptr.Ptr(700.0),
	})
	require.NoError(t, err)

	assert.Empty(t, resRepo.renamed)
}

func TestCatalog_Update_EmptyUpdateRejected(t *testing.T) {
	svc, _, _ := setupCatalog()

	_, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_Update_NotFound(t *testing.T) {
	svc, _, _ := setupCatalog()

	_, err := svc.Update(context.Background(), 42, &models.UpdateServiceRequest{
		Name: ptr.Ptr("Nuevo"),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCatalog_Delete_DetachesReservations(t *testing.T) {
	svc, svcRepo, resRepo := setupCatalog()
	svcRepo.services[1] = &domain.Service{ID: 1, Name: "Corte", Duration: "30 min"}

	err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, resRepo.detached)
	_, err = svcRepo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, serviceRepo.ErrServiceNotFound)
}

func TestCatalog_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupCatalog()

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCatalog_Create_CustomTimesKeptInOrder(t *testing.T) {
	svc, _, _ := setupCatalog()

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:           "Manicura",
		Duration:       "60 min",
		Price:          300,
		AvailableTimes: []string{"14:00", "09:30", "11:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"14:00", "09:30", "11:00"}, created.AvailableTimes)
}
