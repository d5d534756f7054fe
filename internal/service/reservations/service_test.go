package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	reservationstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/reservation"
	"github.com/fitcrm/FC-ReservationService/internal/service/reservations/models"
	"github.com/fitcrm/FC-ReservationService/pkg/ptr"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

type fakeRepo struct {
	byID            map[int64]*domain.Reservation
	byClient        []*domain.Reservation
	byTrainer       []*domain.Reservation
	cancelledStatus domain.ReservationStatus
	cancelledReason string
	updatedStatus   domain.ReservationStatus
	lastFilter      *domain.TrainerReservationsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationstore.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByClientID(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.byClient, nil
}

func (f *fakeRepo) GetByTrainerWithFilter(_ context.Context, filter domain.TrainerReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	return f.byTrainer, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := f.byID[id]; !ok {
		return reservationstore.ErrReservationNotFound
	}
	f.updatedStatus = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return reservationstore.ErrReservationNotFound
	}
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              55,
		ClientID:        42,
		TrainerID:       7,
		Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		Source:          domain.SourceClientApp,
	}
}

func newTestService(r *domain.Reservation) (*Service, *fakeRepo) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{}}
	if r != nil {
		repo.byID[r.ID] = r
	}
	return NewService(repo, nopLogger{}), repo
}

func TestGetByID_PartyAccessOnly(t *testing.T) {
	svc, _ := newTestService(testReservation())

	// Клиент и тренер видят бронирование
	resp, err := svc.GetByID(context.Background(), 55, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.ID)

	_, err = svc.GetByID(context.Background(), 55, 7)
	require.NoError(t, err)

	// Посторонний - нет
	_, err = svc.GetByID(context.Background(), 55, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 404, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetClientReservations_OwnHistoryOnly(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
		ClientID: 42,
		UserID:   7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
		ClientID: 42,
		UserID:   42,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)

	// Некорректный статус в фильтре
	_, err = svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
		ClientID: 42,
		UserID:   42,
		Status:   ptr.Ptr("weird"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTrainerReservations_FilterPassthrough(t *testing.T) {
	svc, repo := newTestService(nil)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetTrainerReservations(context.Background(), &models.GetTrainerReservationsRequest{
		TrainerID:       7,
		UserID:          7,
		StartDate:       &start,
		EndDate:         &end,
		Status:          ptr.Ptr(string(domain.StatusConfirmed)),
		IncludeInactive: true,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(7), repo.lastFilter.TrainerID)
	assert.Equal(t, &start, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)

	// Чужой календарь недоступен
	_, err = svc.GetTrainerReservations(context.Background(), &models.GetTrainerReservationsRequest{
		TrainerID: 7,
		UserID:    42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_StatusDependsOnWhoCancels(t *testing.T) {
	svc, repo := newTestService(testReservation())

	err := svc.Cancel(context.Background(), 55, &models.CancelReservationRequest{
		UserID:             42,
		CancellationReason: "sick",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
	assert.Equal(t, "sick", repo.cancelledReason)

	svc, repo = newTestService(testReservation())
	err = svc.Cancel(context.Background(), 55, &models.CancelReservationRequest{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByTrainer, repo.cancelledStatus)

	svc, _ = newTestService(testReservation())
	err = svc.Cancel(context.Background(), 55, &models.CancelReservationRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_FinalStatusRejected(t *testing.T) {
	r := testReservation()
	r.Status = domain.StatusCompleted
	svc, _ := newTestService(r)

	err := svc.Cancel(context.Background(), 55, &models.CancelReservationRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_TrainerOnly(t *testing.T) {
	svc, repo := newTestService(testReservation())

	err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
		UserID: 7,
		Status: string(domain.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)

	// Клиент не может менять статус
	err = svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
		UserID: 42,
		Status: string(domain.StatusCompleted),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный статус
	err = svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "weird",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
