package reschedule_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	reservationstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/reservation"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	byID       map[int64]*domain.Reservation
	sameDay    []*domain.Reservation
	lastFilter *domain.TrainerReservationsFilter
	updated    *domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationstore.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByTrainerWithFilter(_ context.Context, filter domain.TrainerReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	// Фейк честно применяет ExcludeID, как это делает репозиторий
	result := make([]*domain.Reservation, 0, len(f.sameDay))
	for _, r := range f.sameDay {
		if filter.ExcludeID != nil && r.ID == *filter.ExcludeID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateTime(_ context.Context, id int64, date time.Time, startTime, endTime types.TimeString, durationMinutes int) (*domain.Reservation, error) {
	orig := f.byID[id]
	moved := *orig
	moved.Date = date
	moved.StartTime = startTime
	moved.EndTime = endTime
	moved.DurationMinutes = durationMinutes
	moved.UpdatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.updated = &moved
	return &moved, nil
}

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetByTrainerID(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.schedule == nil {
		return nil, schedulestore.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakePolicyRepo struct {
	policies *policystore.Policies
}

func (f *fakePolicyRepo) GetByTrainerID(_ context.Context, _ int64) (*policystore.Policies, error) {
	if f.policies == nil {
		return nil, policystore.ErrPoliciesNotFound
	}
	return f.policies, nil
}

type fakeBlackoutRepo struct {
	blackouts []*domain.BlackoutRange
}

func (f *fakeBlackoutRepo) ListForDate(_ context.Context, _ int64, _ *int64, _ time.Time) ([]*domain.BlackoutRange, error) {
	return f.blackouts, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

var (
	testNow    = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	oldMonday  = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	nextMonday = time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
)

func mondaySchedule(trainerID int64) *domain.WeeklySchedule {
	s := &domain.WeeklySchedule{TrainerID: trainerID, Active: true}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s.Days[int(wd)] = domain.DaySchedule{DayOfWeek: wd}
	}
	s.Days[int(time.Monday)] = domain.DaySchedule{
		DayOfWeek: time.Monday,
		Available: true,
		Blocks: []domain.TimeBlock{
			{Start: types.TimeString("10:00"), End: types.TimeString("14:00")},
		},
	}
	return s
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              55,
		ClientID:        42,
		TrainerID:       7,
		Date:            oldMonday,
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		Source:          domain.SourceClientApp,
		SessionName:     "Standard",
		Price:           50,
	}
}

type deps struct {
	reservations *fakeReservationRepo
	schedule     *fakeScheduleRepo
	policies     *fakePolicyRepo
	blackouts    *fakeBlackoutRepo
}

func newTestUseCase(d deps, now time.Time) (*UseCase, *fakeReservationRepo) {
	if d.reservations == nil {
		r := confirmedReservation()
		d.reservations = &fakeReservationRepo{
			byID:    map[int64]*domain.Reservation{r.ID: r},
			sameDay: []*domain.Reservation{r},
		}
	}
	if d.schedule == nil {
		d.schedule = &fakeScheduleRepo{schedule: mondaySchedule(7)}
	}
	if d.policies == nil {
		d.policies = &fakePolicyRepo{}
	}
	if d.blackouts == nil {
		d.blackouts = &fakeBlackoutRepo{}
	}
	uc := NewUseCase(d.reservations, d.schedule, d.policies, d.blackouts, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc, d.reservations
}

func validRequest() *Request {
	return &Request{
		ReservationID: 55,
		UserID:        42,
		NewDate:       nextMonday,
		NewStartTime:  types.TimeString("12:00"),
	}
}

// Тесты

func TestExecute_MovesReservation(t *testing.T) {
	uc, repo := newTestUseCase(deps{}, testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, nextMonday, resp.Date)
	assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("13:00"), resp.EndTime)

	// Длительность, статус и денормализованные данные сохраняются
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Standard", resp.SessionName)
	assert.Equal(t, 50.0, resp.Price)

	// Переносимое бронирование исключено из проверки конфликтов
	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.ExcludeID)
	assert.Equal(t, int64(55), *repo.lastFilter.ExcludeID)
}

func TestExecute_TrainerCanReschedule(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.UserID = 7 // тренер

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_MoveWithinOwnIntervalAllowed(t *testing.T) {
	// Сдвиг на полчаса вглубь собственного слота: без исключения самого себя
	// проверка конфликтов отвергла бы этот перенос
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.NewDate = oldMonday
	req.NewStartTime = types.TimeString("10:30")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
}

func TestExecute_ConflictWithOtherReservationRejected(t *testing.T) {
	r := confirmedReservation()
	other := &domain.Reservation{
		ID:        56,
		ClientID:  77,
		TrainerID: 7,
		Date:      nextMonday,
		StartTime: types.TimeString("12:30"),
		EndTime:   types.TimeString("13:30"),
		Status:    domain.StatusPending,
	}
	repo := &fakeReservationRepo{
		byID:    map[int64]*domain.Reservation{r.ID: r},
		sameDay: []*domain.Reservation{other},
	}
	uc, _ := newTestUseCase(deps{reservations: repo}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRescheduleConflict)

	// Бронирование осталось нетронутым
	assert.Nil(t, repo.updated)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.ReservationID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_StrangerAccessDenied(t *testing.T) {
	uc, repo := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.UserID = 12345

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updated)
}

func TestExecute_FinalStatusCannotBeRescheduled(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByTrainer,
		domain.StatusNoShow,
	} {
		r := confirmedReservation()
		r.Status = status
		repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{r.ID: r}}
		uc, _ := newTestUseCase(deps{reservations: repo}, testNow)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCannotReschedule, "status %s", status)
	}
}

func TestExecute_NewDateChecks(t *testing.T) {
	// Прошлое
	uc, _ := newTestUseCase(deps{}, testNow)
	req := validRequest()
	req.NewDate = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Горизонт
	uc, _ = newTestUseCase(deps{
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Horizon:   domain.HorizonPolicy{Active: true, MaxDays: 7},
		}},
	}, testNow)
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Блэкаут
	uc, _ = newTestUseCase(deps{
		blackouts: &fakeBlackoutRepo{blackouts: []*domain.BlackoutRange{
			{Scope: domain.ScopeTrainer, OwnerID: 7, StartDate: nextMonday, EndDate: nextMonday},
		}},
	}, testNow)
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateBlackedOut)

	// Вне рабочих блоков
	uc, _ = newTestUseCase(deps{}, testNow)
	req = validRequest()
	req.NewStartTime = types.TimeString("13:30")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.ReservationID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.NewStartTime = types.TimeString("nope")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
