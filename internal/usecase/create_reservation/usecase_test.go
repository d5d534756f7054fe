package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	durationstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/duration"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/pkg/ptr"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	existing []*domain.Reservation
	created  *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	stored := *r
	stored.ID = 101
	stored.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeReservationRepo) GetByTrainerWithFilter(_ context.Context, _ domain.TrainerReservationsFilter) ([]*domain.Reservation, error) {
	return f.existing, nil
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

type fakeDurationRepo struct {
	byID map[int64]*domain.SessionDuration
}

func (f *fakeDurationRepo) GetByID(_ context.Context, id int64) (*domain.SessionDuration, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, durationstore.ErrDurationNotFound
	}
	return d, nil
}

type fakeBlackoutRepo struct {
	blackouts []*domain.BlackoutRange
}

func (f *fakeBlackoutRepo) ListForDate(_ context.Context, _ int64, _ *int64, _ time.Time) ([]*domain.BlackoutRange, error) {
	return f.blackouts, nil
}

// fakeTxManager выполняет fn без реальной транзакции
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

type deps struct {
	reservations *fakeReservationRepo
	schedule     *fakeScheduleRepo
	policies     *fakePolicyRepo
	durations    *fakeDurationRepo
	blackouts    *fakeBlackoutRepo
}

func newTestUseCase(d deps, now time.Time) (*UseCase, *fakeReservationRepo) {
	if d.reservations == nil {
		d.reservations = &fakeReservationRepo{}
	}
	if d.schedule == nil {
		d.schedule = &fakeScheduleRepo{schedule: mondaySchedule(7)}
	}
	if d.policies == nil {
		d.policies = &fakePolicyRepo{}
	}
	if d.durations == nil {
		d.durations = &fakeDurationRepo{byID: map[int64]*domain.SessionDuration{
			1: {ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Price: 50, Active: true},
		}}
	}
	if d.blackouts == nil {
		d.blackouts = &fakeBlackoutRepo{}
	}
	uc := NewUseCase(d.reservations, d.schedule, d.policies, d.durations, d.blackouts, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc, d.reservations
}

var (
	testNow    = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		ClientID:      42,
		TrainerID:     7,
		SessionTypeID: ptr.Ptr(int64(1)),
		Date:          testMonday,
		StartTime:     types.TimeString("10:00"),
		Source:        domain.SourceClientApp,
	}
}

// Тесты

func TestExecute_CreatesReservation(t *testing.T) {
	uc, repo := newTestUseCase(deps{}, testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Денормализация данных каталога
	assert.Equal(t, "Standard", resp.SessionName)
	assert.Equal(t, 50.0, resp.Price)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_ManualSourceIsConfirmedImmediately(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.Source = domain.SourceManual

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_ImplicitDurationWhenNoSessionType(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.SessionTypeID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Nil(t, resp.SessionTypeID)
}

func TestExecute_SessionTypeOfOtherTrainerRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		durations: &fakeDurationRepo{byID: map[int64]*domain.SessionDuration{
			1: {ID: 1, TrainerID: 99, Minutes: 60, Name: "Foreign", Active: true},
		}},
	}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSessionTypeNotFound)
}

func TestExecute_InactiveSessionTypeRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		durations: &fakeDurationRepo{byID: map[int64]*domain.SessionDuration{
			1: {ID: 1, TrainerID: 7, Minutes: 60, Name: "Retired", Active: false},
		}},
	}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSessionTypeNotFound)
}

func TestExecute_UnknownSessionTypeRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.SessionTypeID = ptr.Ptr(int64(999))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSessionTypeNotFound)
}

func TestExecute_SlotConflictRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		reservations: &fakeReservationRepo{existing: []*domain.Reservation{
			{
				TrainerID: 7,
				Date:      testMonday,
				StartTime: types.TimeString("10:30"),
				EndTime:   types.TimeString("11:30"),
				Status:    domain.StatusConfirmed,
			},
		}},
	}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_BackToBackSlotAllowed(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		reservations: &fakeReservationRepo{existing: []*domain.Reservation{
			{
				TrainerID: 7,
				Date:      testMonday,
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("12:00"),
				Status:    domain.StatusConfirmed,
			},
		}},
	}, testNow)

	// 10:00-11:00 встык с 11:00-12:00 - легально
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_BufferMakesNeighborConflict(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Buffer:    domain.BufferPolicy{Active: true, MinutesBefore: 15, MinutesAfter: 15},
		}},
		reservations: &fakeReservationRepo{existing: []*domain.Reservation{
			{
				TrainerID: 7,
				Date:      testMonday,
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("12:00"),
				Status:    domain.StatusConfirmed,
			},
		}},
	}, testNow)

	// Встык больше не проходит: буфер расширяет соседа до [10:45, 12:15)
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_HorizonRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Horizon:   domain.HorizonPolicy{Active: true, MaxDays: 7},
		}},
	}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_AdvanceNoticeRejected(t *testing.T) {
	// Запрос на сегодняшний понедельник за 30 минут до начала при пороге в 2 часа
	now := time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)
	uc, _ := newTestUseCase(deps{
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Notice:    domain.AdvanceNoticePolicy{Active: true, MinutesMinimum: 120},
		}},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_BlackoutRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{
		blackouts: &fakeBlackoutRepo{blackouts: []*domain.BlackoutRange{
			{
				Scope:     domain.ScopeTrainer,
				OwnerID:   7,
				StartDate: testMonday,
				EndDate:   testMonday,
			},
		}},
	}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateBlackedOut)
}

func TestExecute_OutsideWorkingHoursRejected(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	// Блок 10:00-14:00: слот 13:30-14:30 вылезает за конец
	req := validRequest()
	req.StartTime = types.TimeString("13:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_UnavailableDayFallsBackToDefaultWindow(t *testing.T) {
	// Суббота недоступна в расписании: применяется окно 09:00-18:00
	saturday := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.Date = saturday
	req.StartTime = types.TimeString("09:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(deps{}, testNow)

	req := validRequest()
	req.ClientID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = types.TimeString("25:99")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Source = domain.ReservationSource("bot")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
