package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByTrainerWithFilter(_ context.Context, _ domain.TrainerReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, f.err
}

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
	err      error
}

func (f *fakeScheduleRepo) GetByTrainerID(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.schedule == nil {
		return nil, schedulestore.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakePolicyRepo struct {
	policies *policystore.Policies
	err      error
}

func (f *fakePolicyRepo) GetByTrainerID(_ context.Context, _ int64) (*policystore.Policies, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.policies == nil {
		return nil, policystore.ErrPoliciesNotFound
	}
	return f.policies, nil
}

type fakeDurationRepo struct {
	catalog []domain.SessionDuration
	err     error
}

func (f *fakeDurationRepo) ListByTrainer(_ context.Context, _ int64) ([]domain.SessionDuration, error) {
	return f.catalog, f.err
}

type fakeBlackoutRepo struct {
	blackouts []*domain.BlackoutRange
	err       error
}

func (f *fakeBlackoutRepo) ListForDate(_ context.Context, _ int64, _ *int64, _ time.Time) ([]*domain.BlackoutRange, error) {
	return f.blackouts, f.err
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

type deps struct {
	reservations *fakeReservationRepo
	schedule     *fakeScheduleRepo
	policies     *fakePolicyRepo
	durations    *fakeDurationRepo
	blackouts    *fakeBlackoutRepo
}

func newTestUseCase(d deps, now time.Time) *UseCase {
	if d.reservations == nil {
		d.reservations = &fakeReservationRepo{}
	}
	if d.schedule == nil {
		d.schedule = &fakeScheduleRepo{}
	}
	if d.policies == nil {
		d.policies = &fakePolicyRepo{}
	}
	if d.durations == nil {
		d.durations = &fakeDurationRepo{}
	}
	if d.blackouts == nil {
		d.blackouts = &fakeBlackoutRepo{}
	}
	uc := NewUseCase(d.reservations, d.schedule, d.policies, d.durations, d.blackouts, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

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

var (
	testNow    = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)  // вторник
	testMonday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник через ~2 недели
)

// Тесты

func TestExecute_LegacyWindowWhenNoSchedule(t *testing.T) {
	uc := newTestUseCase(deps{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)

	// Окно 09:00-18:00 с часовой сеткой: 9 слотов
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[8].StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[8].EndTime)
	for _, slot := range resp.Slots {
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.Nil(t, slot.SessionTypeID)
	}
}

func TestExecute_CatalogDurationsTileBlocks(t *testing.T) {
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Price: 50, Active: true},
			{ID: 2, TrainerID: 7, Minutes: 90, Name: "Extended", Price: 70, Active: true},
		}},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)

	// Блок 10:00-14:00: четыре часовых слота + два 90-минутных (10:00, 11:30)
	require.Len(t, resp.Slots, 6)

	// Сортировка по началу; при равном начале порядок каталога
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, 90, resp.Slots[1].DurationMinutes)

	require.NotNil(t, resp.Slots[0].SessionTypeID)
	assert.Equal(t, int64(1), *resp.Slots[0].SessionTypeID)
	assert.Equal(t, "Standard", resp.Slots[0].SessionName)
	assert.Equal(t, 50.0, resp.Slots[0].Price)
}

func TestExecute_ConflictsWithBufferExcluded(t *testing.T) {
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Active: true},
		}},
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Buffer:    domain.BufferPolicy{Active: true, MinutesBefore: 15, MinutesAfter: 15},
		}},
		reservations: &fakeReservationRepo{reservations: []*domain.Reservation{
			{
				TrainerID: 7,
				Date:      testMonday,
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("12:00"),
				Status:    domain.StatusConfirmed,
			},
		}},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)

	// Бронирование с буфером закрывает [10:45, 12:15): из часовой сетки
	// выживает только 13:00-14:00
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
}

func TestExecute_CancelledReservationsDoNotBlock(t *testing.T) {
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Active: true},
		}},
		reservations: &fakeReservationRepo{reservations: []*domain.Reservation{
			{
				TrainerID: 7,
				Date:      testMonday,
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("12:00"),
				Status:    domain.StatusCancelledByClient,
			},
		}},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
}

func TestExecute_AdvanceNoticeFloorsToday(t *testing.T) {
	// Запрос на сегодня: now 10:30, notice 60 минут -> слоты до 11:30 отсечены
	now := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Active: true},
		}},
		policies: &fakePolicyRepo{policies: &policystore.Policies{
			TrainerID: 7,
			Notice:    domain.AdvanceNoticePolicy{Active: true, MinutesMinimum: 60},
		}},
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)

	// Из сетки 10:00..13:00 остаются 12:00 и 13:00
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[1].StartTime)
}

func TestExecute_HorizonBoundary(t *testing.T) {
	policies := &policystore.Policies{
		TrainerID: 7,
		Horizon:   domain.HorizonPolicy{Active: true, MaxDays: 13},
	}

	// testMonday ровно 13 дней от testNow - допустимо
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 60, Name: "Standard", Active: true},
		}},
		policies: &fakePolicyRepo{policies: policies},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)

	// День за горизонтом - пустая выдача, не ошибка
	policies.Horizon.MaxDays = 12
	resp, err = uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlackoutHidesWholeDay(t *testing.T) {
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		blackouts: &fakeBlackoutRepo{blackouts: []*domain.BlackoutRange{
			{
				Scope:     domain.ScopeTrainer,
				OwnerID:   7,
				StartDate: testMonday,
				EndDate:   testMonday,
				Reason:    "vacation",
			},
		}},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateGivesEmptyResponse(t *testing.T) {
	uc := newTestUseCase(deps{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID: 7,
		Date:      testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ReservationReadFailureIsFatal(t *testing.T) {
	uc := newTestUseCase(deps{
		reservations: &fakeReservationRepo{err: errors.New("connection refused")},
	}, testNow)

	_, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ConfigReadFailuresDegrade(t *testing.T) {
	// Ошибки чтения расписания, каталога, политик и блэкаутов не прерывают
	// запрос: выдача деградирует до окна по умолчанию
	uc := newTestUseCase(deps{
		schedule:  &fakeScheduleRepo{err: errors.New("timeout")},
		durations: &fakeDurationRepo{err: errors.New("timeout")},
		policies:  &fakePolicyRepo{err: errors.New("timeout")},
		blackouts: &fakeBlackoutRepo{err: errors.New("timeout")},
	}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_Idempotent(t *testing.T) {
	uc := newTestUseCase(deps{
		schedule: &fakeScheduleRepo{schedule: mondaySchedule(7)},
		durations: &fakeDurationRepo{catalog: []domain.SessionDuration{
			{ID: 1, TrainerID: 7, Minutes: 45, Name: "Short", Active: true},
		}},
	}, testNow)

	first, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{TrainerID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(deps{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{TrainerID: 0, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TrainerID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
