package trainerconfig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	blackoutstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/blackout"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetByTrainerID(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.schedule == nil {
		return nil, schedulestore.ErrScheduleNotFound
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) Save(_ context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	saved := *s
	saved.ID = 1
	f.schedule = &saved
	return &saved, nil
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

func (f *fakePolicyRepo) Upsert(_ context.Context, p *policystore.Policies) error {
	f.policies = p
	return nil
}

type fakeDurationRepo struct {
	catalog []domain.SessionDuration
}

func (f *fakeDurationRepo) ListByTrainer(_ context.Context, _ int64) ([]domain.SessionDuration, error) {
	return f.catalog, nil
}

func (f *fakeDurationRepo) Replace(_ context.Context, trainerID int64, durations []domain.SessionDuration) ([]domain.SessionDuration, error) {
	replaced := make([]domain.SessionDuration, 0, len(durations))
	for i, d := range durations {
		d.ID = int64(i + 1)
		d.TrainerID = trainerID
		d.SortOrder = i
		replaced = append(replaced, d)
	}
	f.catalog = replaced
	return replaced, nil
}

type fakeBlackoutRepo struct {
	blackouts []*domain.BlackoutRange
	nextID    int64
}

func (f *fakeBlackoutRepo) ListByTrainer(_ context.Context, _ int64) ([]*domain.BlackoutRange, error) {
	return f.blackouts, nil
}

func (f *fakeBlackoutRepo) Create(_ context.Context, b *domain.BlackoutRange) (*domain.BlackoutRange, error) {
	f.nextID++
	created := *b
	created.ID = f.nextID
	f.blackouts = append(f.blackouts, &created)
	return &created, nil
}

func (f *fakeBlackoutRepo) Delete(_ context.Context, id, _ int64) error {
	for i, b := range f.blackouts {
		if b.ID == id {
			f.blackouts = append(f.blackouts[:i], f.blackouts[i+1:]...)
			return nil
		}
	}
	return blackoutstore.ErrBlackoutNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeScheduleRepo, *fakePolicyRepo, *fakeBlackoutRepo) {
	scheduleRepo := &fakeScheduleRepo{}
	policyRepo := &fakePolicyRepo{}
	durationRepo := &fakeDurationRepo{}
	blackoutRepo := &fakeBlackoutRepo{}
	svc := NewService(scheduleRepo, policyRepo, durationRepo, blackoutRepo, fakeTxManager{}, nopLogger{})
	return svc, scheduleRepo, policyRepo, blackoutRepo
}

func TestGet_CreatesDefaultScheduleOnFirstAccess(t *testing.T) {
	svc, scheduleRepo, _, _ := newTestService()

	resp, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)

	// Расписание по умолчанию сохранено: Пн-Пт 09:00-18:00
	require.NotNil(t, scheduleRepo.schedule)
	assert.True(t, resp.Schedule.Active)
	require.Len(t, resp.Schedule.Days, 7)

	monday := resp.Schedule.Days[int(time.Monday)]
	assert.True(t, monday.Available)
	require.Len(t, monday.Blocks, 1)
	assert.Equal(t, "09:00", monday.Blocks[0].Start)
	assert.Equal(t, "18:00", monday.Blocks[0].End)

	// Ненастроенные политики отдаются как неактивные нули
	assert.False(t, resp.Policies.Buffer.Active)
	assert.False(t, resp.Policies.Notice.Active)
	assert.False(t, resp.Policies.Horizon.Active)
	assert.Empty(t, resp.Durations)
	assert.Empty(t, resp.Blackouts)
}

func TestUpdateSchedule_OwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService()

	schedule := models.WeeklyScheduleDTO{
		Active: true,
		Days: []models.DayScheduleDTO{
			{DayOfWeek: 1, Available: true, Blocks: []models.TimeBlockDTO{{Start: "08:00", End: "12:00"}}},
		},
	}

	_, err := svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{
		UserID:   42,
		Schedule: schedule,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{
		UserID:   7,
		Schedule: schedule,
	})
	require.NoError(t, err)

	monday := resp.Schedule.Days[int(time.Monday)]
	require.Len(t, monday.Blocks, 1)
	assert.Equal(t, "08:00", monday.Blocks[0].Start)
}

func TestUpdateSchedule_RejectsOverlappingBlocks(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{
		UserID: 7,
		Schedule: models.WeeklyScheduleDTO{
			Active: true,
			Days: []models.DayScheduleDTO{
				{DayOfWeek: 1, Available: true, Blocks: []models.TimeBlockDTO{
					{Start: "09:00", End: "13:00"},
					{Start: "12:00", End: "15:00"},
				}},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePolicies_BoundsValidated(t *testing.T) {
	svc, _, policyRepo, _ := newTestService()

	_, err := svc.UpdatePolicies(context.Background(), 7, &models.UpdatePoliciesRequest{
		UserID: 7,
		Policies: models.PoliciesDTO{
			Horizon: models.HorizonPolicyDTO{Active: true, MaxDays: domain.MaxHorizonDays + 1},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.UpdatePolicies(context.Background(), 7, &models.UpdatePoliciesRequest{
		UserID: 7,
		Policies: models.PoliciesDTO{
			Buffer:  models.BufferPolicyDTO{Active: true, MinutesBefore: 10, MinutesAfter: 15},
			Notice:  models.NoticePolicyDTO{Active: true, MinutesMinimum: 120},
			Horizon: models.HorizonPolicyDTO{Active: true, MaxDays: 30},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, policyRepo.policies)
	assert.Equal(t, 10, resp.Policies.Buffer.MinutesBefore)
	assert.Equal(t, 120, resp.Policies.Notice.MinutesMinimum)
	assert.Equal(t, 30, resp.Policies.Horizon.MaxDays)
}

func TestReplaceDurations_Validated(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ReplaceDurations(context.Background(), 7, &models.ReplaceDurationsRequest{
		UserID: 7,
		Durations: []models.SessionDurationDTO{
			{Minutes: 5, Name: "Too short", Active: true},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.ReplaceDurations(context.Background(), 7, &models.ReplaceDurationsRequest{
		UserID: 7,
		Durations: []models.SessionDurationDTO{
			{Minutes: 30, Name: "Express", Price: 35, Active: true},
			{Minutes: 60, Name: "Standard", Price: 50, Active: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Durations, 2)
	assert.Equal(t, 30, resp.Durations[0].Minutes)
	assert.Equal(t, 60, resp.Durations[1].Minutes)
}

func TestCreateBlackout_Validated(t *testing.T) {
	svc, _, _, blackoutRepo := newTestService()

	// endDate раньше startDate
	_, err := svc.CreateBlackout(context.Background(), 7, &models.CreateBlackoutRequest{
		UserID:    7,
		StartDate: "2026-09-12",
		EndDate:   "2026-09-10",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.CreateBlackout(context.Background(), 7, &models.CreateBlackoutRequest{
		UserID:    7,
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Reason:    "vacation",
	})
	require.NoError(t, err)
	require.Len(t, resp.Blackouts, 1)
	assert.Equal(t, "2026-09-10", resp.Blackouts[0].StartDate)
	assert.Equal(t, "2026-09-12", resp.Blackouts[0].EndDate)
	assert.Equal(t, "vacation", resp.Blackouts[0].Reason)
	require.Len(t, blackoutRepo.blackouts, 1)
	assert.Equal(t, domain.ScopeTrainer, blackoutRepo.blackouts[0].Scope)
}

func TestDeleteBlackout(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.CreateBlackout(context.Background(), 7, &models.CreateBlackoutRequest{
		UserID:    7,
		StartDate: "2026-09-10",
		EndDate:   "2026-09-10",
	})
	require.NoError(t, err)
	id := resp.Blackouts[0].ID

	assert.ErrorIs(t, svc.DeleteBlackout(context.Background(), 7, id, 42), ErrAccessDenied)
	require.NoError(t, svc.DeleteBlackout(context.Background(), 7, id, 7))
	assert.ErrorIs(t, svc.DeleteBlackout(context.Background(), 7, id, 7), ErrBlackoutNotFound)
}
