package trainerconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	blackoutRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/blackout"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	scheduleRepo "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

// Service сервис конфигурации бронирования тренера: расписание, политики,
// каталог длительностей и блэкауты
type Service struct {
	scheduleRepo ScheduleRepository
	policyRepo   PolicyRepository
	durationRepo DurationRepository
	blackoutRepo BlackoutRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	scheduleRepo ScheduleRepository,
	policyRepo PolicyRepository,
	durationRepo DurationRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		policyRepo:   policyRepo,
		durationRepo: durationRepo,
		blackoutRepo: blackoutRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает полную конфигурацию тренера.
// При первом обращении создает и сохраняет расписание по умолчанию
// (Пн-Пт 09:00-18:00), чтобы тренер видел редактируемую основу.
func (s *Service) Get(ctx context.Context, trainerID int64) (*models.TrainerConfigResponse, error) {
	s.logger.Info("Get: fetching config for trainer=%d", trainerID)

	schedule, err := s.scheduleRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Error("Get: repository error for trainer=%d schedule: %v", trainerID, err)
			return nil, fmt.Errorf("%w: Get - schedule repository error: %v", ErrInternal, err)
		}

		// Первое обращение - сохраняем расписание по умолчанию
		s.logger.Info("Get: creating default schedule for trainer=%d on first access", trainerID)
		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			saved, err := s.scheduleRepo.Save(txCtx, domain.DefaultWeeklySchedule(trainerID))
			if err != nil {
				return err
			}
			schedule = saved
			return nil
		})
		if err != nil {
			s.logger.Error("Get: failed to create default schedule for trainer=%d: %v", trainerID, err)
			return nil, fmt.Errorf("%w: Get - failed to create default schedule: %v", ErrInternal, err)
		}
	}

	policies, err := s.policyRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		if !errors.Is(err, policystore.ErrPoliciesNotFound) {
			s.logger.Error("Get: repository error for trainer=%d policies: %v", trainerID, err)
			return nil, fmt.Errorf("%w: Get - policy repository error: %v", ErrInternal, err)
		}
		// Политики не настроены - отдаем неактивные значения по умолчанию
		policies = &policystore.Policies{TrainerID: trainerID}
	}

	durations, err := s.durationRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("Get: repository error for trainer=%d durations: %v", trainerID, err)
		return nil, fmt.Errorf("%w: Get - duration repository error: %v", ErrInternal, err)
	}

	blackouts, err := s.blackoutRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("Get: repository error for trainer=%d blackouts: %v", trainerID, err)
		return nil, fmt.Errorf("%w: Get - blackout repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched config for trainer=%d", trainerID)
	return &models.TrainerConfigResponse{
		TrainerID: trainerID,
		Schedule:  models.FromDomainSchedule(schedule),
		Policies:  models.FromDomainPolicies(policies.Buffer, policies.Notice, policies.Horizon),
		Durations: models.FromDomainDurations(durations),
		Blackouts: models.FromDomainBlackouts(blackouts),
	}, nil
}

// UpdateSchedule полностью заменяет недельное расписание тренера
func (s *Service) UpdateSchedule(ctx context.Context, trainerID int64, req *models.UpdateScheduleRequest) (*models.TrainerConfigResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for trainer=%d by user=%d", trainerID, req.UserID)

	if req.UserID != trainerID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to trainer=%d", req.UserID, trainerID)
		return nil, ErrAccessDenied
	}

	schedule, err := req.Schedule.ToDomainSchedule(trainerID)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Save выполняет несколько запросов - оборачиваем в транзакцию
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.scheduleRepo.Save(txCtx, schedule)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to save schedule for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for trainer=%d", trainerID)
	return s.Get(ctx, trainerID)
}

// UpdatePolicies обновляет политики бронирования тренера
func (s *Service) UpdatePolicies(ctx context.Context, trainerID int64, req *models.UpdatePoliciesRequest) (*models.TrainerConfigResponse, error) {
	s.logger.Info("UpdatePolicies: updating policies for trainer=%d by user=%d", trainerID, req.UserID)

	if req.UserID != trainerID {
		s.logger.Warn("UpdatePolicies: access denied for user=%d to trainer=%d", req.UserID, trainerID)
		return nil, ErrAccessDenied
	}

	if err := req.Policies.Validate(); err != nil {
		s.logger.Warn("UpdatePolicies: invalid policies for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	buffer, notice, horizon := req.Policies.ToDomainPolicies()
	policies := &policystore.Policies{
		TrainerID: trainerID,
		Buffer:    buffer,
		Notice:    notice,
		Horizon:   horizon,
	}

	if err := s.policyRepo.Upsert(ctx, policies); err != nil {
		s.logger.Error("UpdatePolicies: failed to upsert policies for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: UpdatePolicies - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicies: successfully updated policies for trainer=%d", trainerID)
	return s.Get(ctx, trainerID)
}

// ReplaceDurations полностью заменяет каталог длительностей тренера
func (s *Service) ReplaceDurations(ctx context.Context, trainerID int64, req *models.ReplaceDurationsRequest) (*models.TrainerConfigResponse, error) {
	s.logger.Info("ReplaceDurations: replacing %d durations for trainer=%d by user=%d",
		len(req.Durations), trainerID, req.UserID)

	if req.UserID != trainerID {
		s.logger.Warn("ReplaceDurations: access denied for user=%d to trainer=%d", req.UserID, trainerID)
		return nil, ErrAccessDenied
	}

	durations, err := models.ToDomainDurations(req.Durations)
	if err != nil {
		s.logger.Warn("ReplaceDurations: invalid durations for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Replace выполняет delete + несколько insert - оборачиваем в транзакцию
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.durationRepo.Replace(txCtx, trainerID, durations)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceDurations: failed to replace durations for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: ReplaceDurations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceDurations: successfully replaced durations for trainer=%d", trainerID)
	return s.Get(ctx, trainerID)
}

// CreateBlackout создает блэкаут тренера (отпуск, праздник)
func (s *Service) CreateBlackout(ctx context.Context, trainerID int64, req *models.CreateBlackoutRequest) (*models.TrainerConfigResponse, error) {
	s.logger.Info("CreateBlackout: creating blackout %s..%s for trainer=%d by user=%d",
		req.StartDate, req.EndDate, trainerID, req.UserID)

	if req.UserID != trainerID {
		s.logger.Warn("CreateBlackout: access denied for user=%d to trainer=%d", req.UserID, trainerID)
		return nil, ErrAccessDenied
	}

	blackout, err := req.ToDomainBlackout(trainerID)
	if err != nil {
		s.logger.Warn("CreateBlackout: invalid blackout for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.blackoutRepo.Create(ctx, blackout)
	if err != nil {
		s.logger.Error("CreateBlackout: failed to create blackout for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: successfully created blackout id=%d (%s..%s) for trainer=%d",
		created.ID, dateOnly(created.StartDate), dateOnly(created.EndDate), trainerID)
	return s.Get(ctx, trainerID)
}

// DeleteBlackout удаляет блэкаут тренера
func (s *Service) DeleteBlackout(ctx context.Context, trainerID, blackoutID, userID int64) error {
	s.logger.Info("DeleteBlackout: deleting blackout id=%d for trainer=%d by user=%d", blackoutID, trainerID, userID)

	if userID != trainerID {
		s.logger.Warn("DeleteBlackout: access denied for user=%d to trainer=%d", userID, trainerID)
		return ErrAccessDenied
	}

	if err := s.blackoutRepo.Delete(ctx, blackoutID, trainerID); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("DeleteBlackout: blackout id=%d not found for trainer=%d", blackoutID, trainerID)
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: failed to delete blackout id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlackout: successfully deleted blackout id=%d for trainer=%d", blackoutID, trainerID)
	return nil
}
