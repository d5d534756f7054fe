package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	reservationstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/reservation"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
	"github.com/fitcrm/FC-ReservationService/pkg/ptr"
)

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	policyRepo      PolicyRepository
	blackoutRepo    BlackoutRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	policyRepo PolicyRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		policyRepo:      policyRepo,
		blackoutRepo:    blackoutRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования.
//
// Перенос меняет только дату и время: длительность, статус, цена и заметки
// сохраняются. Новый слот проходит те же проверки, что и при создании, при
// этом само переносимое бронирование исключается из проверки конфликтов -
// перенос внутри собственного интервала (например, сдвиг на полчаса вглубь
// своего же слота) легален.
//
// При отклонении по любой причине бронирование остается нетронутым.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: id=%d, user=%d, newDate=%s, newTime=%s",
		req.ReservationID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 3. Загрузка, проверки и перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем бронирование с блокировкой строки
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationstore.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.2. Перенос доступен только участникам бронирования
		if req.UserID != reservation.ClientID && req.UserID != reservation.TrainerID {
			uc.logger.Warn("RescheduleReservation: user=%d is not a party of reservation id=%d",
				req.UserID, req.ReservationID)
			return ErrAccessDenied
		}

		// 3.3. Финальные статусы переносить нельзя
		if !reservation.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d in status %s cannot be rescheduled",
				req.ReservationID, reservation.Status)
			return ErrCannotReschedule
		}

		// 3.4. Собираем конфигурацию тренера на новую дату
		cfg, blackouts := uc.loadConfig(txCtx, reservation.TrainerID, req)

		// 3.5. Проверки новой даты
		if isDateInPast(req.NewDate, now) {
			uc.logger.Warn("RescheduleReservation: date %s is in the past", req.NewDate.Format(domain.DateFormat))
			return ErrInvalidDate
		}
		if !cfg.Horizon.Allows(req.NewDate, now) {
			uc.logger.Warn("RescheduleReservation: date %s is beyond booking horizon (%d days)",
				req.NewDate.Format(domain.DateFormat), cfg.Horizon.MaxDays)
			return ErrDateTooFarInFuture
		}

		startMin, err := req.NewStartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		slotStart := slotMoment(req.NewDate, startMin, now)
		if slotStart.Before(cfg.Notice.Floor(now)) {
			uc.logger.Warn("RescheduleReservation: slot %s %s violates advance notice",
				req.NewDate.Format(domain.DateFormat), req.NewStartTime)
			return ErrTooLateToBook
		}

		if domain.AnyBlackoutCovers(blackouts, req.NewDate) {
			uc.logger.Warn("RescheduleReservation: date %s is blacked out", req.NewDate.Format(domain.DateFormat))
			return ErrDateBlackedOut
		}

		endMin := startMin + reservation.DurationMinutes
		if !fitsWorkingBlocks(cfg.Day, startMin, endMin) {
			uc.logger.Warn("RescheduleReservation: slot %s is outside working hours", req.NewStartTime)
			return ErrOutsideWorkingHours
		}

		// 3.6. Читаем бронирования нового дня с блокировкой, исключая переносимое
		filter := domain.TrainerReservationsFilter{
			TrainerID: reservation.TrainerID,
			StartDate: &req.NewDate,
			EndDate:   &req.NewDate,
			ExcludeID: ptr.Ptr(reservation.ID),
		}
		reservations, err := uc.reservationRepo.GetByTrainerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		if domain.Conflicts(startMin, endMin, reservations, cfg.Buffer) {
			uc.logger.Warn("RescheduleReservation: slot %s conflicts with existing reservation", req.NewStartTime)
			return ErrRescheduleConflict
		}

		newEndTime, err := req.NewStartTime.AddMinutes(reservation.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: slot crosses midnight: %v", ErrInvalidInput, err)
		}

		// 3.7. Переносим, сохраняя статус и остальные поля
		updated, err := uc.reservationRepo.UpdateTime(txCtx, reservation.ID,
			req.NewDate, req.NewStartTime, newEndTime, reservation.DurationMinutes)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: successfully moved reservation id=%d to %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

// loadConfig собирает разрешённую конфигурацию тренера на новую дату.
// Ошибки чтения деградируют до значений по умолчанию, как при создании.
func (uc *UseCase) loadConfig(ctx context.Context, trainerID int64, req *Request) (domain.ResolvedConfig, []*domain.BlackoutRange) {
	schedule, err := uc.scheduleRepo.GetByTrainerID(ctx, trainerID)
	if err != nil && !errors.Is(err, schedulestore.ErrScheduleNotFound) {
		uc.logger.Warn("RescheduleReservation: failed to load schedule for trainer=%d, falling back to default window: %v",
			trainerID, err)
		schedule = nil
	}

	var buffer domain.BufferPolicy
	var notice domain.AdvanceNoticePolicy
	var horizon domain.HorizonPolicy
	policies, err := uc.policyRepo.GetByTrainerID(ctx, trainerID)
	if err != nil && !errors.Is(err, policystore.ErrPoliciesNotFound) {
		uc.logger.Warn("RescheduleReservation: failed to load policies for trainer=%d, treating as inactive: %v",
			trainerID, err)
	}
	if policies != nil {
		buffer = policies.Buffer
		notice = policies.Notice
		horizon = policies.Horizon
	}

	blackouts, err := uc.blackoutRepo.ListForDate(ctx, trainerID, req.LocationID, req.NewDate)
	if err != nil {
		uc.logger.Warn("RescheduleReservation: failed to load blackouts for trainer=%d: %v", trainerID, err)
		blackouts = nil
	}

	// Каталог длительностей не нужен: длительность берется из самого бронирования
	cfg := domain.ResolveConfig(schedule, req.NewDate, nil, buffer, notice, horizon)
	return cfg, blackouts
}
