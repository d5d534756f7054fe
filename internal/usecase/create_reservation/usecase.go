package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	durationstore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/duration"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	policyRepo      PolicyRepository
	durationRepo    DurationRepository
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
	durationRepo DurationRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		policyRepo:      policyRepo,
		durationRepo:    durationRepo,
		blackoutRepo:    blackoutRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции:
// чтение бронирований дня блокирует строки (FOR UPDATE), поэтому два
// конкурентных запроса на один слот не могут пройти проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, trainer=%d, date=%s, time=%s",
		req.ClientID, req.TrainerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем длительность: запись каталога либо неявные 60 минут
	sessionType, err := uc.resolveSessionType(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Reservation

	// 4. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Собираем конфигурацию тренера
		cfg, blackouts := uc.loadConfig(txCtx, req, sessionType)

		// 4.2. Горизонт бронирования
		if isDateInPast(req.Date, now) {
			uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrInvalidDate
		}
		if !cfg.Horizon.Allows(req.Date, now) {
			uc.logger.Warn("CreateReservation: date %s is beyond booking horizon (%d days)",
				req.Date.Format(domain.DateFormat), cfg.Horizon.MaxDays)
			return ErrDateTooFarInFuture
		}

		// 4.3. Минимальное время предупреждения
		startMin, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		slotStart := slotMoment(req.Date, startMin, now)
		if slotStart.Before(cfg.Notice.Floor(now)) {
			uc.logger.Warn("CreateReservation: slot %s %s violates advance notice",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrTooLateToBook
		}

		// 4.4. Блэкауты
		if domain.AnyBlackoutCovers(blackouts, req.Date) {
			uc.logger.Warn("CreateReservation: date %s is blacked out for trainer=%d",
				req.Date.Format(domain.DateFormat), req.TrainerID)
			return ErrDateBlackedOut
		}

		// 4.5. Интервал должен целиком помещаться в рабочий блок дня
		endMin := startMin + sessionType.Minutes
		if !fitsWorkingBlocks(cfg.Day, startMin, endMin) {
			uc.logger.Warn("CreateReservation: slot %s-%d min is outside working hours", req.StartTime, sessionType.Minutes)
			return ErrOutsideWorkingHours
		}

		// 4.6. Читаем бронирования дня с блокировкой строк (FOR UPDATE)
		filter := domain.TrainerReservationsFilter{
			TrainerID: req.TrainerID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		reservations, err := uc.reservationRepo.GetByTrainerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.7. Проверка конфликтов с учетом буферов
		if domain.Conflicts(startMin, endMin, reservations, cfg.Buffer) {
			uc.logger.Warn("CreateReservation: slot %s conflicts with existing reservation", req.StartTime)
			return ErrSlotConflict
		}

		endTime, err := req.StartTime.AddMinutes(sessionType.Minutes)
		if err != nil {
			return fmt.Errorf("%w: slot crosses midnight: %v", ErrInvalidInput, err)
		}

		// 4.8. Создаем бронирование с денормализацией данных каталога
		reservation := &domain.Reservation{
			ClientID:        req.ClientID,
			TrainerID:       req.TrainerID,
			SessionTypeID:   req.SessionTypeID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: sessionType.Minutes,
			Status:          initialStatus(req.Source),
			Source:          req.Source,
			SessionName:     sessionType.Name,
			Price:           sessionType.Price,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}

// resolveSessionType возвращает длительность из каталога либо неявную
// 60-минутную, если клиент не указал тип сессии
func (uc *UseCase) resolveSessionType(ctx context.Context, req *Request) (*domain.SessionDuration, error) {
	if req.SessionTypeID == nil {
		implicit := domain.ImplicitDuration()
		return &implicit, nil
	}

	sessionType, err := uc.durationRepo.GetByID(ctx, *req.SessionTypeID)
	if err != nil {
		if errors.Is(err, durationstore.ErrDurationNotFound) {
			uc.logger.Warn("CreateReservation: session type id=%d not found", *req.SessionTypeID)
			return nil, ErrSessionTypeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get session type id=%d: %v", *req.SessionTypeID, err)
		return nil, fmt.Errorf("%w: failed to get session type: %v", ErrInternal, err)
	}

	if sessionType.TrainerID != req.TrainerID || !sessionType.Active {
		uc.logger.Warn("CreateReservation: session type id=%d does not belong to trainer=%d or inactive",
			*req.SessionTypeID, req.TrainerID)
		return nil, ErrSessionTypeNotFound
	}

	return sessionType, nil
}

// loadConfig собирает разрешённую конфигурацию тренера и блэкауты на дату.
// Ошибки чтения конфигурации деградируют до значений по умолчанию: создание
// не должно падать из-за ненастроенного или временно недоступного конфига.
func (uc *UseCase) loadConfig(ctx context.Context, req *Request, sessionType *domain.SessionDuration) (domain.ResolvedConfig, []*domain.BlackoutRange) {
	schedule, err := uc.scheduleRepo.GetByTrainerID(ctx, req.TrainerID)
	if err != nil && !errors.Is(err, schedulestore.ErrScheduleNotFound) {
		uc.logger.Warn("CreateReservation: failed to load schedule for trainer=%d, falling back to default window: %v",
			req.TrainerID, err)
		schedule = nil
	}

	var buffer domain.BufferPolicy
	var notice domain.AdvanceNoticePolicy
	var horizon domain.HorizonPolicy
	policies, err := uc.policyRepo.GetByTrainerID(ctx, req.TrainerID)
	if err != nil && !errors.Is(err, policystore.ErrPoliciesNotFound) {
		uc.logger.Warn("CreateReservation: failed to load policies for trainer=%d, treating as inactive: %v",
			req.TrainerID, err)
	}
	if policies != nil {
		buffer = policies.Buffer
		notice = policies.Notice
		horizon = policies.Horizon
	}

	blackouts, err := uc.blackoutRepo.ListForDate(ctx, req.TrainerID, req.LocationID, req.Date)
	if err != nil {
		// fail-open: недоступный список блэкаутов не блокирует создание
		uc.logger.Warn("CreateReservation: failed to load blackouts for trainer=%d: %v", req.TrainerID, err)
		blackouts = nil
	}

	cfg := domain.ResolveConfig(schedule, req.Date, []domain.SessionDuration{*sessionType}, buffer, notice, horizon)
	return cfg, blackouts
}

// initialStatus возвращает стартовый статус в зависимости от источника:
// записи, созданные тренером вручную, подтверждены сразу
func initialStatus(source domain.ReservationSource) domain.ReservationStatus {
	if source == domain.SourceManual {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}
