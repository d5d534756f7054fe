package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	policystore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/policy"
	schedulestore "github.com/fitcrm/FC-ReservationService/internal/infra/storage/schedule"
)

// UseCase use case для вычисления доступности тренера на дату
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	policyRepo      PolicyRepository
	durationRepo    DurationRepository
	blackoutRepo    BlackoutRepository
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
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		policyRepo:      policyRepo,
		durationRepo:    durationRepo,
		blackoutRepo:    blackoutRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case вычисления доступных слотов.
//
// Деградация: ошибки чтения расписания, каталога, политик и блэкаутов не
// прерывают запрос - соответствующая часть конфигурации трактуется как
// ненастроенная, что дает более широкую (legacy) выдачу слотов. Только
// ошибка чтения бронирований фатальна: без них нельзя гарантировать
// отсутствие конфликтов в выдаче.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: trainer=%d, date=%s",
		req.TrainerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом - пустая выдача, не ошибка
	if isDateInPast(req.Date, now) {
		return uc.emptyResponse(req), nil
	}

	// 4. Параллельно читаем конфигурацию, блэкауты и бронирования дня
	var (
		schedule     *domain.WeeklySchedule
		catalog      []domain.SessionDuration
		policies     *policystore.Policies
		blackouts    []*domain.BlackoutRange
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := uc.scheduleRepo.GetByTrainerID(gctx, req.TrainerID)
		if err != nil && !errors.Is(err, schedulestore.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailability: failed to load schedule for trainer=%d, falling back to default window: %v",
				req.TrainerID, err)
			return nil
		}
		schedule = s
		return nil
	})

	g.Go(func() error {
		c, err := uc.durationRepo.ListByTrainer(gctx, req.TrainerID)
		if err != nil {
			uc.logger.Warn("GetAvailability: failed to load duration catalog for trainer=%d, falling back to implicit duration: %v",
				req.TrainerID, err)
			return nil
		}
		catalog = c
		return nil
	})

	g.Go(func() error {
		p, err := uc.policyRepo.GetByTrainerID(gctx, req.TrainerID)
		if err != nil && !errors.Is(err, policystore.ErrPoliciesNotFound) {
			uc.logger.Warn("GetAvailability: failed to load policies for trainer=%d, treating as inactive: %v",
				req.TrainerID, err)
			return nil
		}
		policies = p
		return nil
	})

	g.Go(func() error {
		b, err := uc.blackoutRepo.ListForDate(gctx, req.TrainerID, req.LocationID, req.Date)
		if err != nil {
			// fail-open: недоступный список блэкаутов не скрывает слоты
			uc.logger.Warn("GetAvailability: failed to load blackouts for trainer=%d: %v", req.TrainerID, err)
			return nil
		}
		blackouts = b
		return nil
	})

	g.Go(func() error {
		filter := domain.TrainerReservationsFilter{
			TrainerID: req.TrainerID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		r, err := uc.reservationRepo.GetByTrainerWithFilter(gctx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		reservations = r
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailability: trainer=%d: %v", req.TrainerID, err)
		return nil, err
	}

	// 5. Разрешаем конфигурацию с учетом значений по умолчанию
	cfg := resolveConfig(schedule, req.Date, catalog, policies)
	if cfg.LegacyWindow {
		uc.logger.Info("GetAvailability: trainer=%d has no active schedule for %s, using default window",
			req.TrainerID, req.Date.Format(domain.DateFormat))
	}

	// 6. Горизонт бронирования: дата за горизонтом - пустая выдача
	if !cfg.Horizon.Allows(req.Date, now) {
		uc.logger.Info("GetAvailability: date %s is beyond booking horizon (%d days) for trainer=%d",
			req.Date.Format(domain.DateFormat), cfg.Horizon.MaxDays, req.TrainerID)
		return uc.emptyResponse(req), nil
	}

	// 7. Блэкауты закрывают дату целиком
	if domain.AnyBlackoutCovers(blackouts, req.Date) {
		uc.logger.Info("GetAvailability: date %s is blacked out for trainer=%d",
			req.Date.Format(domain.DateFormat), req.TrainerID)
		return uc.emptyResponse(req), nil
	}

	// 8. Генерируем слоты
	slots := generateSlots(cfg, req.Date, now, reservations)

	uc.logger.Info("GetAvailability: generated %d slots for trainer=%d, date=%s",
		len(slots), req.TrainerID, req.Date.Format(domain.DateFormat))

	return &Response{
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Slots:     []Slot{},
	}
}

// resolveConfig собирает domain.ResolvedConfig из прочитанных частей.
// Отсутствующие политики трактуются как неактивные.
func resolveConfig(
	schedule *domain.WeeklySchedule,
	date time.Time,
	catalog []domain.SessionDuration,
	policies *policystore.Policies,
) domain.ResolvedConfig {
	var buffer domain.BufferPolicy
	var notice domain.AdvanceNoticePolicy
	var horizon domain.HorizonPolicy
	if policies != nil {
		buffer = policies.Buffer
		notice = policies.Notice
		horizon = policies.Horizon
	}
	return domain.ResolveConfig(schedule, date, catalog, buffer, notice, horizon)
}
