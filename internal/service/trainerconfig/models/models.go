package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("invalid trainer config")
)

// DTO модели

// TimeBlockDTO рабочий блок внутри дня
type TimeBlockDTO struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// DayScheduleDTO расписание одного дня недели
type DayScheduleDTO struct {
	DayOfWeek int            `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	Available bool           `json:"available"`
	Blocks    []TimeBlockDTO `json:"blocks,omitempty"`
}

// WeeklyScheduleDTO недельное расписание тренера
type WeeklyScheduleDTO struct {
	Active bool             `json:"active"`
	Days   []DayScheduleDTO `json:"days"`
}

// BufferPolicyDTO буферы вокруг бронирований
type BufferPolicyDTO struct {
	Active        bool `json:"active"`
	MinutesBefore int  `json:"minutesBefore"`
	MinutesAfter  int  `json:"minutesAfter"`
}

// NoticePolicyDTO минимальное время предупреждения
type NoticePolicyDTO struct {
	Active         bool `json:"active"`
	MinutesMinimum int  `json:"minutesMinimum"`
}

// HorizonPolicyDTO горизонт бронирования
type HorizonPolicyDTO struct {
	Active  bool `json:"active"`
	MaxDays int  `json:"maxDays"`
}

// PoliciesDTO набор политик бронирования
type PoliciesDTO struct {
	Buffer  BufferPolicyDTO  `json:"buffer"`
	Notice  NoticePolicyDTO  `json:"notice"`
	Horizon HorizonPolicyDTO `json:"horizon"`
}

// SessionDurationDTO запись каталога длительностей
type SessionDurationDTO struct {
	ID      int64   `json:"id,omitempty"`
	Minutes int     `json:"minutes"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Active  bool    `json:"active"`
}

// BlackoutRangeDTO диапазон недоступности
type BlackoutRangeDTO struct {
	ID        int64  `json:"id"`
	StartDate string `json:"startDate"` // "2026-09-01"
	EndDate   string `json:"endDate"`   // включительно
	Reason    string `json:"reason,omitempty"`
}

// Request модели

// UpdateScheduleRequest запрос на обновление недельного расписания
type UpdateScheduleRequest struct {
	UserID   int64             `json:"userId"`
	Schedule WeeklyScheduleDTO `json:"schedule"`
}

// UpdatePoliciesRequest запрос на обновление политик
type UpdatePoliciesRequest struct {
	UserID   int64       `json:"userId"`
	Policies PoliciesDTO `json:"policies"`
}

// ReplaceDurationsRequest запрос на полную замену каталога длительностей
type ReplaceDurationsRequest struct {
	UserID    int64                `json:"userId"`
	Durations []SessionDurationDTO `json:"durations"`
}

// CreateBlackoutRequest запрос на создание блэкаута
type CreateBlackoutRequest struct {
	UserID    int64  `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// Response модели

// TrainerConfigResponse полная конфигурация бронирования тренера
type TrainerConfigResponse struct {
	TrainerID int64                `json:"trainerId"`
	Schedule  WeeklyScheduleDTO    `json:"schedule"`
	Policies  PoliciesDTO          `json:"policies"`
	Durations []SessionDurationDTO `json:"durations"`
	Blackouts []BlackoutRangeDTO   `json:"blackouts"`
}

// Методы конвертации

// ToDomainSchedule конвертирует DTO в domain модель с валидацией
func (d *WeeklyScheduleDTO) ToDomainSchedule(trainerID int64) (*domain.WeeklySchedule, error) {
	schedule := &domain.WeeklySchedule{
		TrainerID: trainerID,
		Active:    d.Active,
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		schedule.Days[int(wd)] = domain.DaySchedule{DayOfWeek: wd}
	}

	for _, day := range d.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: dayOfWeek must be 0..6, got %d", ErrInvalidConfig, day.DayOfWeek)
		}
		ds := domain.DaySchedule{
			DayOfWeek: time.Weekday(day.DayOfWeek),
			Available: day.Available,
		}
		for _, block := range day.Blocks {
			start, err := types.NewTimeStringFromString(block.Start)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			end, err := types.NewTimeStringFromString(block.End)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			ds.Blocks = append(ds.Blocks, domain.TimeBlock{Start: start, End: end})
		}
		schedule.Days[day.DayOfWeek] = ds
	}

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return schedule, nil
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) WeeklyScheduleDTO {
	dto := WeeklyScheduleDTO{Active: s.Active}
	for _, day := range s.Days {
		dayDTO := DayScheduleDTO{
			DayOfWeek: int(day.DayOfWeek),
			Available: day.Available,
		}
		for _, block := range day.Blocks {
			dayDTO.Blocks = append(dayDTO.Blocks, TimeBlockDTO{
				Start: block.Start.String(),
				End:   block.End.String(),
			})
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}

// Validate проверяет границы значений политик
func (d *PoliciesDTO) Validate() error {
	if d.Buffer.MinutesBefore < 0 || d.Buffer.MinutesBefore > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer minutesBefore must be 0..%d", ErrInvalidConfig, domain.MaxBufferMinutes)
	}
	if d.Buffer.MinutesAfter < 0 || d.Buffer.MinutesAfter > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer minutesAfter must be 0..%d", ErrInvalidConfig, domain.MaxBufferMinutes)
	}
	if d.Notice.MinutesMinimum < 0 || d.Notice.MinutesMinimum > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: notice minutesMinimum must be 0..%d", ErrInvalidConfig, domain.MaxNoticeMinutes)
	}
	if d.Horizon.MaxDays < 0 || d.Horizon.MaxDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizon maxDays must be 0..%d", ErrInvalidConfig, domain.MaxHorizonDays)
	}
	return nil
}

// ToDomainPolicies конвертирует DTO в domain политики
func (d *PoliciesDTO) ToDomainPolicies() (domain.BufferPolicy, domain.AdvanceNoticePolicy, domain.HorizonPolicy) {
	return domain.BufferPolicy{
			Active:        d.Buffer.Active,
			MinutesBefore: d.Buffer.MinutesBefore,
			MinutesAfter:  d.Buffer.MinutesAfter,
		}, domain.AdvanceNoticePolicy{
			Active:         d.Notice.Active,
			MinutesMinimum: d.Notice.MinutesMinimum,
		}, domain.HorizonPolicy{
			Active:  d.Horizon.Active,
			MaxDays: d.Horizon.MaxDays,
		}
}

// FromDomainPolicies конвертирует domain политики в DTO
func FromDomainPolicies(buffer domain.BufferPolicy, notice domain.AdvanceNoticePolicy, horizon domain.HorizonPolicy) PoliciesDTO {
	return PoliciesDTO{
		Buffer: BufferPolicyDTO{
			Active:        buffer.Active,
			MinutesBefore: buffer.MinutesBefore,
			MinutesAfter:  buffer.MinutesAfter,
		},
		Notice: NoticePolicyDTO{
			Active:         notice.Active,
			MinutesMinimum: notice.MinutesMinimum,
		},
		Horizon: HorizonPolicyDTO{
			Active:  horizon.Active,
			MaxDays: horizon.MaxDays,
		},
	}
}

// ToDomainDurations конвертирует DTO каталога в domain модели с валидацией
func ToDomainDurations(dtos []SessionDurationDTO) ([]domain.SessionDuration, error) {
	durations := make([]domain.SessionDuration, 0, len(dtos))
	for _, d := range dtos {
		if d.Minutes < domain.MinSessionDurationMinutes || d.Minutes > domain.MaxSessionDurationMinutes {
			return nil, fmt.Errorf("%w: duration minutes must be %d..%d",
				ErrInvalidConfig, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
		if d.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidConfig)
		}
		durations = append(durations, domain.SessionDuration{
			Minutes: d.Minutes,
			Name:    d.Name,
			Price:   d.Price,
			Active:  d.Active,
		})
	}
	return durations, nil
}

// FromDomainDurations конвертирует каталог в DTO
func FromDomainDurations(durations []domain.SessionDuration) []SessionDurationDTO {
	dtos := make([]SessionDurationDTO, 0, len(durations))
	for _, d := range durations {
		dtos = append(dtos, SessionDurationDTO{
			ID:      d.ID,
			Minutes: d.Minutes,
			Name:    d.Name,
			Price:   d.Price,
			Active:  d.Active,
		})
	}
	return dtos
}

// ToDomainBlackout конвертирует запрос в domain модель с валидацией
func (r *CreateBlackoutRequest) ToDomainBlackout(trainerID int64) (*domain.BlackoutRange, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidConfig, err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidConfig, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidConfig)
	}
	if len(r.Reason) > domain.MaxBlackoutReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidConfig, domain.MaxBlackoutReasonLength)
	}

	return &domain.BlackoutRange{
		Scope:     domain.ScopeTrainer,
		OwnerID:   trainerID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    r.Reason,
	}, nil
}

// FromDomainBlackouts конвертирует блэкауты в DTO
func FromDomainBlackouts(blackouts []*domain.BlackoutRange) []BlackoutRangeDTO {
	dtos := make([]BlackoutRangeDTO, 0, len(blackouts))
	for _, b := range blackouts {
		dtos = append(dtos, BlackoutRangeDTO{
			ID:        b.ID,
			StartDate: b.StartDate.Format(domain.DateFormat),
			EndDate:   b.EndDate.Format(domain.DateFormat),
			Reason:    b.Reason,
		})
	}
	return dtos
}
