package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	bookingRepo "github.com/fixwise/booking-service/internal/infra/storage/booking"
	"github.com/fixwise/booking-service/internal/scheduling"
	"github.com/fixwise/booking-service/pkg/ptr"
	"github.com/fixwise/booking-service/pkg/txmanager"
)

// conflictWindowPad запас окна выборки вокруг нового интервала
// Покрывает максимальную длительность бронирования плюс максимальный буфер
const conflictWindowPad = 9 * time.Hour

// UseCase координатор переноса бронирования
// Перенос повторяет протокол создания: проверка конфликтов по новому интервалу
// и обновление строки выполняются в одной сериализуемой транзакции.
// Строка обновляется на месте, дубликат не создаётся
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	hours        scheduling.BusinessHours
	cutoffHours  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	hours scheduling.BusinessHours,
	cutoffHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		hours:        hours,
		cutoffHours:  cutoffHours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, newStart=%s",
		req.BookingID, req.NewStartTime.Format(time.RFC3339))

	now := uc.timeProvider.Now()

	// 1. Чистая валидация
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Предварительные проверки вне транзакции: существование, статус, cutoff
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d has status=%s", booking.ID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// Cutoff — чистый guard до транзакции, считается от ТЕКУЩЕГО начала бронирования
	if err := checkCutoff(booking, now, uc.cutoffHours); err != nil {
		uc.logger.Warn("RescheduleBooking: %v", err)
		return nil, err
	}

	// 3. Новый интервал должен попадать в рабочие часы
	if err := validateBusinessHours(req.NewStartTime, booking.DurationMinutes, uc.hours); err != nil {
		uc.logger.Warn("RescheduleBooking: business hours check failed: %v", err)
		return nil, err
	}

	// 4. Транзакционный перенос
	var updated *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Свежее состояние строки под блокировкой: статус мог измениться
		// между предварительной проверкой и транзакцией
		fresh, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to refetch booking: %v", ErrInternal, err)
		}
		if !fresh.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		candidate := scheduling.Candidate{
			TechnicianID:    fresh.TechnicianID,
			ServiceType:     fresh.ServiceType,
			Start:           req.NewStartTime,
			DurationMinutes: fresh.DurationMinutes,
		}

		filter := domain.TechnicianBookingsFilter{
			TechnicianID: fresh.TechnicianID,
			From:         ptr.Ptr(req.NewStartTime.Add(-conflictWindowPad)),
			To:           ptr.Ptr(candidate.End().Add(conflictWindowPad)),
		}

		existing, err := uc.bookingRepo.GetByTechnicianWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// Само переносимое бронирование не конфликтует со своим новым интервалом
		others := make([]*domain.Booking, 0, len(existing))
		for _, b := range existing {
			if b.ID != fresh.ID {
				others = append(others, b)
			}
		}

		if result := scheduling.CheckConflict(candidate, others); !result.CanBook {
			uc.logger.Warn("RescheduleBooking: conflict with booking id=%d", result.Conflicting.ID)
			return &ConflictError{Conflicting: result.Conflicting, Reason: result.Reason}
		}

		if err := uc.bookingRepo.Reschedule(txCtx, fresh.ID, req.NewStartTime); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		fresh.StartTime = req.NewStartTime
		fresh.Status = domain.StatusRescheduled
		updated = fresh
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleBooking: serialization retries exhausted: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s",
		updated.ID, updated.StartTime.Format(time.RFC3339))

	// 5. Уведомления — best-effort после фиксации
	uc.notifier.BookingRescheduled(updated)

	return fromDomain(updated), nil
}
