package create_booking

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

// maxCodeAttempts число попыток сгенерировать уникальный код подтверждения
// Уникальность обеспечивает unique constraint в БД, при коллизии вставка повторяется
const maxCodeAttempts = 3

// conflictWindowPad запас окна выборки вокруг интервала кандидата
// Покрывает максимальную длительность бронирования (8 часов) плюс максимальный буфер,
// чтобы в выборку попали все бронирования, чьи буферизованные интервалы могут
// пересечься с кандидатом
const conflictWindowPad = 9 * time.Hour

// UseCase координатор создания бронирования
// Единственный корректный путь записи: проверка конфликтов и вставка выполняются
// в одной сериализуемой транзакции, поэтому из N конкурентных попыток на
// пересекающиеся интервалы успешной окажется ровно одна
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	hours        scheduling.BusinessHours
	timeProvider TimeProvider
	codeGen      CodeGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	hours scheduling.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		codeGen:      &RandomCodeGenerator{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, technician=%d, service=%s, start=%s",
		req.CustomerRef, req.TechnicianID, req.ServiceType, req.StartTime.Format(time.RFC3339))

	now := uc.timeProvider.Now()

	// 1. Чистая валидация до любого обращения к хранилищу
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = scheduling.DurationFor(req.ServiceType)
	}

	// 2. Интервал должен попадать в рабочие часы
	if err := validateBusinessHours(req.StartTime, duration, uc.hours); err != nil {
		uc.logger.Warn("CreateBooking: business hours check failed: %v", err)
		return nil, err
	}

	// 3. Транзакционная попытка с повтором при коллизии кода подтверждения
	var result *domain.Booking
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := uc.codeGen.Generate()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate confirmation code: %v", err)
			return nil, fmt.Errorf("%w: failed to generate confirmation code: %v", ErrInternal, err)
		}

		result, err = uc.attempt(ctx, req, duration, code)
		if err == nil {
			break
		}
		if errors.Is(err, bookingRepo.ErrDuplicateConfirmationCode) {
			uc.logger.Warn("CreateBooking: confirmation code collision, attempt %d/%d", attempt, maxCodeAttempts)
			if attempt == maxCodeAttempts {
				return nil, fmt.Errorf("%w: %d attempts", ErrCodeCollision, maxCodeAttempts)
			}
			continue
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s", result.ID, result.ConfirmationCode)

	// 4. Уведомления и календарь — best-effort после фиксации транзакции
	uc.notifier.BookingCreated(result)

	return fromDomain(result), nil
}

// attempt одна транзакционная попытка: свежая выборка бронирований техника,
// проверка конфликтов и вставка на одном снимке данных
func (uc *UseCase) attempt(ctx context.Context, req *Request, duration int, code string) (*domain.Booking, error) {
	candidate := scheduling.Candidate{
		TechnicianID:    req.TechnicianID,
		ServiceType:     req.ServiceType,
		Start:           req.StartTime,
		DurationMinutes: duration,
	}

	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Свежая выборка ВНУТРИ транзакции: решение о конфликте никогда
		// не принимается по закэшированному состоянию
		filter := domain.TechnicianBookingsFilter{
			TechnicianID: req.TechnicianID,
			From:         ptr.Ptr(req.StartTime.Add(-conflictWindowPad)),
			To:           ptr.Ptr(candidate.End().Add(conflictWindowPad)),
		}

		existing, err := uc.bookingRepo.GetByTechnicianWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if result := scheduling.CheckConflict(candidate, existing); !result.CanBook {
			uc.logger.Warn("CreateBooking: conflict with booking id=%d", result.Conflicting.ID)
			return &ConflictError{Conflicting: result.Conflicting, Reason: result.Reason}
		}

		booking := &domain.Booking{
			CustomerRef:      req.CustomerRef,
			TechnicianID:     req.TechnicianID,
			ServiceType:      req.ServiceType,
			StartTime:        req.StartTime,
			DurationMinutes:  duration,
			Status:           domain.StatusPending,
			ConfirmationCode: code,
			Notes:            req.Notes,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
		return nil, err
	}

	return created, nil
}
