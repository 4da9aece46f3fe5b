package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/fixwise/booking-service/internal/domain"
	bookingRepo "github.com/fixwise/booking-service/internal/infra/storage/booking"
	"github.com/fixwise/booking-service/internal/service/bookings/models"
	"github.com/fixwise/booking-service/pkg/confirmcode"
)

// Service сервис для чтения, отмены и подтверждения бронирований
// Создание и перенос требуют сериализуемой транзакции и живут в отдельных
// usecase-пакетах; здесь собраны операции без проверки конфликтов
type Service struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	cutoffHours  int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	cutoffHours int,
	logger Logger,
) *Service {
	if cutoffHours <= 0 {
		cutoffHours = domain.DefaultCutoffHours
	}
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		cutoffHours:  cutoffHours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%v", req.CustomerRef, req.Status)

	if req.CustomerRef == "" {
		return nil, fmt.Errorf("%w: customerRef is required", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerRef)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerRef(ctx, req.CustomerRef, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerRef, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%s", len(bookings), req.CustomerRef)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отмена подчиняется тому же правилу суток, что и перенос: менее чем за
// cutoffHours до начала бронирование отменить нельзя
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	hoursRemaining := booking.StartTime.Sub(now).Hours()
	if hoursRemaining < float64(s.cutoffHours) {
		s.logger.Warn("Cancel: cutoff violation for booking id=%d, %.1f hours remaining", bookingID, hoursRemaining)
		return nil, &CutoffError{HoursRemaining: hoursRemaining, CutoffHours: s.cutoffHours}
	}

	var reason *string
	if req.CancellationReason != "" {
		reason = &req.CancellationReason
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	booking.CancellationReason = reason
	booking.CancelledAt = &now

	s.notifier.BookingCancelled(booking, req.CancellationReason)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// VerifyConfirmationCode сверяет код клиента с кодом бронирования
// Сравнение строгое, с учётом регистра; несовпадение не является ошибкой
func (s *Service) VerifyConfirmationCode(ctx context.Context, bookingID int64, suppliedCode string) (*models.VerifyCodeResponse, error) {
	s.logger.Info("VerifyConfirmationCode: verifying code for booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("VerifyConfirmationCode: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("VerifyConfirmationCode: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: VerifyConfirmationCode - repository error: %v", ErrInternal, err)
	}

	valid := confirmcode.Matches(booking.ConfirmationCode, suppliedCode)
	if !valid {
		s.logger.Warn("VerifyConfirmationCode: code mismatch for booking id=%d", bookingID)
	}

	return &models.VerifyCodeResponse{BookingID: bookingID, Valid: valid}, nil
}
