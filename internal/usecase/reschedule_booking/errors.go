package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/fixwise/booking-service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInvalidInterval возвращается при некорректном новом интервале
	ErrInvalidInterval = errors.New("reschedule_booking: invalid booking interval")

	// ErrOutsideBusinessHours возвращается, когда новый интервал вне рабочих часов
	ErrOutsideBusinessHours = errors.New("reschedule_booking: interval is outside business hours")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается, когда статус бронирования не допускает перенос
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrCutoffViolation возвращается при попытке переноса менее чем за сутки
	// до начала бронирования
	ErrCutoffViolation = errors.New("reschedule_booking: cutoff violation")

	// ErrSlotConflict возвращается, когда новый интервал занят
	ErrSlotConflict = errors.New("reschedule_booking: slot conflict")

	// ErrTransientStore возвращается после исчерпания повторов сериализуемой транзакции
	ErrTransientStore = errors.New("reschedule_booking: transient store error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// CutoffError несёт оставшееся до начала время для сообщения клиенту
type CutoffError struct {
	HoursRemaining float64
	CutoffHours    int
}

// Error возвращает описание нарушения
func (e *CutoffError) Error() string {
	return fmt.Sprintf("%v: %.1f hours remaining, cutoff is %d hours",
		ErrCutoffViolation, e.HoursRemaining, e.CutoffHours)
}

// Unwrap позволяет errors.Is(err, ErrCutoffViolation)
func (e *CutoffError) Unwrap() error {
	return ErrCutoffViolation
}

// ConflictError несёт бронирование, с которым столкнулся новый интервал
type ConflictError struct {
	Conflicting *domain.Booking
	Reason      string
}

// Error возвращает описание конфликта
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: booking id=%d: %s", ErrSlotConflict, e.Conflicting.ID, e.Reason)
}

// Unwrap позволяет errors.Is(err, ErrSlotConflict)
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
