package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCannotCancel возвращается, когда статус бронирования не допускает отмену
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCutoffViolation возвращается при попытке отмены менее чем за сутки
	// до начала бронирования
	ErrCutoffViolation = errors.New("cutoff violation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
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
