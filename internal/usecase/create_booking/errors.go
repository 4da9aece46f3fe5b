package create_booking

import (
	"errors"
	"fmt"

	"github.com/fixwise/booking-service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidInterval возвращается при некорректном интервале бронирования:
	// нулевая или отрицательная длительность, либо начало в прошлом
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrOutsideBusinessHours возвращается, когда интервал не попадает в рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: interval is outside business hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с буферизованным
	// интервалом существующего бронирования. Ожидаемый бизнес-исход, не сбой
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrTransientStore возвращается, когда сериализуемая транзакция не смогла
	// зафиксироваться после всех повторов. В отличие от ErrSlotConflict вызывающий
	// код может повторить ту же операцию, а не предлагать другой слот
	ErrTransientStore = errors.New("create_booking: transient store error")

	// ErrCodeCollision возвращается, когда не удалось сгенерировать уникальный
	// код подтверждения за отведённое число попыток
	ErrCodeCollision = errors.New("create_booking: confirmation code collision")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError несёт бронирование, с которым столкнулся кандидат
// Разворачивается в ErrSlotConflict для errors.Is
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
