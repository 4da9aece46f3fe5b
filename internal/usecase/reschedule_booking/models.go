package reschedule_booking

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID    int64     // ID бронирования
	NewStartTime time.Time // Новое время начала (длительность не меняется)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID               int64
	CustomerRef      string
	TechnicianID     int64
	ServiceType      domain.ServiceType
	StartTime        time.Time
	DurationMinutes  int
	Status           domain.BookingStatus
	ConfirmationCode string
	Notes            *string
	UpdatedAt        time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		CustomerRef:      b.CustomerRef,
		TechnicianID:     b.TechnicianID,
		ServiceType:      b.ServiceType,
		StartTime:        b.StartTime,
		DurationMinutes:  b.DurationMinutes,
		Status:           b.Status,
		ConfirmationCode: b.ConfirmationCode,
		Notes:            b.Notes,
		UpdatedAt:        b.UpdatedAt,
	}
}
