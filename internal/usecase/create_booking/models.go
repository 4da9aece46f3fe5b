package create_booking

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerRef     string             // Внешний идентификатор клиента
	TechnicianID    int64              // ID техника
	ServiceType     domain.ServiceType // Тип услуги
	StartTime       time.Time          // Начало интервала
	DurationMinutes int                // Длительность в минутах (0 = длительность услуги)
	Notes           *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
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
	CreatedAt        time.Time
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
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
