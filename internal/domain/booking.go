package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no_show"
)

// ServiceType represents the kind of work a technician performs
type ServiceType string

const (
	ServicePlumbing   ServiceType = "plumbing"
	ServiceElectrical ServiceType = "electrical"
	ServiceHVAC       ServiceType = "hvac"
	ServiceInspection ServiceType = "inspection"
)

// Booking represents an appointment with a technician
type Booking struct {
	ID               int64
	CustomerRef      string // внешний идентификатор клиента (из чата или дашборда)
	TechnicianID     int64
	ServiceType      ServiceType
	StartTime        time.Time
	DurationMinutes  int
	Status           BookingStatus
	ConfirmationCode string
	Notes            *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the booked interval (half-open, end is excluded)
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking occupies its interval for conflict checks
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// CanBeRescheduled returns true if the booking can be moved to a new interval
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// TechnicianBookingsFilter фильтр для выборки бронирований техника
type TechnicianBookingsFilter struct {
	TechnicianID    int64          // Обязательный параметр
	From            *time.Time     // Начало окна по start_time (включительно, опционально)
	To              *time.Time     // Конец окна по start_time (исключительно, опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show бронирования
}
