package domain

// Default scheduling policy values
const (
	DefaultOpenTime          = "09:00"
	DefaultCloseTime         = "17:00"
	DefaultSlotMinutes       = 60
	DefaultCutoffHours       = 24 // запрет переноса/отмены менее чем за сутки
	DefaultSearchHorizonDays = 30
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 часов
	MaxNotesLength     = 500
	MaxReasonLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не участвующие в проверке конфликтов
// Отменённые и no-show бронирования не занимают свой интервал
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы бронирований, занимающих свой интервал
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
	StatusCompleted,
}

// KnownStatuses все допустимые статусы бронирования
var KnownStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// IsKnownStatus проверяет, что статус входит в закрытый список
func IsKnownStatus(s BookingStatus) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}
