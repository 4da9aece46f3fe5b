package notifyservice

// Event тип события бронирования
type Event string

const (
	EventBookingCreated     Event = "booking_created"
	EventBookingRescheduled Event = "booking_rescheduled"
	EventBookingCancelled   Event = "booking_cancelled"
)

// Notification запрос на отправку уведомления клиенту (SMS/email)
type Notification struct {
	Event            Event  `json:"event"`
	BookingID        int64  `json:"bookingId"`
	CustomerRef      string `json:"customerRef"`
	ServiceType      string `json:"serviceType"`
	StartTime        string `json:"startTime"` // RFC3339
	ConfirmationCode string `json:"confirmationCode,omitempty"`
	Reason           string `json:"reason,omitempty"`
}
