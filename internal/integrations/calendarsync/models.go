package calendarsync

// CalendarEvent событие в календаре техника у внешнего провайдера
type CalendarEvent struct {
	BookingID    int64  `json:"bookingId"`
	TechnicianID int64  `json:"technicianId"`
	ServiceType  string `json:"serviceType"`
	Start        string `json:"start"` // RFC3339
	End          string `json:"end"`   // RFC3339
	CustomerRef  string `json:"customerRef"`
}
