package find_next_slot

import (
	"time"

	findNextSlot "github.com/fixwise/booking-service/internal/usecase/find_next_slot"
)

// NextSlotResponse HTTP response model
type NextSlotResponse struct {
	TechnicianID    int64  `json:"technicianId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	DaysAhead       int    `json:"daysAhead"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNextSlot.Response) *NextSlotResponse {
	return &NextSlotResponse{
		TechnicianID:    resp.TechnicianID,
		StartTime:       resp.Start.Format(time.RFC3339),
		EndTime:         resp.End.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		DaysAhead:       resp.DaysAhead,
	}
}
