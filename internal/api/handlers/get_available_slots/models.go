package get_available_slots

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	getAvailableSlots "github.com/fixwise/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TechnicianID int64             `json:"technicianId"`
	ServiceType  string            `json:"serviceType"`
	Days         []DayAvailability `json:"days"`
}

// DayAvailability доступность на один рабочий день
type DayAvailability struct {
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"availableSlots"`
	TotalSlots     int             `json:"totalSlots"`
}

// AvailableSlot модель свободного временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]AvailableSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = AvailableSlot{
				StartTime:       slot.Start.Format(time.RFC3339),
				EndTime:         slot.End.Format(time.RFC3339),
				DurationMinutes: slot.DurationMinutes,
			}
		}
		days[i] = DayAvailability{
			Date:           day.Date.Format(domain.DateFormat),
			AvailableSlots: slots,
			TotalSlots:     day.TotalSlots,
		}
	}

	return &AvailableSlotsResponse{
		TechnicianID: resp.TechnicianID,
		ServiceType:  string(resp.ServiceType),
		Days:         days,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(technicianID int64, serviceType, dateStr string, days int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TechnicianID: technicianID,
		ServiceType:  domain.ServiceType(serviceType),
		Date:         date,
		Days:         days,
	}, nil
}
