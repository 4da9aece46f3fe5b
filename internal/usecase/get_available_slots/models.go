package get_available_slots

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	TechnicianID int64              // ID техника
	ServiceType  domain.ServiceType // Тип услуги (определяет длительность и буфер кандидата)
	Date         time.Time          // Первая дата диапазона (без времени)
	Days         int                // Размер диапазона в днях (0 или 1 = один день)
}

// Response модель ответа: по одной записи на каждый рабочий день диапазона
// Нерабочие дни пропускаются без ошибки
type Response struct {
	TechnicianID int64
	ServiceType  domain.ServiceType
	Days         []DayAvailability
}

// DayAvailability доступность на один рабочий день
type DayAvailability struct {
	Date       time.Time
	Slots      []Slot // Свободные слоты в хронологическом порядке
	TotalSlots int    // Размер структурной сетки дня (до фильтрации)
}

// Slot модель свободного временного слота
type Slot struct {
	Start           time.Time
	End             time.Time
	TechnicianID    int64
	DurationMinutes int
}

func fromTimeSlot(s domain.TimeSlot) Slot {
	return Slot{
		Start:           s.Start,
		End:             s.End,
		TechnicianID:    s.TechnicianID,
		DurationMinutes: s.DurationMinutes,
	}
}
