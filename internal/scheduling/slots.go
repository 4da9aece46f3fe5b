package scheduling

import (
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/pkg/types"
)

// BusinessHours рабочие часы календаря
// Единый календарь для всех техников (мульти-таймзонная конфигурация не поддерживается)
type BusinessHours struct {
	Open         types.TimeString
	Close        types.TimeString
	SlotMinutes  int
	OpenWeekends bool
}

// DefaultBusinessHours возвращает рабочие часы по умолчанию: 09:00-17:00,
// слоты по 60 минут, выходные закрыты
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Open:         types.TimeString(domain.DefaultOpenTime),
		Close:        types.TimeString(domain.DefaultCloseTime),
		SlotMinutes:  domain.DefaultSlotMinutes,
		OpenWeekends: false,
	}
}

// IsWorkingDay проверяет, является ли дата рабочим днём
func (h BusinessHours) IsWorkingDay(date time.Time) bool {
	if h.OpenWeekends {
		return true
	}
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// GenerateDaySlots генерирует структурную сетку слотов техника на дату
// Слоты идут с фиксированным шагом от открытия до закрытия; слот, не помещающийся
// до закрытия целиком, не генерируется. Нерабочий день даёт пустую сетку, не ошибку.
// Функция детерминирована и не имеет побочных эффектов
func GenerateDaySlots(date time.Time, technicianID int64, hours BusinessHours) ([]domain.TimeSlot, error) {
	if !hours.IsWorkingDay(date) {
		return []domain.TimeSlot{}, nil
	}

	openAt, err := hours.Open.AtDate(date)
	if err != nil {
		return nil, err
	}
	closeAt, err := hours.Close.AtDate(date)
	if err != nil {
		return nil, err
	}

	step := time.Duration(hours.SlotMinutes) * time.Minute
	slots := make([]domain.TimeSlot, 0)

	for cur := openAt; cur.Before(closeAt); cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(closeAt) {
			break
		}
		slots = append(slots, domain.TimeSlot{
			Start:           cur,
			End:             end,
			TechnicianID:    technicianID,
			DurationMinutes: hours.SlotMinutes,
		})
	}

	return slots, nil
}
