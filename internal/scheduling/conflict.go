package scheduling

import (
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

// Candidate интервал-кандидат на бронирование
type Candidate struct {
	TechnicianID    int64
	ServiceType     domain.ServiceType
	Start           time.Time
	DurationMinutes int
}

// End возвращает конец интервала кандидата (полуоткрытый интервал)
func (c Candidate) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// ConflictCheckResult результат проверки кандидата на конфликты
// Конфликт — ожидаемый исход, а не ошибка
type ConflictCheckResult struct {
	CanBook     bool
	Conflicting *domain.Booking
	Reason      string
}

// bufferedWindow расширяет интервал [start, end) буфером его типа услуги
func bufferedWindow(start, end time.Time, serviceType domain.ServiceType) (time.Time, time.Time) {
	policy := BufferFor(serviceType)
	return start.Add(-time.Duration(policy.BeforeMinutes) * time.Minute),
		end.Add(time.Duration(policy.AfterMinutes) * time.Minute)
}

// overlaps проверяет пересечение двух полуоткрытых интервалов
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckConflict проверяет, свободен ли интервал кандидата при существующих
// бронированиях техника.
//
// Буфер применяется к КАЖДОЙ стороне по её собственному типу услуги: интервал
// кандидата расширяется буфером его услуги, интервал каждого существующего
// бронирования — буфером его услуги. Симметричное правило гарантирует, что
// расширенные интервалы всех активных бронирований попарно не пересекаются
// независимо от порядка их создания.
//
// Отменённые и no-show бронирования не участвуют в проверке
func CheckConflict(candidate Candidate, existing []*domain.Booking) ConflictCheckResult {
	candStart, candEnd := bufferedWindow(candidate.Start, candidate.End(), candidate.ServiceType)

	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}
		if booking.TechnicianID != candidate.TechnicianID {
			continue
		}

		bookedStart, bookedEnd := bufferedWindow(booking.StartTime, booking.EndTime(), booking.ServiceType)

		if overlaps(candStart, candEnd, bookedStart, bookedEnd) {
			return ConflictCheckResult{
				CanBook:     false,
				Conflicting: booking,
				Reason: fmt.Sprintf("overlaps buffered interval of booking %d (%s - %s)",
					booking.ID,
					bookedStart.Format("15:04"),
					bookedEnd.Format("15:04")),
			}
		}
	}

	return ConflictCheckResult{CanBook: true}
}

// AvailableSlots отбирает из структурной сетки слоты, которые можно предложить
// клиенту для услуги serviceType: каждый слот рассматривается как кандидат с
// длительностью услуги, должен целиком помещаться до закрытия и проходить
// проверку конфликтов. Для услуг длиннее шага сетки хвостовые слоты дня
// отбрасываются: координатор бронирования их всё равно отклонит
func AvailableSlots(slots []domain.TimeSlot, serviceType domain.ServiceType, hours BusinessHours, existing []*domain.Booking) ([]domain.TimeSlot, error) {
	available := make([]domain.TimeSlot, 0, len(slots))
	if len(slots) == 0 {
		return available, nil
	}

	closeAt, err := hours.Close.AtDate(slots[0].Start)
	if err != nil {
		return nil, err
	}

	duration := DurationFor(serviceType)
	for _, slot := range slots {
		candidate := Candidate{
			TechnicianID:    slot.TechnicianID,
			ServiceType:     serviceType,
			Start:           slot.Start,
			DurationMinutes: duration,
		}
		if candidate.End().After(closeAt) {
			continue
		}
		if result := CheckConflict(candidate, existing); result.CanBook {
			available = append(available, slot)
		}
	}

	return available, nil
}
