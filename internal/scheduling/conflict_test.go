package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixwise/booking-service/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 2, 10, hour, minute, 0, 0, time.UTC)
}

func plumbingBooking(id int64, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		TechnicianID:    7,
		ServiceType:     domain.ServicePlumbing,
		StartTime:       start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func plumbingCandidate(start time.Time) Candidate {
	return Candidate{
		TechnicianID:    7,
		ServiceType:     domain.ServicePlumbing,
		Start:           start,
		DurationMinutes: 60,
	}
}

func TestCheckConflict_EmptyCalendar(t *testing.T) {
	result := CheckConflict(plumbingCandidate(at(10, 0)), nil)
	assert.True(t, result.CanBook)
	assert.Nil(t, result.Conflicting)
}

// Бронирование сантехники 10:00-11:00 с буфером 15/30 занимает [09:45, 11:30)
func TestCheckConflict_BufferRespected(t *testing.T) {
	existing := []*domain.Booking{plumbingBooking(1, at(10, 0))}

	tests := []struct {
		name    string
		start   time.Time
		canBook bool
	}{
		{"slot before is blocked by before-buffer", at(9, 0), false},
		{"same slot is blocked", at(10, 0), false},
		{"slot after is blocked by after-buffer", at(11, 0), false},
		{"slot at 12:00 is outside the after-buffer", at(12, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckConflict(plumbingCandidate(tt.start), existing)
			assert.Equal(t, tt.canBook, result.CanBook)
			if !tt.canBook {
				require.NotNil(t, result.Conflicting)
				assert.Equal(t, int64(1), result.Conflicting.ID)
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestCheckConflict_CancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := plumbingBooking(1, at(10, 0))
	cancelled.Status = domain.StatusCancelled
	noShow := plumbingBooking(2, at(10, 0))
	noShow.Status = domain.StatusNoShow

	result := CheckConflict(plumbingCandidate(at(10, 0)), []*domain.Booking{cancelled, noShow})
	assert.True(t, result.CanBook)
}

func TestCheckConflict_OtherTechnicianDoesNotBlock(t *testing.T) {
	other := plumbingBooking(1, at(10, 0))
	other.TechnicianID = 8

	result := CheckConflict(plumbingCandidate(at(10, 0)), []*domain.Booking{other})
	assert.True(t, result.CanBook)
}

// Буферизованные интервалы, граничащие точно (конец одного равен началу другого),
// не считаются пересечением
func TestCheckConflict_TouchingBufferedIntervalsAllowed(t *testing.T) {
	// Сантехника 10:00-11:00 буферизована до [09:45, 11:30)
	existing := []*domain.Booking{plumbingBooking(1, at(10, 0))}

	// Инспекция (буфер 5/10) с началом 11:35 буферизована до [11:30, 12:15)
	candidate := Candidate{
		TechnicianID:    7,
		ServiceType:     domain.ServiceInspection,
		Start:           at(11, 35),
		DurationMinutes: 30,
	}

	result := CheckConflict(candidate, existing)
	assert.True(t, result.CanBook)

	// Сдвиг на минуту раньше даёт пересечение буферов
	candidate.Start = at(11, 34)
	result = CheckConflict(candidate, existing)
	assert.False(t, result.CanBook)
}

// Решение симметрично порядку вставки: если A принят при существующем B,
// то B был бы принят при существующем A, и наоборот
func TestCheckConflict_SymmetricAcrossInsertionOrder(t *testing.T) {
	base := at(10, 0)

	for offset := -240; offset <= 240; offset += 5 {
		aStart := base
		bStart := base.Add(time.Duration(offset) * time.Minute)

		a := &domain.Booking{
			ID: 1, TechnicianID: 7,
			ServiceType: domain.ServicePlumbing,
			StartTime:   aStart, DurationMinutes: 60,
			Status: domain.StatusConfirmed,
		}
		b := &domain.Booking{
			ID: 2, TechnicianID: 7,
			ServiceType: domain.ServiceHVAC,
			StartTime:   bStart, DurationMinutes: 90,
			Status: domain.StatusConfirmed,
		}

		bAfterA := CheckConflict(Candidate{
			TechnicianID: 7, ServiceType: b.ServiceType,
			Start: b.StartTime, DurationMinutes: b.DurationMinutes,
		}, []*domain.Booking{a})

		aAfterB := CheckConflict(Candidate{
			TechnicianID: 7, ServiceType: a.ServiceType,
			Start: a.StartTime, DurationMinutes: a.DurationMinutes,
		}, []*domain.Booking{b})

		assert.Equal(t, bAfterA.CanBook, aAfterB.CanBook, "offset=%d minutes", offset)
	}
}

// Инвариант непересечения: набор бронирований, принятых последовательными
// проверками, имеет попарно непересекающиеся буферизованные интервалы
func TestCheckConflict_AcceptedSetStaysPairwiseDisjoint(t *testing.T) {
	services := []domain.ServiceType{
		domain.ServicePlumbing, domain.ServiceElectrical,
		domain.ServiceHVAC, domain.ServiceInspection,
	}

	accepted := make([]*domain.Booking, 0)
	nextID := int64(1)

	// Псевдослучайная, но детерминированная последовательность кандидатов
	for i := 0; i < 200; i++ {
		service := services[i%len(services)]
		start := at(8, 0).Add(time.Duration((i*37)%600) * time.Minute)

		candidate := Candidate{
			TechnicianID:    7,
			ServiceType:     service,
			Start:           start,
			DurationMinutes: DurationFor(service),
		}

		if result := CheckConflict(candidate, accepted); result.CanBook {
			accepted = append(accepted, &domain.Booking{
				ID:              nextID,
				TechnicianID:    7,
				ServiceType:     service,
				StartTime:       start,
				DurationMinutes: candidate.DurationMinutes,
				Status:          domain.StatusConfirmed,
			})
			nextID++
		}
	}

	require.NotEmpty(t, accepted)

	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			iStart, iEnd := bufferedWindow(accepted[i].StartTime, accepted[i].EndTime(), accepted[i].ServiceType)
			jStart, jEnd := bufferedWindow(accepted[j].StartTime, accepted[j].EndTime(), accepted[j].ServiceType)
			assert.False(t, overlaps(iStart, iEnd, jStart, jEnd),
				"bookings %d and %d have overlapping buffered intervals", accepted[i].ID, accepted[j].ID)
		}
	}
}

func TestAvailableSlots_AfterPlumbingBooking(t *testing.T) {
	slots, err := GenerateDaySlots(monday, 7, DefaultBusinessHours())
	require.NoError(t, err)
	require.Len(t, slots, 8)

	// Без бронирований доступна вся сетка
	free, err := AvailableSlots(slots, domain.ServicePlumbing, DefaultBusinessHours(), nil)
	require.NoError(t, err)
	assert.Len(t, free, 8)

	// Бронирование 10:00 с буфером 15/30 выбивает слоты 09:00, 10:00 и 11:00
	existing := []*domain.Booking{plumbingBooking(1, at(10, 0))}
	free, err = AvailableSlots(slots, domain.ServicePlumbing, DefaultBusinessHours(), existing)
	require.NoError(t, err)

	require.Len(t, free, 5)
	assert.Equal(t, at(12, 0), free[0].Start)
	assert.Equal(t, at(16, 0), free[4].Start)
}

func TestAvailableSlots_IdempotentWithoutWrites(t *testing.T) {
	slots, err := GenerateDaySlots(monday, 7, DefaultBusinessHours())
	require.NoError(t, err)
	existing := []*domain.Booking{plumbingBooking(1, at(13, 0))}

	first, err := AvailableSlots(slots, domain.ServiceElectrical, DefaultBusinessHours(), existing)
	require.NoError(t, err)
	second, err := AvailableSlots(slots, domain.ServiceElectrical, DefaultBusinessHours(), existing)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// HVAC длится 90 минут: из слота 16:00 услуга закончилась бы в 17:30, после
// закрытия. Такой слот не предлагается — бронирование в него невозможно
func TestAvailableSlots_ServiceLongerThanSlotTrimsTail(t *testing.T) {
	slots, err := GenerateDaySlots(monday, 7, DefaultBusinessHours())
	require.NoError(t, err)
	require.Len(t, slots, 8)

	free, err := AvailableSlots(slots, domain.ServiceHVAC, DefaultBusinessHours(), nil)
	require.NoError(t, err)

	require.Len(t, free, 7)
	assert.Equal(t, at(15, 0), free[6].Start)
}
