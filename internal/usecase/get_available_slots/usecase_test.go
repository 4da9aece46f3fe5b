package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
)

// 2025-02-10 is a Monday
var (
	monday  = time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2025, 2, 7, 8, 0, 0, 0, time.UTC)
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	bookings []*domain.Booking
}

func (s *fakeStore) GetByTechnicianWithFilter(ctx context.Context, filter domain.TechnicianBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.TechnicianID != filter.TechnicianID {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func plumbingBooking(id int64, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerRef:     "cust-42",
		TechnicianID:    7,
		ServiceType:     domain.ServicePlumbing,
		StartTime:       start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(store *fakeStore) *UseCase {
	uc := NewUseCase(store, scheduling.DefaultBusinessHours(), nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func plumbingRequest(date time.Time, days int) *Request {
	return &Request{
		TechnicianID: 7,
		ServiceType:  domain.ServicePlumbing,
		Date:         date,
		Days:         days,
	}
}

func TestExecute_EmptyCalendarFullGrid(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})

	resp, err := uc.Execute(context.Background(), plumbingRequest(monday, 0))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.Equal(t, 8, day.TotalSlots)
	require.Len(t, day.Slots, 8)
	assert.Equal(t, monday.Add(9*time.Hour), day.Slots[0].Start)
	assert.Equal(t, monday.Add(16*time.Hour), day.Slots[7].Start)
}

func TestExecute_BookingAt10BlocksBufferedNeighbors(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		plumbingBooking(1, monday.Add(10*time.Hour)),
	}}
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), plumbingRequest(monday, 0))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	// Занято 10:00; 09:00 выбивает before-буфер кандидата против after-буфера
	// существующего, 11:00 — after-буфер существующего. Остаются 12:00-16:00
	require.Len(t, day.Slots, 5)
	assert.Equal(t, monday.Add(12*time.Hour), day.Slots[0].Start)
	assert.Equal(t, monday.Add(16*time.Hour), day.Slots[4].Start)
	assert.Equal(t, 8, day.TotalSlots, "структурная сетка дня не зависит от занятости")
}

func TestExecute_LongServiceExcludesTailSlot(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})

	// HVAC (90 мин) не помещается в слот 16:00 до закрытия в 17:00 —
	// предлагаются только слоты, в которые услуга влезает целиком
	resp, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 7,
		ServiceType:  domain.ServiceHVAC,
		Date:         monday,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	require.Len(t, day.Slots, 7)
	assert.Equal(t, monday.Add(15*time.Hour), day.Slots[6].Start)
	assert.Equal(t, 8, day.TotalSlots)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := plumbingBooking(1, monday.Add(10*time.Hour))
	cancelled.Status = domain.StatusCancelled
	uc := newTestUseCase(&fakeStore{bookings: []*domain.Booking{cancelled}})

	resp, err := uc.Execute(context.Background(), plumbingRequest(monday, 0))
	require.NoError(t, err)
	assert.Len(t, resp.Days[0].Slots, 8)
}

func TestExecute_RangeSkipsWeekends(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})

	// 8 дней с понедельника: пн-пт, сб и вс пропущены, снова понедельник
	resp, err := uc.Execute(context.Background(), plumbingRequest(monday, 8))
	require.NoError(t, err)
	require.Len(t, resp.Days, 6)

	assert.Equal(t, monday, resp.Days[0].Date)
	assert.Equal(t, monday.AddDate(0, 0, 4), resp.Days[4].Date)
	assert.Equal(t, monday.AddDate(0, 0, 7), resp.Days[5].Date)
}

func TestExecute_WeekendOnlyRangeEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})

	saturday := monday.AddDate(0, 0, 5)
	resp, err := uc.Execute(context.Background(), plumbingRequest(saturday, 2))
	require.NoError(t, err)
	assert.Empty(t, resp.Days, "нерабочие дни пропускаются без ошибки")
}

func TestExecute_SameDayPastSlotsFiltered(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})
	// Сейчас пятница 08:00, запрос на сегодня: слот 09:00 ещё впереди
	friday := time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), plumbingRequest(friday, 0))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Len(t, resp.Days[0].Slots, 8)

	// Сдвигаем часы на 12:30 — слоты 09:00-12:00 уже в прошлом
	uc.timeProvider = &fixedTime{now: friday.Add(12*time.Hour + 30*time.Minute)}
	resp, err = uc.Execute(context.Background(), plumbingRequest(friday, 0))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Slots, 4)
	assert.Equal(t, friday.Add(13*time.Hour), resp.Days[0].Slots[0].Start)
}

func TestExecute_Idempotent(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		plumbingBooking(1, monday.Add(10*time.Hour)),
	}}
	uc := newTestUseCase(store)

	first, err := uc.Execute(context.Background(), plumbingRequest(monday, 0))
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), plumbingRequest(monday, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeStore{})

	_, err := uc.Execute(context.Background(), &Request{TechnicianID: 0, ServiceType: domain.ServicePlumbing, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TechnicianID: 7, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), plumbingRequest(time.Time{}, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), plumbingRequest(monday, maxRangeDays+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
