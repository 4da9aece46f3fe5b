package create_booking

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixwise/booking-service/internal/domain"
	bookingRepo "github.com/fixwise/booking-service/internal/infra/storage/booking"
	"github.com/fixwise/booking-service/internal/scheduling"
	"github.com/fixwise/booking-service/pkg/confirmcode"
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

// fakeStore имитирует хранилище с сериализуемыми транзакциями: мьютекс
// txManager гарантирует, что каждая транзакция видит все ранее
// зафиксированные бронирования
type fakeStore struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (s *fakeStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for _, b := range s.bookings {
		if b.ConfirmationCode == booking.ConfirmationCode {
			return nil, bookingRepo.ErrDuplicateConfirmationCode
		}
	}

	s.nextID++
	created := *booking
	created.ID = s.nextID
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	s.bookings = append(s.bookings, &created)
	return &created, nil
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

// fakeTxManager сериализует транзакции мьютексом хранилища, воспроизводя
// семантику serializable: конкурентные попытки выполняются по очереди,
// каждая на актуальном состоянии
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []*domain.Booking
}

func (n *recordingNotifier) BookingCreated(booking *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, booking)
}

func newTestUseCase() (*UseCase, *fakeStore, *recordingNotifier) {
	store := &fakeStore{}
	notifier := &recordingNotifier{}
	uc := NewUseCase(store, &fakeTxManager{store: store}, notifier, scheduling.DefaultBusinessHours(), nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc, store, notifier
}

func plumbingRequest(start time.Time) *Request {
	return &Request{
		CustomerRef:  "cust-42",
		TechnicianID: 7,
		ServiceType:  domain.ServicePlumbing,
		StartTime:    start,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, store, notifier := newTestUseCase()

	resp, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, int64(7), resp.TechnicianID)
	assert.Equal(t, 60, resp.DurationMinutes, "длительность услуги подставляется по типу")
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), resp.ConfirmationCode)

	require.Len(t, store.bookings, 1)
	require.Len(t, notifier.created, 1)
	assert.Equal(t, resp.ID, notifier.created[0].ID)
}

func TestExecute_ConflictWithBufferedInterval(t *testing.T) {
	uc, _, notifier := newTestUseCase()

	_, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	// 11:30 попадает в after-буфер сантехники (10:00-11:00 + 30 мин)
	_, err = uc.Execute(context.Background(), plumbingRequest(monday.Add(11*time.Hour+30*time.Minute)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(1), conflictErr.Conflicting.ID)

	assert.Len(t, notifier.created, 1, "конфликтная попытка не порождает уведомлений")
}

func TestExecute_PastStartRejected(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), plumbingRequest(testNow.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_OutsideBusinessHoursRejected(t *testing.T) {
	uc, _, _ := newTestUseCase()

	// 16:30 + 60 минут выходит за 17:00
	_, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(16*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// Суббота
	_, err = uc.Execute(context.Background(), plumbingRequest(monday.AddDate(0, 0, 5).Add(10*time.Hour)))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase()

	req := plumbingRequest(monday.Add(10 * time.Hour))
	req.CustomerRef = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = plumbingRequest(monday.Add(10 * time.Hour))
	req.TechnicianID = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = plumbingRequest(monday.Add(10 * time.Hour))
	req.DurationMinutes = -30
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_DurationBounds(t *testing.T) {
	uc, _, _ := newTestUseCase()

	// Короче минимальных 5 минут
	req := plumbingRequest(monday.Add(10 * time.Hour))
	req.DurationMinutes = 3
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Длиннее максимальных 8 часов
	req = plumbingRequest(monday.Add(10 * time.Hour))
	req.DurationMinutes = domain.MaxDurationMinutes + 1
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Минимальная допустимая длительность проходит
	req = plumbingRequest(monday.Add(10 * time.Hour))
	req.DurationMinutes = domain.MinDurationMinutes
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.MinDurationMinutes, resp.DurationMinutes)
}

func TestExecute_CodeCollisionRegenerated(t *testing.T) {
	uc, store, _ := newTestUseCase()

	// Первое бронирование занимает код REPEATED
	codes := []string{"REPEATED", "REPEATED", "UNIQUE01"}
	idx := 0
	uc.codeGen = codeGenFunc(func() (string, error) {
		code := codes[idx]
		idx++
		return code, nil
	})

	_, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(13*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "UNIQUE01", resp.ConfirmationCode)
	assert.Len(t, store.bookings, 2)
}

func TestExecute_CodeCollisionExhausted(t *testing.T) {
	uc, _, _ := newTestUseCase()

	uc.codeGen = codeGenFunc(func() (string, error) {
		return "SAMECODE", nil
	})

	_, err := uc.Execute(context.Background(), plumbingRequest(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), plumbingRequest(monday.Add(13*time.Hour)))
	assert.ErrorIs(t, err, ErrCodeCollision)
}

type codeGenFunc func() (string, error)

func (f codeGenFunc) Generate() (string, error) { return f() }

// Центральное свойство движка: из N конкурентных попыток на один интервал
// выигрывает ровно одна
func TestExecute_ConcurrentAttemptsExactlyOneWinner(t *testing.T) {
	uc, store, notifier := newTestUseCase()

	const attempts = 50
	start := monday.Add(10 * time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), plumbingRequest(start))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Len(t, store.bookings, 1)
	assert.Len(t, notifier.created, 1)
}

func TestRandomCodeGenerator_UsesSharedAlphabet(t *testing.T) {
	gen := &RandomCodeGenerator{}
	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, code, confirmcode.CodeLength)
}
