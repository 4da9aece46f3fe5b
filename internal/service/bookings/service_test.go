package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixwise/booking-service/internal/domain"
	bookingRepo "github.com/fixwise/booking-service/internal/infra/storage/booking"
	"github.com/fixwise/booking-service/internal/service/bookings/models"
	"github.com/fixwise/booking-service/pkg/ptr"
)

var testNow = time.Date(2025, 2, 7, 8, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	bookings map[int64]*domain.Booking
}

func newFakeStore(bookings ...*domain.Booking) *fakeStore {
	s := &fakeStore{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *fakeStore) GetByCustomerRef(ctx context.Context, customerRef string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.CustomerRef != customerRef {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeStore) Cancel(ctx context.Context, id int64, reason *string) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	return nil
}

type recordingNotifier struct {
	cancelled []*domain.Booking
	reasons   []string
}

func (n *recordingNotifier) BookingCancelled(booking *domain.Booking, reason string) {
	n.cancelled = append(n.cancelled, booking)
	n.reasons = append(n.reasons, reason)
}

func booking(id int64, status domain.BookingStatus, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		CustomerRef:      "cust-42",
		TechnicianID:     7,
		ServiceType:      domain.ServiceHVAC,
		StartTime:        start,
		DurationMinutes:  90,
		Status:           status,
		ConfirmationCode: "A1B2C3D4",
	}
}

func newTestService(store *fakeStore) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, domain.DefaultCutoffHours, nopLogger{})
	svc.timeProvider = &fixedTime{now: testNow}
	return svc, notifier
}

func TestGetByID(t *testing.T) {
	store := newFakeStore(booking(1, domain.StatusConfirmed, testNow.Add(72*time.Hour)))
	svc, _ := newTestService(store)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "hvac", resp.ServiceType)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings(t *testing.T) {
	other := booking(3, domain.StatusPending, testNow.Add(96*time.Hour))
	other.CustomerRef = "cust-777"

	store := newFakeStore(
		booking(1, domain.StatusConfirmed, testNow.Add(72*time.Hour)),
		booking(2, domain.StatusCancelled, testNow.Add(48*time.Hour)),
		other,
	)
	svc, _ := newTestService(store)

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerRef: "cust-42",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerRef: "cust-42",
		Status:      ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetCustomerBookings_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerRef: "cust-42",
		Status:      ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	store := newFakeStore(booking(1, domain.StatusConfirmed, testNow.Add(72*time.Hour)))
	svc, notifier := newTestService(store)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CustomerRef:        "cust-42",
		CancellationReason: "клиент передумал",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "клиент передумал", *resp.CancellationReason)

	assert.Equal(t, domain.StatusCancelled, store.bookings[1].Status)

	require.Len(t, notifier.cancelled, 1)
	assert.Equal(t, "клиент передумал", notifier.reasons[0])
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	store := newFakeStore(booking(1, domain.StatusCancelled, testNow.Add(72*time.Hour)))
	svc, notifier := newTestService(store)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CustomerRef: "cust-42"})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, notifier.cancelled)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	store := newFakeStore(booking(1, domain.StatusCompleted, testNow.Add(-72*time.Hour)))
	svc, _ := newTestService(store)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CustomerRef: "cust-42"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CutoffViolation(t *testing.T) {
	// До начала 12 часов — меньше суток, отмена запрещена
	store := newFakeStore(booking(1, domain.StatusConfirmed, testNow.Add(12*time.Hour)))
	svc, notifier := newTestService(store)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CustomerRef: "cust-42"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCutoffViolation)

	var cutoffErr *CutoffError
	require.ErrorAs(t, err, &cutoffErr)
	assert.InDelta(t, 12.0, cutoffErr.HoursRemaining, 0.01)

	assert.Equal(t, domain.StatusConfirmed, store.bookings[1].Status)
	assert.Empty(t, notifier.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	_, err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{CustomerRef: "cust-42"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestVerifyConfirmationCode(t *testing.T) {
	store := newFakeStore(booking(1, domain.StatusConfirmed, testNow.Add(72*time.Hour)))
	svc, _ := newTestService(store)

	resp, err := svc.VerifyConfirmationCode(context.Background(), 1, "A1B2C3D4")
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	// Несовпадение и различие регистра — не ошибка, просто valid=false
	resp, err = svc.VerifyConfirmationCode(context.Background(), 1, "a1b2c3d4")
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	resp, err = svc.VerifyConfirmationCode(context.Background(), 1, "WRONG123")
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	_, err = svc.VerifyConfirmationCode(context.Background(), 99, "A1B2C3D4")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
