package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInterval)
	}

	if !req.NewStartTime.After(now) {
		return fmt.Errorf("%w: newStartTime is in the past", ErrInvalidInterval)
	}

	return nil
}

// checkCutoff проверяет правило "не позже чем за cutoffHours до начала"
func checkCutoff(booking *domain.Booking, now time.Time, cutoffHours int) error {
	hoursRemaining := booking.StartTime.Sub(now).Hours()
	if hoursRemaining < float64(cutoffHours) {
		return &CutoffError{HoursRemaining: hoursRemaining, CutoffHours: cutoffHours}
	}
	return nil
}

// validateBusinessHours проверяет, что интервал целиком попадает в рабочие часы
func validateBusinessHours(start time.Time, durationMinutes int, hours scheduling.BusinessHours) error {
	if !hours.IsWorkingDay(start) {
		return fmt.Errorf("%w: %s is not a working day", ErrOutsideBusinessHours,
			start.Format(domain.DateFormat))
	}

	openAt, err := hours.Open.AtDate(start)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeAt, err := hours.Close.AtDate(start)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if start.Before(openAt) || end.After(closeAt) {
		return fmt.Errorf("%w: interval %s-%s is outside %s-%s", ErrOutsideBusinessHours,
			start.Format(domain.TimeFormat), end.Format(domain.TimeFormat),
			hours.Open, hours.Close)
	}

	return nil
}
