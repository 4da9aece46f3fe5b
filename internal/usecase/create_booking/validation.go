package create_booking

import (
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
// Чистая проверка, выполняется до любого обращения к хранилищу
func validateRequest(req *Request, now time.Time) error {
	if req.CustomerRef == "" {
		return fmt.Errorf("%w: customerRef is required", ErrInvalidInput)
	}

	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Нулевая длительность означает "по умолчанию для типа услуги"
	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInterval, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInterval)
	}

	if !req.StartTime.After(now) {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidInterval)
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
