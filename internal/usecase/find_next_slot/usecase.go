package find_next_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
	"github.com/fixwise/booking-service/pkg/ptr"
)

// conflictWindowPad запас окна выборки вокруг рабочего дня
const conflictWindowPad = 9 * time.Hour

// UseCase use case поиска ближайшего свободного слота
// Дни сканируются лениво по одному: выборка бронирований выполняется только
// для дня, который реально проверяется, а не для всего горизонта сразу
type UseCase struct {
	bookingRepo  BookingRepository
	hours        scheduling.BusinessHours
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, hours scheduling.BusinessHours, horizonDays int, logger Logger) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultSearchHorizonDays
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		hours:        hours,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case поиска ближайшего свободного слота
// Возвращает ErrNoSlotAvailable, если в пределах горизонта свободных слотов нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNextSlot: technician=%d, service=%s", req.TechnicianID, req.ServiceType)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextSlot: validation failed: %v", err)
		return nil, err
	}

	after := req.After
	if after.IsZero() {
		after = uc.timeProvider.Now()
	}

	startDate := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())

	for offset := 0; offset < uc.horizonDays; offset++ {
		date := startDate.AddDate(0, 0, offset)
		if !uc.hours.IsWorkingDay(date) {
			continue
		}

		slot, found, err := uc.firstFreeSlot(ctx, req, date, after)
		if err != nil {
			return nil, err
		}
		if found {
			uc.logger.Info("FindNextSlot: found slot at %s for technician=%d (+%d days)",
				slot.Start.Format(time.RFC3339), req.TechnicianID, offset)
			return &Response{
				Start:           slot.Start,
				End:             slot.End,
				TechnicianID:    slot.TechnicianID,
				DurationMinutes: slot.DurationMinutes,
				DaysAhead:       offset,
			}, nil
		}
	}

	uc.logger.Info("FindNextSlot: no slot within %d days for technician=%d", uc.horizonDays, req.TechnicianID)
	return nil, fmt.Errorf("%w: technician=%d, horizon=%d days", ErrNoSlotAvailable, req.TechnicianID, uc.horizonDays)
}

// firstFreeSlot возвращает первый свободный слот дня строго после after
func (uc *UseCase) firstFreeSlot(ctx context.Context, req *Request, date time.Time, after time.Time) (domain.TimeSlot, bool, error) {
	grid, err := scheduling.GenerateDaySlots(date, req.TechnicianID, uc.hours)
	if err != nil {
		uc.logger.Error("FindNextSlot: failed to generate slots: %v", err)
		return domain.TimeSlot{}, false, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	if len(grid) == 0 {
		return domain.TimeSlot{}, false, nil
	}

	// День, чья сетка целиком в прошлом, можно пропустить без обращения к БД
	if !grid[len(grid)-1].Start.After(after) {
		return domain.TimeSlot{}, false, nil
	}

	filter := domain.TechnicianBookingsFilter{
		TechnicianID: req.TechnicianID,
		From:         ptr.Ptr(grid[0].Start.Add(-conflictWindowPad)),
		To:           ptr.Ptr(grid[len(grid)-1].End.Add(conflictWindowPad)),
	}

	existing, err := uc.bookingRepo.GetByTechnicianWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("FindNextSlot: failed to get bookings: %v", err)
		return domain.TimeSlot{}, false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	available, err := scheduling.AvailableSlots(grid, req.ServiceType, uc.hours, existing)
	if err != nil {
		uc.logger.Error("FindNextSlot: failed to filter slots: %v", err)
		return domain.TimeSlot{}, false, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	for _, slot := range available {
		if slot.Start.After(after) {
			return slot, true, nil
		}
	}

	return domain.TimeSlot{}, false, nil
}

func validateRequest(req *Request) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}
	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	return nil
}
