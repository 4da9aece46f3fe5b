package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
	"github.com/fixwise/booking-service/pkg/ptr"
)

// conflictWindowPad запас окна выборки вокруг рабочего дня
// Ловит бронирования соседних дней, чьи буферы могут дотянуться до сетки дня
const conflictWindowPad = 9 * time.Hour

// maxRangeDays максимальный размер диапазона в одном запросе
const maxRangeDays = 60

// UseCase use case получения доступных слотов на день или диапазон дней
// Запросы read-only и не требуют блокировок: окончательное решение о конфликте
// всё равно принимает координатор создания внутри транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	hours        scheduling.BusinessHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, hours scheduling.BusinessHours, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Возвращает по одной записи на каждый рабочий день диапазона; нерабочие дни
// пропускаются. Дата в прошлом даёт пустой список слотов, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: technician=%d, service=%s, date=%s, days=%d",
		req.TechnicianID, req.ServiceType, req.Date.Format(domain.DateFormat), req.Days)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days <= 0 {
		days = 1
	}

	now := uc.timeProvider.Now()
	response := &Response{
		TechnicianID: req.TechnicianID,
		ServiceType:  req.ServiceType,
		Days:         make([]DayAvailability, 0, days),
	}

	for offset := 0; offset < days; offset++ {
		date := req.Date.AddDate(0, 0, offset)
		if !uc.hours.IsWorkingDay(date) {
			continue
		}

		day, err := uc.dayAvailability(ctx, req, date, now)
		if err != nil {
			return nil, err
		}
		response.Days = append(response.Days, day)
	}

	uc.logger.Info("GetAvailableSlots: %d working days for technician=%d", len(response.Days), req.TechnicianID)
	return response, nil
}

// dayAvailability вычисляет свободные слоты одного рабочего дня
func (uc *UseCase) dayAvailability(ctx context.Context, req *Request, date time.Time, now time.Time) (DayAvailability, error) {
	grid, err := scheduling.GenerateDaySlots(date, req.TechnicianID, uc.hours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return DayAvailability{}, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	day := DayAvailability{Date: date, TotalSlots: len(grid)}
	if len(grid) == 0 {
		day.Slots = []Slot{}
		return day, nil
	}

	filter := domain.TechnicianBookingsFilter{
		TechnicianID: req.TechnicianID,
		From:         ptr.Ptr(grid[0].Start.Add(-conflictWindowPad)),
		To:           ptr.Ptr(grid[len(grid)-1].End.Add(conflictWindowPad)),
	}

	existing, err := uc.bookingRepo.GetByTechnicianWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return DayAvailability{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	available, err := scheduling.AvailableSlots(grid, req.ServiceType, uc.hours, existing)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots: %v", err)
		return DayAvailability{}, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	day.Slots = make([]Slot, 0, len(available))
	for _, slot := range available {
		// Слоты, начавшиеся в прошлом, предлагать нельзя
		if !slot.Start.After(now) {
			continue
		}
		day.Slots = append(day.Slots, fromTimeSlot(slot))
	}

	return day, nil
}

func validateRequest(req *Request) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}
	if req.ServiceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Days < 0 || req.Days > maxRangeDays {
		return fmt.Errorf("%w: days must be between 0 and %d", ErrInvalidInput, maxRangeDays)
	}
	return nil
}
