package notifier

import (
	"context"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/integrations/calendarsync"
	"github.com/fixwise/booking-service/internal/integrations/notifyservice"
)

// dispatchTimeout таймаут на доставку одного события внешним сервисам
const dispatchTimeout = 10 * time.Second

// Notifier рассылает события бронирований внешним сервисам после фиксации транзакции
// Доставка асинхронная и best-effort: ошибки логируются и никогда не откатывают
// уже зафиксированное бронирование
type Notifier struct {
	notifyClient   NotifyServiceClient
	calendarClient CalendarSyncClient
	logger         Logger
}

// New создает новый экземпляр нотификатора
func New(notifyClient NotifyServiceClient, calendarClient CalendarSyncClient, logger Logger) *Notifier {
	return &Notifier{
		notifyClient:   notifyClient,
		calendarClient: calendarClient,
		logger:         logger,
	}
}

// BookingCreated рассылает событие о созданном бронировании
func (n *Notifier) BookingCreated(booking *domain.Booking) {
	go n.dispatch(booking, notifyservice.EventBookingCreated, "", true)
}

// BookingRescheduled рассылает событие о перенесённом бронировании
func (n *Notifier) BookingRescheduled(booking *domain.Booking) {
	go n.dispatch(booking, notifyservice.EventBookingRescheduled, "", true)
}

// BookingCancelled рассылает событие об отменённом бронировании
func (n *Notifier) BookingCancelled(booking *domain.Booking, reason string) {
	go n.dispatch(booking, notifyservice.EventBookingCancelled, reason, false)
}

// dispatch доставляет событие обоим внешним сервисам
// Используется собственный контекст с таймаутом: запрос, породивший событие,
// к этому моменту уже завершён
func (n *Notifier) dispatch(booking *domain.Booking, event notifyservice.Event, reason string, pushCalendar bool) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	notification := notifyservice.Notification{
		Event:            event,
		BookingID:        booking.ID,
		CustomerRef:      booking.CustomerRef,
		ServiceType:      string(booking.ServiceType),
		StartTime:        booking.StartTime.Format(time.RFC3339),
		ConfirmationCode: booking.ConfirmationCode,
		Reason:           reason,
	}

	if err := n.notifyClient.Send(ctx, notification); err != nil {
		n.logger.Warn("Notifier: failed to send %s for booking id=%d: %v", event, booking.ID, err)
	}

	if pushCalendar {
		calEvent := calendarsync.CalendarEvent{
			BookingID:    booking.ID,
			TechnicianID: booking.TechnicianID,
			ServiceType:  string(booking.ServiceType),
			Start:        booking.StartTime.Format(time.RFC3339),
			End:          booking.EndTime().Format(time.RFC3339),
			CustomerRef:  booking.CustomerRef,
		}
		if err := n.calendarClient.PushEvent(ctx, calEvent); err != nil {
			n.logger.Warn("Notifier: failed to push calendar event for booking id=%d: %v", booking.ID, err)
		}
		return
	}

	if err := n.calendarClient.RemoveEvent(ctx, booking.TechnicianID, booking.ID); err != nil {
		n.logger.Warn("Notifier: failed to remove calendar event for booking id=%d: %v", booking.ID, err)
	}
}
