package notifier

import (
	"context"

	"github.com/fixwise/booking-service/internal/integrations/calendarsync"
	"github.com/fixwise/booking-service/internal/integrations/notifyservice"
)

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, notification notifyservice.Notification) error
}

// CalendarSyncClient интерфейс клиента синхронизации календаря
type CalendarSyncClient interface {
	PushEvent(ctx context.Context, event calendarsync.CalendarEvent) error
	RemoveEvent(ctx context.Context, technicianID, bookingID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
