package create_booking

import (
	"context"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/pkg/confirmcode"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByTechnicianWithFilter(ctx context.Context, filter domain.TechnicianBookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс рассылки событий после фиксации транзакции
type Notifier interface {
	BookingCreated(booking *domain.Booking)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// CodeGenerator интерфейс генерации кодов подтверждения (для тестирования)
type CodeGenerator interface {
	Generate() (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// RandomCodeGenerator генератор кодов подтверждения для production
type RandomCodeGenerator struct{}

// Generate возвращает случайный код из 8 символов [A-Z0-9]
func (g *RandomCodeGenerator) Generate() (string, error) {
	return confirmcode.Generate()
}
