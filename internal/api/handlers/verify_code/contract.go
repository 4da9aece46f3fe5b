package verify_code

import (
	"context"

	"github.com/fixwise/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	VerifyConfirmationCode(ctx context.Context, bookingID int64, suppliedCode string) (*models.VerifyCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
