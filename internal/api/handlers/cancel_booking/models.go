package cancel_booking

import (
	"fmt"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/service/bookings"
	"github.com/fixwise/booking-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// CutoffResponse тело ответа при нарушении правила суток
type CutoffResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(customerRef string) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		CustomerRef:        customerRef,
		CancellationReason: r.CancellationReason,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:          resp.ID,
		Status:      resp.Status,
		CancelledAt: resp.CancelledAt,
	}
}

// FromCutoffError конвертирует ошибку правила суток в HTTP response
func FromCutoffError(cutoffErr *bookings.CutoffError) *CutoffResponse {
	return &CutoffResponse{
		Error: handlers.CodeCutoffViolation,
		Message: fmt.Sprintf("отмена возможна не позже чем за %d ч до начала, осталось %.1f ч",
			cutoffErr.CutoffHours, cutoffErr.HoursRemaining),
	}
}
