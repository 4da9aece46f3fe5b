package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/fixwise/booking-service/internal/api/handlers"
	rescheduleBooking "github.com/fixwise/booking-service/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStartTime string `json:"newStartTime"` // ISO 8601
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	CustomerRef      string  `json:"customerRef"`
	TechnicianID     int64   `json:"technicianId"`
	ServiceType      string  `json:"serviceType"`
	StartTime        string  `json:"startTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	ConfirmationCode string  `json:"confirmationCode"`
	Notes            *string `json:"notes,omitempty"`
	UpdatedAt        string  `json:"updatedAt"`
}

// CutoffResponse тело ответа при нарушении правила суток
type CutoffResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ConflictResponse тело ответа 409 с деталями конфликтующего бронирования
type ConflictResponse struct {
	Error              string           `json:"error"`
	Message            string           `json:"message"`
	ConflictingBooking *ConflictDetails `json:"conflictingBooking,omitempty"`
}

// ConflictDetails публичные поля конфликтующего бронирования
type ConflictDetails struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ServiceType string `json:"serviceType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64) (*rescheduleBooking.Request, error) {
	newStartTime, err := time.Parse(time.RFC3339, r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		NewStartTime: newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		CustomerRef:      resp.CustomerRef,
		TechnicianID:     resp.TechnicianID,
		ServiceType:      string(resp.ServiceType),
		StartTime:        resp.StartTime.Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		Status:           string(resp.Status),
		ConfirmationCode: resp.ConfirmationCode,
		Notes:            resp.Notes,
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromCutoffError конвертирует ошибку правила суток в HTTP response
func FromCutoffError(cutoffErr *rescheduleBooking.CutoffError) *CutoffResponse {
	return &CutoffResponse{
		Error: handlers.CodeCutoffViolation,
		Message: fmt.Sprintf("перенос возможен не позже чем за %d ч до начала, осталось %.1f ч",
			cutoffErr.CutoffHours, cutoffErr.HoursRemaining),
	}
}

// FromConflictError конвертирует ошибку конфликта в HTTP response
func FromConflictError(msg string, conflictErr *rescheduleBooking.ConflictError) *ConflictResponse {
	resp := &ConflictResponse{
		Error:   handlers.CodeConflict,
		Message: msg,
	}
	if conflictErr != nil && conflictErr.Conflicting != nil {
		b := conflictErr.Conflicting
		resp.ConflictingBooking = &ConflictDetails{
			ID:          b.ID,
			StartTime:   b.StartTime.Format(time.RFC3339),
			EndTime:     b.EndTime().Format(time.RFC3339),
			ServiceType: string(b.ServiceType),
		}
	}
	return resp
}
