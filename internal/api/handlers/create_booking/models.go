package create_booking

import (
	"time"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/domain"
	createBooking "github.com/fixwise/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerRef     string  `json:"customerRef"`
	TechnicianID    int64   `json:"technicianId"`
	ServiceType     string  `json:"serviceType"`
	StartTime       string  `json:"startTime"` // ISO 8601: "2025-10-15T10:00:00Z"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
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
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 с деталями конфликтующего бронирования
type ConflictResponse struct {
	Error              string           `json:"error"`
	Message            string           `json:"message"`
	ConflictingBooking *ConflictDetails `json:"conflictingBooking,omitempty"`
}

// ConflictDetails публичные поля конфликтующего бронирования
// Код подтверждения и клиент чужого бронирования наружу не отдаются
type ConflictDetails struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ServiceType string `json:"serviceType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerRef string) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerRef:     customerRef,
		TechnicianID:    r.TechnicianID,
		ServiceType:     domain.ServiceType(r.ServiceType),
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictError конвертирует ошибку конфликта в HTTP response
func FromConflictError(msg string, conflictErr *createBooking.ConflictError) *ConflictResponse {
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
