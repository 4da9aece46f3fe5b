package models

import (
	"errors"
	"time"

	"github.com/fixwise/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CustomerRef        string `json:"customerRef"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerBookingsRequest запрос на историю бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerRef string  `json:"customerRef"`
	Status      *string `json:"status,omitempty"`
}

// VerifyCodeRequest запрос на проверку кода подтверждения
type VerifyCodeRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64  `json:"id"`
	CustomerRef      string `json:"customerRef"`
	TechnicianID     int64  `json:"technicianId"`
	ServiceType      string `json:"serviceType"`
	StartTime        string `json:"startTime"` // ISO 8601
	EndTime          string `json:"endTime"`   // ISO 8601
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmationCode"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// VerifyCodeResponse ответ проверки кода подтверждения
type VerifyCodeResponse struct {
	BookingID int64 `json:"bookingId"`
	Valid     bool  `json:"valid"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerRef:        b.CustomerRef,
		TechnicianID:       b.TechnicianID,
		ServiceType:        string(b.ServiceType),
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime().Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ConfirmationCode:   b.ConfirmationCode,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsKnownStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
