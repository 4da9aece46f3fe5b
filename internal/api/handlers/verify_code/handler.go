package verify_code

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCode        = "код подтверждения обязателен"
	msgBookingNotFound    = "бронирование не найдено"
)

// VerifyCodeRequest HTTP request model
type VerifyCodeRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/verify-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/verify-code - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/verify-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ConfirmationCode == "" {
		h.logger.Warn("POST /bookings/{id}/verify-code - Missing confirmation code: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.VerifyConfirmationCode(r.Context(), bookingID, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/verify-code - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/verify-code - Failed to verify code: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/verify-code - Code verified: booking_id=%d, valid=%t",
		bookingID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
