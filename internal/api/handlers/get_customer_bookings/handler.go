package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/api/middleware"
	"github.com/fixwise/booking-service/internal/service/bookings"
	"github.com/fixwise/booking-service/internal/service/bookings/models"
)

const (
	msgMissingCustomerRef = "не удалось определить клиента"
	msgAccessDenied       = "доступ к чужой истории бронирований запрещён"
	msgInvalidStatus      = "некорректный статус бронирования"
)

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

// Handle GET /api/v1/customers/{customerRef}/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerRef := vars["customerRef"]

	authRef, ok := middleware.CustomerRefFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /customers/{ref}/bookings - No customer ref in context")
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, msgMissingCustomerRef)
		return
	}

	// Клиент видит только собственную историю
	if authRef != customerRef {
		h.logger.Warn("GET /customers/{ref}/bookings - Access denied: auth=%s, requested=%s", authRef, customerRef)
		handlers.RespondError(w, http.StatusForbidden, handlers.CodeUnauthorized, msgAccessDenied)
		return
	}

	req := &models.GetCustomerBookingsRequest{CustomerRef: customerRef}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{ref}/bookings - Invalid request: customer=%s, error=%v", customerRef, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{ref}/bookings - Failed to get bookings: customer=%s, error=%v",
				customerRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{ref}/bookings - Bookings retrieved: customer=%s, count=%d",
		customerRef, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
