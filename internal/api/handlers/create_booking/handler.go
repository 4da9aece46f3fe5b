package create_booking

import (
	"errors"
	"net/http"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/api/middleware"
	createBooking "github.com/fixwise/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается ISO 8601"
	msgMissingCustomerRef   = "не удалось определить клиента"
	msgSlotConflict         = "выбранный временной слот занят"
	msgInvalidInterval      = "некорректный интервал бронирования"
	msgOutsideBusinessHours = "интервал вне рабочих часов"
	msgTransientStore       = "не удалось зафиксировать бронирование, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerRef, ok := middleware.CustomerRefFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /bookings - No customer ref in context")
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, msgMissingCustomerRef)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerRef)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createBooking.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Slot conflict: technician=%d, customer=%s",
				req.TechnicianID, customerRef)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgSlotConflict, conflictErr))

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: technician=%d, customer=%s",
				req.TechnicianID, customerRef)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgSlotConflict, nil))

		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid request: technician=%d, error=%v", req.TechnicianID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: technician=%d", req.TechnicianID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createBooking.ErrTransientStore):
			h.logger.Warn("POST /bookings - Transient store error: technician=%d", req.TechnicianID)
			handlers.RespondError(w, http.StatusServiceUnavailable, handlers.CodeServiceUnavailable, msgTransientStore)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: technician=%d, customer=%s, error=%v",
				req.TechnicianID, customerRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, technician=%d, customer=%s",
		result.ID, req.TechnicianID, customerRef)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
