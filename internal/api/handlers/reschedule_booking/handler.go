package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fixwise/booking-service/internal/api/handlers"
	rescheduleBooking "github.com/fixwise/booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается ISO 8601"
	msgBookingNotFound      = "бронирование не найдено"
	msgCannotReschedule     = "бронирование нельзя перенести в текущем статусе"
	msgSlotConflict         = "новый временной слот занят"
	msgInvalidInterval      = "некорректный интервал бронирования"
	msgOutsideBusinessHours = "интервал вне рабочих часов"
	msgTransientStore       = "не удалось зафиксировать перенос, попробуйте ещё раз"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var cutoffErr *rescheduleBooking.CutoffError
		var conflictErr *rescheduleBooking.ConflictError

		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.As(err, &cutoffErr):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cutoff violation: booking_id=%d, %.1f hours remaining",
				bookingID, cutoffErr.HoursRemaining)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromCutoffError(cutoffErr))

		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgSlotConflict, conflictErr))

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgSlotConflict, nil))

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeCannotModify, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput),
			errors.Is(err, rescheduleBooking.ErrInvalidInterval):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, rescheduleBooking.ErrOutsideBusinessHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside business hours: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, rescheduleBooking.ErrTransientStore):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Transient store error: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusServiceUnavailable, handlers.CodeServiceUnavailable, msgTransientStore)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, new_start=%s",
		bookingID, req.NewStartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
