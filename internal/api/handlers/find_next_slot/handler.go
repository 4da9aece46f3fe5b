package find_next_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fixwise/booking-service/internal/api/handlers"
	"github.com/fixwise/booking-service/internal/domain"
	findNextSlot "github.com/fixwise/booking-service/internal/usecase/find_next_slot"
)

const (
	msgInvalidTechnicianID = "некорректный ID техника"
	msgMissingServiceType  = "тип услуги обязателен"
	msgInvalidFromDate     = "некорректный формат fromDate, ожидается YYYY-MM-DD"
	msgNoSlotAvailable     = "нет свободных слотов в пределах горизонта поиска"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindNextSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/technicians/{technicianId}/next-available
// Query params: serviceType (required), fromDate (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	technicianID, err := strconv.ParseInt(vars["technicianId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /technicians/{id}/next-available - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	serviceType := r.URL.Query().Get("serviceType")
	if serviceType == "" {
		h.logger.Warn("GET /technicians/{id}/next-available - Missing service type")
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	useCaseReq := &findNextSlot.Request{
		TechnicianID: technicianID,
		ServiceType:  domain.ServiceType(serviceType),
	}

	if fromDateStr := r.URL.Query().Get("fromDate"); fromDateStr != "" {
		fromDate, err := time.Parse(domain.DateFormat, fromDateStr)
		if err != nil {
			h.logger.Warn("GET /technicians/{id}/next-available - Invalid fromDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		useCaseReq.After = fromDate
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findNextSlot.ErrNoSlotAvailable):
			h.logger.Info("GET /technicians/{id}/next-available - No slot available: technician=%d", technicianID)
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeNoSlotAvailable, msgNoSlotAvailable)

		case errors.Is(err, findNextSlot.ErrInvalidInput):
			h.logger.Warn("GET /technicians/{id}/next-available - Invalid request: technician=%d, error=%v",
				technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /technicians/{id}/next-available - Failed to find slot: technician=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /technicians/{id}/next-available - Slot found: technician=%d, start=%s",
		technicianID, result.Start.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
