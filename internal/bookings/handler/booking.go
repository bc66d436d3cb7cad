package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"hotelbooking/internal/bookings/service"
	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// Search lists bookings overlapping the requested stay. Dates come from the startDate and
// endDate query parameters; when neither is given, a JSON body with the same fields is read.
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := h.searchCriteria(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	bookings, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) searchCriteria(r *http.Request) (model.SearchCriteria, error) {
	var criteria model.SearchCriteria
	query := r.URL.Query()
	startStr, endStr := query.Get("startDate"), query.Get("endDate")

	if startStr == "" && endStr == "" {
		if err := decodeBody(r, &criteria, true); err != nil {
			return criteria, err
		}
		return criteria, nil
	}

	for _, p := range []struct {
		name  string
		value string
		dst   **model.Date
	}{
		{"startDate", startStr, &criteria.StartDate},
		{"endDate", endStr, &criteria.EndDate},
	} {
		if p.value == "" {
			continue
		}
		parsed, err := model.ParseDate(p.value)
		if err != nil {
			return criteria, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s, must be YYYY-MM-DD", p.name, p.value))
		}
		*p.dst = &parsed
	}
	return criteria, nil
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := decodeBody(r, &booking, false); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	saved, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, saved); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteAccepted(w, nil); err != nil {
		h.log.Error("failed to write accepted response", "handler", "Cancel", "operation", "WriteAccepted", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch model.BookingPatch
	if err := decodeBody(r, &patch, false); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	updated, err := h.service.Update(r.Context(), ps.ByName("id"), &patch)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteAccepted(w, updated); err != nil {
		h.log.Error("failed to write accepted response", "handler", "Update", "operation", "WriteAccepted", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// decodeBody reads a JSON body into dst. An empty body is an error unless allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return apperrors.InvalidInput("Request body is required")
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		if allowEmpty {
			return nil
		}
		return apperrors.InvalidInput("Request body is required")
	case errors.As(err, &maxBytesErr):
		return apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("Request body exceeds %d bytes", maxBytesErr.Limit),
			http.StatusRequestEntityTooLarge)
	default:
		return apperrors.InvalidInput(fmt.Sprintf("Invalid request body: %v", err))
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/booking", h.Search)
	router.GET("/booking/all", h.GetAll)
	router.GET("/booking/id/:id", h.GetByID)
	router.POST("/booking/new", h.Create)
	router.POST("/booking/cancel/:id", h.Cancel)
	router.POST("/booking/update/:id", h.Update)
}
