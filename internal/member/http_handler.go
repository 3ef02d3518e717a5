package member

import (
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
	"libraryapi/internal/logger"
)

const defaultLoanHistoryLimit = 50

type HTTPHandler struct {
	service *Service
	loans   LoanHistory
}

func NewHTTPHandler(service *Service, loans LoanHistory) *HTTPHandler {
	return &HTTPHandler{service: service, loans: loans}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /members", h.Register)
	mux.HandleFunc("GET /members/{id}", h.Get)
	mux.HandleFunc("GET /members/{id}/loans", h.Loans)
	mux.HandleFunc("POST /members/{id}/suspend", h.Suspend)
	mux.HandleFunc("POST /members/{id}/reinstate", h.Reinstate)
}

type registerRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"required,email"`
}

// Register handles POST /members
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	m, err := h.service.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, ErrAlreadyExists):
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Email already registered", nil)
		default:
			logger.FromContext(r.Context()).Error().Err(err).Msg("register member failed")
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONCreated(w, r, m)
}

// Get handles GET /members/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	m, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, m, nil)
}

// Loans handles GET /members/{id}/loans
func (h *HTTPHandler) Loans(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = defaultLoanHistoryLimit
	}

	events, err := h.loans.ListByMember(r.Context(), id, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Int64("member_id", id).Msg("list loans failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, events, map[string]interface{}{"count": len(events), "limit": limit})
}

// Suspend handles POST /members/{id}/suspend
func (h *HTTPHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Suspend(r.Context(), id); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

// Reinstate handles POST /members/{id}/reinstate
func (h *HTTPHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Reinstate(r.Context(), id); err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

func (h *HTTPHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Member not found", nil)
		return
	}
	logger.FromContext(r.Context()).Error().Err(err).Msg("member lookup failed")
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid member id", nil)
		return 0, false
	}
	return id, true
}
