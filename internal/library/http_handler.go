package library

import (
	"errors"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/logger"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes mounts the book endpoints on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.AddBook)
	mux.HandleFunc("GET /books/available", h.ListAvailable)
	mux.HandleFunc("POST /books/{title}/borrow", h.Borrow)
	mux.HandleFunc("POST /books/{title}/return", h.Return)
}

type addBookRequest struct {
	Title  string `json:"title" validate:"required,notblank,max=255"`
	Copies int    `json:"copies" validate:"gt=0,lte=2147483647"`
}

type loanRequest struct {
	MemberID int64 `json:"member_id" validate:"required"`
}

type loanResponse struct {
	Title    string `json:"title"`
	MemberID int64  `json:"member_id"`
}

// AddBook handles POST /books
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.service.AddBook(r.Context(), req.Title, req.Copies); err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		if errors.Is(err, ErrConflict) {
			writeConflict(w, r)
			return
		}
		logger.FromContext(r.Context()).Error().Err(err).Str("title", req.Title).Msg("add book failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONCreated(w, r, addBookRequest{Title: req.Title, Copies: req.Copies})
}

// ListAvailable handles GET /books/available
func (h *HTTPHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetAvailableBooks(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("list available books failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{"count": len(books)})
}

// Borrow handles POST /books/{title}/borrow
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	title, req, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	lent, err := h.service.BorrowBook(r.Context(), req.MemberID, title)
	if err != nil {
		if errors.Is(err, ErrInvalidOperation) {
			httpx.JSONError(w, r, http.StatusForbidden, "INVALID_MEMBER", "Member is not allowed to borrow", nil)
			return
		}
		if errors.Is(err, ErrConflict) {
			writeConflict(w, r)
			return
		}
		if !lent {
			logger.FromContext(r.Context()).Error().Err(err).Str("title", title).Int64("member_id", req.MemberID).Msg("borrow failed")
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		// The loan is recorded; only the notification failed.
		logger.FromContext(r.Context()).Warn().Err(err).Str("title", title).Int64("member_id", req.MemberID).Msg("borrow notification failed")
	}
	if !lent {
		httpx.JSONError(w, r, http.StatusConflict, "NOT_AVAILABLE", "Book not found or no copies available", nil)
		return
	}

	httpx.JSONSuccess(w, r, loanResponse{Title: title, MemberID: req.MemberID}, nil)
}

// Return handles POST /books/{title}/return
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	title, req, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	returned, err := h.service.ReturnBook(r.Context(), req.MemberID, title)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			writeConflict(w, r)
			return
		}
		if !returned {
			logger.FromContext(r.Context()).Error().Err(err).Str("title", title).Int64("member_id", req.MemberID).Msg("return failed")
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		logger.FromContext(r.Context()).Warn().Err(err).Str("title", title).Int64("member_id", req.MemberID).Msg("return notification failed")
	}
	if !returned {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	httpx.JSONSuccess(w, r, loanResponse{Title: title, MemberID: req.MemberID}, nil)
}

func (h *HTTPHandler) decodeLoan(w http.ResponseWriter, r *http.Request) (string, loanRequest, bool) {
	title := r.PathValue("title")
	if title == "" {
		http.NotFound(w, r)
		return "", loanRequest{}, false
	}

	var req loanRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return "", loanRequest{}, false
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return "", loanRequest{}, false
	}
	return title, req, true
}

func writeConflict(w http.ResponseWriter, r *http.Request) {
	httpx.JSONError(w, r, http.StatusConflict, "CONCURRENT_UPDATE", "Book was changed by another request, retry", nil)
}
