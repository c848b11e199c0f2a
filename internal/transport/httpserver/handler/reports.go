package handler

import (
	"errors"
	"net/http"

	registrydomain "qr-manager-go/internal/domain/registry"
)

func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	house := query.Get("house_number")
	condominio := query.Get("condominio")

	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
		return
	}

	entries, err := h.Reports.History(r.Context(), house, condominio, limit)
	if err != nil {
		switch {
		case errors.Is(err, registrydomain.ErrInvalidHouseID):
			h.log.BusinessError("reports.history: invalid house", err, "house", house)
			writeError(w, http.StatusBadRequest, "invalid_house", "house must be 1-100 or administración")
		case errors.Is(err, registrydomain.ErrMissingField):
			h.log.BusinessError("reports.history: missing field", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("reports.history: scan failed", err, "house", house, "condominio", condominio)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) GetCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := h.Reports.Counters(r.Context())
	if err != nil {
		h.log.InternalError("reports.counters: scan failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, counters)
}
