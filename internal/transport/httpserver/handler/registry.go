package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	registrydomain "qr-manager-go/internal/domain/registry"
)

type registerCodeRequest struct {
	HouseNumber  houseNumber `json:"house_number"`
	Condominio   string      `json:"condominio"`
	VisitorName  string      `json:"visitor_name"`
	ResidentName string      `json:"resident_name"`
}

type registerCodeResponse struct {
	Code      string    `json:"code"`
	House     string    `json:"house"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type validateRequest struct {
	Code string `json:"code"`
}

type validateResponse struct {
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	VisitorName string `json:"visitor_name,omitempty"`
	House       string `json:"house,omitempty"`
}

func (h *Handlers) RegisterCode(w http.ResponseWriter, r *http.Request) {
	var req registerCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Registry.Register(r.Context(), registrydomain.RegisterInput{
		HouseID:      req.HouseNumber.String(),
		Condominio:   req.Condominio,
		VisitorName:  req.VisitorName,
		ResidentName: req.ResidentName,
	})
	if err != nil {
		switch {
		case errors.Is(err, registrydomain.ErrInvalidHouseID):
			h.log.BusinessError("registry.register: invalid house", err, "house", req.HouseNumber.String())
			writeError(w, http.StatusBadRequest, "invalid_house", "house must be 1-100 or administración")
		case errors.Is(err, registrydomain.ErrMissingField):
			h.log.BusinessError("registry.register: missing field", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("registry.register: register failed", err, "house", req.HouseNumber.String(), "condominio", req.Condominio)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerCodeResponse{
		Code:      result.Record.Code,
		House:     result.Record.HouseID,
		Status:    string(result.Record.Status),
		CreatedAt: result.Record.CreatedAt,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *Handlers) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	result, err := h.Registry.Validate(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, registrydomain.ErrMissingField) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("registry.validate: validate failed", err, "code", req.Code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if result.Status == registrydomain.ValidationDenied {
		h.log.BusinessError("registry.validate: code denied", errors.New(string(result.Reason)), "code", req.Code)
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Status:      string(result.Status),
		Reason:      string(result.Reason),
		VisitorName: result.VisitorName,
		House:       result.HouseID,
	})
}
