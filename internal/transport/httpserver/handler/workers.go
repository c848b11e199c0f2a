package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	registrydomain "qr-manager-go/internal/domain/registry"
)

type registerWorkerRequest struct {
	HouseNumber houseNumber `json:"house_number"`
	Condominio  string      `json:"condominio"`
	WorkerName  string      `json:"worker_name"`
	WorkerType  string      `json:"worker_type"`
	PhotoBase64 string      `json:"photo_base64"`
	PhotoURL    string      `json:"photo_url"`
}

type registerWorkerResponse struct {
	WorkerName  string    `json:"worker_name"`
	House       string    `json:"house"`
	ServiceType string    `json:"service_type"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handlers) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req registerWorkerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	photo, err := decodePhoto(req.PhotoBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_photo", "photo_base64 is not valid base64")
		return
	}

	record, err := h.Registry.RegisterWorker(r.Context(), registrydomain.RegisterWorkerInput{
		HouseID:     req.HouseNumber.String(),
		Condominio:  req.Condominio,
		WorkerName:  req.WorkerName,
		ServiceType: req.WorkerType,
		Photo:       photo,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, registrydomain.ErrInvalidHouseID):
			h.log.BusinessError("workers.register: invalid house", err, "house", req.HouseNumber.String())
			writeError(w, http.StatusBadRequest, "invalid_house", "house must be 1-100 or administración")
		case errors.Is(err, registrydomain.ErrMissingField):
			h.log.BusinessError("workers.register: missing field", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("workers.register: register failed", err, "house", req.HouseNumber.String(), "condominio", req.Condominio)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerWorkerResponse{
		WorkerName:  record.VisitorName,
		House:       record.HouseID,
		ServiceType: record.ServiceType,
		PhotoURL:    record.PhotoURL,
		Status:      string(record.Status),
		CreatedAt:   record.CreatedAt,
	})
}

// decodePhoto tolerates the data-URL prefix some camera libraries prepend.
func decodePhoto(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	if idx := strings.Index(encoded, ";base64,"); idx != -1 {
		encoded = encoded[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
