package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-calc-service/internal/errors"
	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/service"
	"github.com/pribylovaa/go-calc-service/internal/transport/http/middleware"
)

type calculationRequest struct {
	Type   string    `json:"type"`
	Inputs []float64 `json:"inputs"`
}

type calculationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Inputs    []float64 `json:"inputs"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCalculationResponse(calc *models.Calculation) calculationResponse {
	return calculationResponse{
		ID:        calc.ID.String(),
		Type:      string(calc.Type),
		Inputs:    calc.Inputs,
		Result:    calc.Result,
		CreatedAt: calc.CreatedAt,
		UpdatedAt: calc.UpdatedAt,
	}
}

func (h *Handlers) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in calculationRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	calc, err := h.svc.CreateCalculation(r.Context(), userID, models.Operation(in.Type), in.Inputs)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCalculationResponse(calc))
}

func (h *Handlers) ListCalculations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	calcs, err := h.svc.ListCalculations(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]calculationResponse, 0, len(calcs))
	for i := range calcs {
		out = append(out, toCalculationResponse(&calcs[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	calc, err := h.svc.CalculationByID(r.Context(), userID, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCalculationResponse(calc))
}

func (h *Handlers) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	var in calculationRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	calc, err := h.svc.UpdateCalculation(r.Context(), userID, id, models.Operation(in.Type), in.Inputs)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCalculationResponse(calc))
}

func (h *Handlers) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	if err := h.svc.DeleteCalculation(r.Context(), userID, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
