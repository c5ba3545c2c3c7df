package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	"github.com/mosala-hr/payroll-backend-go/internal/handler/http/response"
	taxService "github.com/mosala-hr/payroll-backend-go/internal/service/tax"
)

type TaxHandler interface {
	CreateVersion(w http.ResponseWriter, r *http.Request)
	ActivateVersion(w http.ResponseWriter, r *http.Request)
	ListVersions(w http.ResponseWriter, r *http.Request)
	GetActiveBrackets(w http.ResponseWriter, r *http.Request)
}

type taxHandlerImpl struct {
	taxService *taxService.Service
}

func NewTaxHandler(svc *taxService.Service) TaxHandler {
	return &taxHandlerImpl{taxService: svc}
}

func (h *taxHandlerImpl) CreateVersion(w http.ResponseWriter, r *http.Request) {
	var req tax.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxService.CreateVersion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bracket version created", result)
}

func (h *taxHandlerImpl) ActivateVersion(w http.ResponseWriter, r *http.Request) {
	versionID := chi.URLParam(r, "versionID")

	if err := h.taxService.ActivateVersion(r.Context(), versionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bracket version activated", nil)
}

func (h *taxHandlerImpl) ListVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.taxService.ListVersions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxHandlerImpl) GetActiveBrackets(w http.ResponseWriter, r *http.Request) {
	resolver, err := h.taxService.ActiveResolver(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tax.NewBracketResponses(resolver.Brackets()))
}
