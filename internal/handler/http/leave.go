package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/handler/http/response"
	leaveService "github.com/mosala-hr/payroll-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	RecordDeduction(w http.ResponseWriter, r *http.Request)
	ReverseDeduction(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	ListAccruals(w http.ResponseWriter, r *http.Request)
	RecomputeAccrual(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService  *leaveService.Service
	accrualEngine *leaveService.AccrualEngine
}

func NewLeaveHandler(svc *leaveService.Service, engine *leaveService.AccrualEngine) LeaveHandler {
	return &leaveHandlerImpl{leaveService: svc, accrualEngine: engine}
}

// actor identifies who recorded a ledger entry. Authentication lives in
// front of this service; the gateway forwards the acting user.
func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}
	return "system"
}

func (h *leaveHandlerImpl) RecordDeduction(w http.ResponseWriter, r *http.Request) {
	var req leave.RecordDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.RecordDeduction(r.Context(), req, actor(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction recorded", result)
}

func (h *leaveHandlerImpl) ReverseDeduction(w http.ResponseWriter, r *http.Request) {
	deductionID := chi.URLParam(r, "deductionID")

	result, err := h.leaveService.ReverseDeduction(r.Context(), deductionID, actor(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction reversed", result)
}

func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Balance(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.leaveService.ListDeductions(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListAccruals(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.leaveService.ListAccruals(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) RecomputeAccrual(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.accrualEngine.RecomputeForPeriod(r.Context(), employeeID, req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewAccrualResponse(result))
}
