package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/mosala-hr/payroll-backend-go/internal/handler/http/response"
	financeService "github.com/mosala-hr/payroll-backend-go/internal/service/finance"
)

type FinanceHandler interface {
	CreateAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	CreateCredit(w http.ResponseWriter, r *http.Request)
	ListCredits(w http.ResponseWriter, r *http.Request)
	ListInstallments(w http.ResponseWriter, r *http.Request)
	ProrogueInstallment(w http.ResponseWriter, r *http.Request)
	GetDue(w http.ResponseWriter, r *http.Request)
	SettlePeriod(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	financeService *financeService.Service
	ledger         *financeService.Resolver
}

func NewFinanceHandler(svc *financeService.Service, ledger *financeService.Resolver) FinanceHandler {
	return &financeHandlerImpl{financeService: svc, ledger: ledger}
}

func (h *financeHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.financeService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance created", result)
}

func (h *financeHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.financeService.ListAdvances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.financeService.CreateCredit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Credit created", result)
}

func (h *financeHandlerImpl) ListCredits(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.financeService.ListCredits(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) ListInstallments(w http.ResponseWriter, r *http.Request) {
	creditID := chi.URLParam(r, "creditID")

	result, err := h.financeService.ListInstallments(r.Context(), creditID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) ProrogueInstallment(w http.ResponseWriter, r *http.Request) {
	var req finance.ProrogueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	installmentID := chi.URLParam(r, "installmentID")

	if err := h.financeService.ProrogueInstallment(r.Context(), installmentID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Installment rescheduled", nil)
}

func (h *financeHandlerImpl) GetDue(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	result, err := h.ledger.DueForPeriod(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *financeHandlerImpl) SettlePeriod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.financeService.SettlePeriod(r.Context(), employeeID, req.Year, req.Month); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period settled", nil)
}
