package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/handler/http/response"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	UpsertMonth(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	SetLock(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceService.Service
}

func NewAttendanceHandler(svc *attendanceService.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: svc}
}

func (h *attendanceHandlerImpl) UpsertMonth(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.UpsertMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetMonth(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) SetLock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year   int  `json:"year"`
		Month  int  `json:"month"`
		Locked bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.attendanceService.SetLocked(r.Context(), employeeID, req.Year, req.Month, req.Locked); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lock updated", nil)
}
