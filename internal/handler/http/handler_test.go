package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/mosala-hr/payroll-backend-go/internal/handler/http/response"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/mosala-hr/payroll-backend-go/internal/service/employee"
	financeService "github.com/mosala-hr/payroll-backend-go/internal/service/finance"
	leaveService "github.com/mosala-hr/payroll-backend-go/internal/service/leave"
	payrollService "github.com/mosala-hr/payroll-backend-go/internal/service/payroll"
	taxService "github.com/mosala-hr/payroll-backend-go/internal/service/tax"
	"github.com/mosala-hr/payroll-backend-go/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	employees    *testutil.MockEmployeeRepository
	months       *testutil.MockMonthRepository
	accruals     *testutil.MockAccrualRepository
	deductions   *testutil.MockDeductionRepository
	brackets     *testutil.MockBracketRepository
	advances     *testutil.MockAdvanceRepository
	credits      *testutil.MockCreditRepository
	settings     *testutil.MockSettingsRepository
	components   *testutil.MockComponentRepository
	computations *testutil.MockComputationRepository
	router       *chi.Mux
}

func newTestEnv() *testEnv {
	env := &testEnv{
		employees:    testutil.NewMockEmployeeRepository(),
		months:       testutil.NewMockMonthRepository(),
		accruals:     testutil.NewMockAccrualRepository(),
		deductions:   testutil.NewMockDeductionRepository(),
		brackets:     testutil.NewMockBracketRepository(),
		advances:     testutil.NewMockAdvanceRepository(),
		credits:      testutil.NewMockCreditRepository(),
		settings:     testutil.NewMockSettingsRepository(),
		components:   testutil.NewMockComponentRepository(),
		computations: testutil.NewMockComputationRepository(),
	}

	aggregator := attendanceService.NewAggregatorService(env.months)
	taxSvc := taxService.NewService(env.brackets)
	ledger := financeService.NewResolver(env.advances, env.credits)
	engine := payrollService.NewEngine(
		env.employees, env.settings, env.components, env.computations,
		env.deductions, aggregator, taxSvc, ledger,
	)

	env.router = NewRouter(Handlers{
		Employee:   NewEmployeeHandler(employeeService.NewService(env.employees)),
		Attendance: NewAttendanceHandler(attendanceService.NewService(env.months)),
		Leave:      NewLeaveHandler(leaveService.NewService(env.accruals, env.deductions), leaveService.NewAccrualEngine(env.accruals, env.settings, aggregator)),
		Tax:        NewTaxHandler(taxSvc),
		Finance:    NewFinanceHandler(financeService.NewService(env.advances, env.credits), ledger),
		Payroll:    NewPayrollHandler(payrollService.NewService(env.settings, env.components), engine, payrollService.NewBatchRunner(engine, env.employees)),
	}, []string{"*"})

	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "hr-admin")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var envelope response.Response
	raw := struct {
		Success bool                  `json:"success"`
		Message string                `json:"message"`
		Data    json.RawMessage       `json:"data"`
		Error   *response.ErrorDetail `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	envelope.Success = raw.Success
	envelope.Message = raw.Message
	envelope.Error = raw.Error
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return envelope
}

func (env *testEnv) seedEmployee(id string, base int64) {
	salary := decimal.NewFromInt(base)
	env.employees.AddEmployee(employee.Employee{
		ID:         id,
		BaseSalary: &salary,
		HireDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
}

func fullWorkedDays(count int) map[string]string {
	days := make(map[string]string, count)
	for i := 1; i <= count; i++ {
		days[strconv.Itoa(i)] = "worked"
	}
	return days
}

func activeStandardTable(t *testing.T, env *testEnv) {
	body := map[string]interface{}{
		"label": "2025 statutory",
		"brackets": []map[string]interface{}{
			{"lower_bound": "0", "upper_bound": "30000", "rate": "0", "formula": "rate"},
			{"lower_bound": "30000", "rate": "0.10", "formula": "rate_less_deduction", "fixed_deduction": "3000"},
		},
	}
	rec := env.do(t, http.MethodPost, "/api/v1/tax/versions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var version struct {
		ID string `json:"id"`
	}
	decodeEnvelope(t, rec, &version)
	require.NotEmpty(t, version.ID)

	rec = env.do(t, http.MethodPost, "/api/v1/tax/versions/"+version.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAttendance_UpsertLockConflict(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPut, "/api/v1/employees/emp-1/attendance", map[string]interface{}{
		"year":  2025,
		"month": 6,
		"days":  fullWorkedDays(26),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var month struct {
		Days   []string `json:"days"`
		Locked bool     `json:"locked"`
	}
	envelope := decodeEnvelope(t, rec, &month)
	assert.True(t, envelope.Success)
	assert.Len(t, month.Days, 30)
	assert.Equal(t, "worked", month.Days[0])
	assert.False(t, month.Locked)

	rec = env.do(t, http.MethodPost, "/api/v1/employees/emp-1/attendance/lock", map[string]interface{}{
		"year":   2025,
		"month":  6,
		"locked": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A locked month rejects further edits.
	rec = env.do(t, http.MethodPut, "/api/v1/employees/emp-1/attendance", map[string]interface{}{
		"year":  2025,
		"month": 6,
		"days":  fullWorkedDays(20),
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	envelope = decodeEnvelope(t, rec, nil)
	assert.False(t, envelope.Success)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestAttendance_UnknownDayCodeRejected(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPut, "/api/v1/employees/emp-1/attendance", map[string]interface{}{
		"year":  2025,
		"month": 6,
		"days":  map[string]string{"1": "vacationing"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestTax_ActiveBrackets(t *testing.T) {
	env := newTestEnv()
	activeStandardTable(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/tax/brackets/active", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var brackets []struct {
		LowerBound decimal.Decimal `json:"lower_bound"`
	}
	decodeEnvelope(t, rec, &brackets)
	require.Len(t, brackets, 2)
	assert.True(t, brackets[0].LowerBound.IsZero())
}

func TestTax_MalformedTableRejected(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/tax/versions", map[string]interface{}{
		"label": "broken",
		"brackets": []map[string]interface{}{
			{"lower_bound": "5000", "rate": "0.10", "formula": "rate"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestPayroll_ComputeEndpoint(t *testing.T) {
	env := newTestEnv()
	env.seedEmployee("emp-1", 30000)
	activeStandardTable(t, env)

	rec := env.do(t, http.MethodPut, "/api/v1/employees/emp-1/attendance", map[string]interface{}{
		"year":  2025,
		"month": 6,
		"days":  fullWorkedDays(26),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/payroll/compute", payroll.ComputeRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      6,
		Store:      true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result payroll.Computation
	decodeEnvelope(t, rec, &result)
	assert.True(t, result.TaxableSalary.Equal(decimal.RequireFromString("27300")), "taxable: %s", result.TaxableSalary)
	assert.True(t, result.NetSalary.Equal(decimal.RequireFromString("27300")), "net: %s", result.NetSalary)

	// The stored row is retrievable.
	rec = env.do(t, http.MethodGet, "/api/v1/employees/emp-1/computations?year=2025&month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stored payroll.Computation
	decodeEnvelope(t, rec, &stored)
	assert.True(t, stored.NetSalary.Equal(result.NetSalary))
}

func TestPayroll_ComputeMissingAttendance(t *testing.T) {
	env := newTestEnv()
	env.seedEmployee("emp-1", 30000)
	activeStandardTable(t, env)

	rec := env.do(t, http.MethodPost, "/api/v1/payroll/compute", payroll.ComputeRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      6,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestPayroll_BatchEndpoint(t *testing.T) {
	env := newTestEnv()
	activeStandardTable(t, env)
	env.seedEmployee("emp-1", 30000)
	env.seedEmployee("emp-2", 30000)

	rec := env.do(t, http.MethodPut, "/api/v1/employees/emp-1/attendance", map[string]interface{}{
		"year":  2025,
		"month": 6,
		"days":  fullWorkedDays(26),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/payroll/batch", payroll.BatchRequest{Year: 2025, Month: 6, Store: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary payroll.BatchSummary
	decodeEnvelope(t, rec, &summary)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.BusinessErrors)
	assert.Equal(t, 1, env.computations.UpsertCount)
}

func TestLeave_DeductionRecordedWithActor(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/leave/deductions", leave.RecordDeductionRequest{
		EmployeeID:  "emp-1",
		Days:        decimal.RequireFromString("1.5"),
		ChargeYear:  2025,
		ChargeMonth: 6,
		TakenFrom:   "2025-06-10",
		TakenTo:     "2025-06-11",
		Type:        string(leave.DeductionAnnual),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created leave.DeductionResponse
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "hr-admin", created.CreatedBy)

	rec = env.do(t, http.MethodGet, "/api/v1/employees/emp-1/leave/balance?year=2025&month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var balance leave.BalanceResponse
	decodeEnvelope(t, rec, &balance)
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("-1.5")), "balance: %s", balance.Balance)
}

func TestFinance_ProrogueWithheldConflict(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/finance/credits", map[string]interface{}{
		"employee_id":       "emp-1",
		"total_amount":      "600",
		"installment_count": 2,
		"first_due_year":    2025,
		"first_due_month":   6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var credit struct {
		ID string `json:"id"`
	}
	decodeEnvelope(t, rec, &credit)

	rec = env.do(t, http.MethodGet, "/api/v1/finance/credits/"+credit.ID+"/installments", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var installments []struct {
		ID string `json:"id"`
	}
	decodeEnvelope(t, rec, &installments)
	require.Len(t, installments, 2)

	rec = env.do(t, http.MethodPost, "/api/v1/employees/emp-1/finance/settle", map[string]interface{}{
		"year":  2025,
		"month": 6,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/finance/installments/"+installments[0].ID+"/prorogue", map[string]interface{}{
		"new_year":  2025,
		"new_month": 9,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestEmployee_CreateAndGet(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"code":        "E-001",
		"full_name":   "Test Person",
		"base_salary": "30000",
		"hire_date":   "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created employee.EmployeeResponse
	decodeEnvelope(t, rec, &created)
	require.NotEmpty(t, created.ID)

	rec = env.do(t, http.MethodGet, "/api/v1/employees/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/employees/unknown-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}
