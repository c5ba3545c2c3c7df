package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Tax        TaxHandler
	Finance    FinanceHandler
	Payroll    PayrollHandler
}

func NewRouter(h Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Actor"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListActive)
			r.Post("/", h.Employee.Create)

			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Employee.GetByID)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.GetMonth)
					r.Put("/", h.Attendance.UpsertMonth)
					r.Post("/lock", h.Attendance.SetLock)
				})

				r.Route("/leave", func(r chi.Router) {
					r.Get("/balance", h.Leave.GetBalance)
					r.Get("/deductions", h.Leave.ListDeductions)
					r.Get("/accruals", h.Leave.ListAccruals)
					r.Post("/accruals/recompute", h.Leave.RecomputeAccrual)
				})

				r.Route("/finance", func(r chi.Router) {
					r.Get("/advances", h.Finance.ListAdvances)
					r.Get("/credits", h.Finance.ListCredits)
					r.Get("/due", h.Finance.GetDue)
					r.Post("/settle", h.Finance.SettlePeriod)
				})

				r.Route("/components", func(r chi.Router) {
					r.Get("/", h.Payroll.GetEmployeeComponents)
					r.Post("/", h.Payroll.AssignComponent)
				})

				r.Get("/computations", h.Payroll.GetComputation)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Post("/deductions", h.Leave.RecordDeduction)
			r.Post("/deductions/{deductionID}/reverse", h.Leave.ReverseDeduction)
		})

		r.Route("/tax", func(r chi.Router) {
			r.Get("/versions", h.Tax.ListVersions)
			r.Post("/versions", h.Tax.CreateVersion)
			r.Post("/versions/{versionID}/activate", h.Tax.ActivateVersion)
			r.Get("/brackets/active", h.Tax.GetActiveBrackets)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Post("/advances", h.Finance.CreateAdvance)
			r.Post("/credits", h.Finance.CreateCredit)
			r.Get("/credits/{creditID}/installments", h.Finance.ListInstallments)
			r.Post("/installments/{installmentID}/prorogue", h.Finance.ProrogueInstallment)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/settings", h.Payroll.GetSettings)
			r.Put("/settings", h.Payroll.UpdateSettings)
			r.Get("/components", h.Payroll.ListComponents)
			r.Post("/components", h.Payroll.CreateComponent)
			r.Delete("/assignments/{assignmentID}", h.Payroll.RemoveAssignment)
			r.Post("/compute", h.Payroll.Compute)
			r.Post("/batch", h.Payroll.RunBatch)
			r.Get("/computations", h.Payroll.ListComputations)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
