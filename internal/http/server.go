// Package http exposes the ledger, lifecycle, template, and export services
// over a JSON API.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"daftar/internal/core"
	"daftar/internal/render"
	"daftar/internal/services"
)

// Write-side ports the API needs beyond the services. The storage repository
// implements all of them.
type (
	ExpenseCreator interface {
		CreateExpense(ctx context.Context, e core.RawExpense) (string, error)
	}
	EmployeeCreator interface {
		CreateEmployee(ctx context.Context, e core.RawEmployee) (string, error)
	}
	TemplateCreator interface {
		CreateTemplate(ctx context.Context, t render.Template) (string, error)
	}
	SettingsWriter interface {
		SetSetting(ctx context.Context, key, value string) error
	}
)

type Server struct {
	ledger    *services.LedgerService
	lifecycle *services.LifecycleService
	export    *services.ExportService
	templates *services.TemplateService

	expenseCreator  ExpenseCreator
	employeeCreator EmployeeCreator
	templateCreator TemplateCreator
	settingsReader  services.SettingsReader
	settingsWriter  SettingsWriter

	allowedOrigins []string
	onMutate       func()
}

type Deps struct {
	Ledger    *services.LedgerService
	Lifecycle *services.LifecycleService
	Export    *services.ExportService
	Templates *services.TemplateService

	ExpenseCreator  ExpenseCreator
	EmployeeCreator EmployeeCreator
	TemplateCreator TemplateCreator
	SettingsReader  services.SettingsReader
	SettingsWriter  SettingsWriter

	AllowedOrigins []string
}

func NewServer(deps Deps) *Server {
	return &Server{
		ledger:          deps.Ledger,
		lifecycle:       deps.Lifecycle,
		export:          deps.Export,
		templates:       deps.Templates,
		expenseCreator:  deps.ExpenseCreator,
		employeeCreator: deps.EmployeeCreator,
		templateCreator: deps.TemplateCreator,
		settingsReader:  deps.SettingsReader,
		settingsWriter:  deps.SettingsWriter,
		allowedOrigins:  deps.AllowedOrigins,
		onMutate:        func() {},
	}
}

// OnMutate registers a hook fired after any successful write through the API
// that is not already covered by the lifecycle service's own hook.
func (s *Server) OnMutate(fn func()) {
	if fn != nil {
		s.onMutate = fn
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ledger", s.handleGetLedger)

		r.Post("/expenses", s.handleCreateExpense)
		r.Post("/employees", s.handleCreateEmployee)

		r.Post("/records/soft-delete", s.handleSoftDelete)
		r.Post("/records/recover", s.handleRecover)
		r.Post("/records/delete", s.handlePermanentDelete)
		r.Post("/reset", s.handleReset)

		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates", s.handleCreateTemplate)
		r.Post("/templates/default", s.handleSetDefaultTemplate)

		r.Get("/settings/{key}", s.handleGetSetting)
		r.Put("/settings/{key}", s.handlePutSetting)

		r.Post("/export/csv", s.handleExportCSV)
		r.Post("/export/xlsx", s.handleExportXLSX)
		r.Post("/print", s.handlePrint)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
