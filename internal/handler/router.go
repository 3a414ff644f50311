package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-roster-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/employees/", r.employeesRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /employees/
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employees")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.List(w, req)
		case http.MethodPost:
			r.empHandler.Create(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	if strings.Contains(path, "/") {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	// /employees/{id}
	switch req.Method {
	case http.MethodGet:
		r.empHandler.Get(w, req)
	case http.MethodPut:
		r.empHandler.Update(w, req)
	case http.MethodDelete:
		r.empHandler.Delete(w, req)
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}
