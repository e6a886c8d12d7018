package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"
	"cargahoraria/internal/report"
	"cargahoraria/internal/shortname"
	"cargahoraria/internal/summary"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Schedules is the read side of the schedule service
type Schedules interface {
	Sheets(ctx context.Context) ([]string, error)
	Courses(ctx context.Context, sheet string) ([]schedule.CourseRecord, error)
	Course(ctx context.Context, sheet, code string) (*schedule.CourseRecord, error)
	Report(ctx context.Context, sheet string) (*report.Report, error)
}

// Server exposes normalized schedules over HTTP
type Server struct {
	router    *chi.Mux
	schedules Schedules
	logger    zerolog.Logger
}

// NewServer creates the API server and its routes
func NewServer(schedules Schedules, logger zerolog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		schedules: schedules,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/sheets", func(r chi.Router) {
		r.Get("/", s.handleSheets)
		r.Get("/{sheet}/courses", s.handleCourses)
		r.Get("/{sheet}/courses/{code}", s.handleCourse)
		r.Get("/{sheet}/summary", s.handleSummary)
		r.Get("/{sheet}/report", s.handleReport)
	})
}

// requestLogger logs one line per request with zerolog
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := s.schedules.Sheets(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sheets": sheets})
}

// courseView is a course with its short label
type courseView struct {
	schedule.CourseRecord
	ShortName string `json:"short_name"`
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	sheet := chi.URLParam(r, "sheet")
	records, err := s.schedules.Courses(r.Context(), sheet)
	if err != nil {
		s.writeError(w, err)
		return
	}
	views := make([]courseView, 0, len(records))
	for _, rec := range records {
		views = append(views, courseView{CourseRecord: rec, ShortName: shortname.Label(rec)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sheet":   sheet,
		"count":   len(views),
		"courses": views,
	})
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	rec, err := s.schedules.Course(r.Context(), chi.URLParam(r, "sheet"), chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courseView{CourseRecord: *rec, ShortName: shortname.Label(*rec)})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.schedules.Courses(r.Context(), chi.URLParam(r, "sheet"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(summary.HTML(records))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(summary.Digest(records)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.schedules.Report(r.Context(), chi.URLParam(r, "sheet"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// statusFor maps AppError codes to HTTP status codes
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeSheetNotFound, errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeSchemaInvalid:
		return http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("code", errors.GetCode(err)).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
