// Package server exposes the task manager and suggestion gateway over a
// JSON HTTP API for web and programmatic clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/cors"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// Server routes HTTP requests to the task manager and the suggestion
// gateway. Construct it with NewServer and mount Handler().
type Server struct {
	tasks    core.TaskManager
	gateway  core.SuggestionGateway
	enricher *core.Enricher
	logger   *log.Logger
	origins  []string
}

// NewServer wires a Server. Allowed origins default to "*" when empty.
func NewServer(tasks core.TaskManager, gateway core.SuggestionGateway, enricher *core.Enricher, origins []string, logger *log.Logger) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		tasks:    tasks,
		gateway:  gateway,
		enricher: enricher,
		logger:   logger,
		origins:  origins,
	}
}

// Handler returns the full route table wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("POST /api/suggest", s.handleSuggest)
	mux.HandleFunc("POST /api/prioritize", s.handlePrioritize)
	mux.HandleFunc("POST /api/deadline", s.handleDeadline)
	mux.HandleFunc("POST /api/steps", s.handleSteps)
	mux.HandleFunc("GET /api/insights", s.handleInsights)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(mux)
}

// ListenAndServe runs the API server on addr until the context is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("api server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filter, order, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tasks := s.tasks.List(filter, order)
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

type createTaskRequest struct {
	Title    string     `json:"title"`
	Priority string     `json:"priority,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	// Enrich controls whether AI suggestions are fetched in the
	// background after the insert. Defaults to true.
	Enrich *bool `json:"enrich,omitempty"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	opts := core.AddOpts{Deadline: req.Deadline}
	if req.Priority != "" {
		opts.Priority = models.NormalizePriority(req.Priority)
	}
	task, err := s.tasks.Add(req.Title, opts)
	if err != nil {
		if errors.Is(err, models.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, "title must not be empty")
			return
		}
		s.logger.Error("creating task", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	if req.Enrich == nil || *req.Enrich {
		// The response carries the task before enrichment; suggestions
		// land as patches and show up on the next fetch.
		go s.enricher.Enrich(context.Background(), task)
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Title         *string    `json:"title"`
		Category      *string    `json:"category"`
		Priority      *string    `json:"priority"`
		Deadline      *time.Time `json:"deadline"`
		ClearDeadline bool       `json:"clear_deadline"`
		Suggestion    *string    `json:"ai_suggestion"`
		Steps         []string   `json:"ai_steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := models.TaskPatch{
		Title:         body.Title,
		Deadline:      body.Deadline,
		ClearDeadline: body.ClearDeadline,
		Suggestion:    body.Suggestion,
		Steps:         body.Steps,
	}
	if body.Category != nil {
		c := models.NormalizeCategory(*body.Category)
		patch.Category = &c
	}
	if body.Priority != nil {
		p := models.NormalizePriority(*body.Priority)
		patch.Priority = &p
	}

	found, err := s.tasks.Update(id, patch)
	if err != nil {
		s.logger.Error("updating task", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	task, _ := s.tasks.Get(id)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found, err := s.tasks.Delete(id)
	if err != nil {
		s.logger.Error("deleting task", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found, err := s.tasks.ToggleComplete(id)
	if err != nil {
		s.logger.Error("toggling task", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle task")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	task, _ := s.tasks.Get(id)
	writeJSON(w, http.StatusOK, task)
}

type titleRequest struct {
	Title string `json:"title"`
}

func decodeTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req titleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with a non-empty title")
		return "", false
	}
	return req.Title, true
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"suggestion": s.gateway.Advise(r.Context(), title),
	})
}

func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Priority{
		"priority": s.gateway.SuggestPriority(r.Context(), title),
	})
}

func (s *Server) handleDeadline(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]time.Time{
		"deadline": s.gateway.SuggestDeadline(r.Context(), title),
	})
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"steps": s.gateway.SuggestSteps(r.Context(), title),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	tasks := s.tasks.List(core.TaskFilter{}, core.SortCreated)
	writeJSON(w, http.StatusOK, map[string]string{
		"insights": s.gateway.AdviseTasks(r.Context(), tasks),
	})
}

// parseListQuery maps query parameters onto a filter and sort order.
// Unknown category, priority, or sort values are rejected rather than
// silently clamped so clients notice typos.
func parseListQuery(r *http.Request) (core.TaskFilter, core.SortOrder, error) {
	var filter core.TaskFilter
	q := r.URL.Query()

	if v := q.Get("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, "", errors.New("completed must be true or false")
		}
		filter.Completed = &b
	}
	if v := q.Get("category"); v != "" {
		c := models.NormalizeCategory(v)
		if !strings.EqualFold(string(c), v) {
			return filter, "", errors.New("unknown category: " + v)
		}
		filter.Category = c
	}
	if v := q.Get("priority"); v != "" {
		p := models.NormalizePriority(v)
		if !strings.EqualFold(string(p), v) {
			return filter, "", errors.New("unknown priority: " + v)
		}
		filter.Priority = p
	}
	if v := q.Get("due"); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return filter, "", errors.New("due must be formatted YYYY-MM-DD")
		}
		filter.DueOn = &day
	}

	order := core.SortOrder(q.Get("sort"))
	switch order {
	case "":
		order = core.SortCreated
	case core.SortCreated, core.SortDeadline, core.SortPriority:
	default:
		return filter, "", errors.New("unknown sort: " + string(order))
	}
	return filter, order, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
