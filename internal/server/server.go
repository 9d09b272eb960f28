// Package server exposes the record store as a JSON REST API.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stockscan/internal/store"
)

// Server wires the record store to the HTTP surface.
type Server struct {
	store store.Store
	log   *zap.Logger
}

// New creates a Server over the given store.
func New(st store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: st, log: log}
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/api/inventory", s.listItems).Methods("GET")
	r.HandleFunc("/api/inventory", s.createItem).Methods("POST")
	r.HandleFunc("/api/inventory/{id}", s.deleteItem).Methods("DELETE")

	r.HandleFunc("/api/packaging-units", s.listUnits).Methods("GET")
	r.HandleFunc("/api/packaging-units", s.createUnit).Methods("POST")
	r.HandleFunc("/api/packaging-units/{id}", s.deleteUnit).Methods("DELETE")

	return r
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}
