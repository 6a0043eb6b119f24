package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pbaille/ht/internal/auth"
	"github.com/pbaille/ht/internal/domain"
	"github.com/pbaille/ht/internal/stats"
	"github.com/pbaille/ht/internal/store"
)

// Server handles HTTP requests for the headache tracker API
type Server struct {
	store *store.Store
	gate  *auth.Gate
	addr  string
}

// New creates a new API server
func New(s *store.Store, gate *auth.Gate, addr string) *Server {
	return &Server{store: s, gate: gate, addr: addr}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	// Auth
	r.HandleFunc("/auth/verify", s.verifyPassword).Methods("POST")

	// Entries. The /entries/today route must be registered before the
	// id-addressed ones so "today" is not matched as an id.
	r.HandleFunc("/entries", s.listEntries).Methods("GET")
	r.HandleFunc("/entries", s.addEntry).Methods("POST")
	r.HandleFunc("/entries/today", s.todayEntry).Methods("GET")
	r.HandleFunc("/entries/{id}", s.getEntry).Methods("GET")
	r.HandleFunc("/entries/{id}", s.updateEntry).Methods("PUT")
	r.HandleFunc("/entries/{id}", s.deleteEntry).Methods("DELETE")

	// Stats
	r.HandleFunc("/stats", s.getStats).Methods("GET")

	// Health check
	r.HandleFunc("/health", s.health).Methods("GET")

	return withCORS(r)
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// VerifyRequest is the request body for password verification
type VerifyRequest struct {
	Password string `json:"password"`
}

func (s *Server) verifyPassword(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := s.gate.Verify(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	var in domain.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := domain.Validate(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entry, err := s.store.AddEntry(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.GetEntry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var in domain.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := domain.Validate(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entry, err := s.store.UpdateEntry(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEntry(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func (s *Server) todayEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.TodayEntry(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// entry is null when nothing has been logged today
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry": entry,
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats.Aggregate(entries, time.Now()))
}

// writeDomainError maps domain errors to HTTP status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrScoreOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateDay):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
