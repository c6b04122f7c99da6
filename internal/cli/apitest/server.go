// Package apitest runs an in-process fake of the restaurant API for tests.
//
// The fake keeps menu items, reservations and contact messages in memory,
// checks bearer tokens on staff routes, and records every request it sees
// so tests can assert on headers exactly as they were sent.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/spot-go/internal/core/domain"
)

// Now is the fixed timestamp stamped on created records.
var Now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// Request is one recorded request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// HasBearer reports whether the request carried Authorization: Bearer tok.
func (r Request) HasBearer(tok string) bool {
	return r.Header.Get("Authorization") == "Bearer "+tok
}

type account struct {
	password string
	token    string
	user     domain.User
}

type override struct {
	status int
	body   any
}

// Server is a fake API server.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	requests     []Request
	accounts     map[string]account
	overrides    map[string]override
	menu         []domain.MenuItem
	reservations []domain.Reservation
	messages     []domain.ContactMessage
	seq          int
}

// New starts a Server and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts:  make(map[string]account),
		overrides: make(map[string]override),
	}

	r := chi.NewRouter()
	r.Use(s.record, s.override)

	r.Post("/auth/login", s.login)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/profile", s.profile)
		r.Get("/menu/manage", s.listMenu)
		r.Post("/menu", s.createMenuItem)
		r.Patch("/menu/{id}", s.updateMenuItem)
		r.Delete("/menu/{id}", s.deleteMenuItem)
		r.Get("/reservations", s.listReservations)
		r.Patch("/reservations/{id}/status", s.updateReservationStatus)
		r.Delete("/reservations/{id}", s.deleteReservation)
		r.Get("/contact", s.listMessages)
		r.Delete("/contact/{id}", s.deleteMessage)
	})
	r.Get("/menu", s.listMenu)
	r.Post("/reservations", s.createReservation)
	r.Post("/contact", s.createMessage)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddAccount registers a staff account. Logging in as email with password
// returns tok and user.
func (s *Server) AddAccount(email, password, tok string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, token: tok, user: user}
}

// AddMenuItem seeds a menu item. An empty ID is assigned one.
func (s *Server) AddMenuItem(item domain.MenuItem) domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = s.nextID("m")
	}
	s.menu = append(s.menu, item)
	return item
}

// Respond makes method+path answer status and body, bypassing the fake's
// own handling. body is encoded as JSON unless it is a string, which is
// sent raw.
func (s *Server) Respond(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, body: body}
}

// Requests returns a copy of all recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It panics if there is none.
func (s *Server) Last() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		panic("apitest: no requests recorded")
	}
	return reqs[len(reqs)-1]
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if raw, isRaw := o.body.(string); isRaw {
			w.WriteHeader(o.status)
			io.WriteString(w, raw)
			return
		}
		writeJSON(w, o.status, o.body)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.userFor(r); !ok {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) userFor(r *http.Request) (domain.User, bool) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || tok == "" {
		return domain.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.token == tok {
			return a.user, true
		}
	}
	return domain.User{}, false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
