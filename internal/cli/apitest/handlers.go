package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/spot-go/internal/core/domain"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	if !ok || a.password != creds.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeData(w, http.StatusOK, domain.LoginResult{Token: a.token, User: a.user})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, _ := s.userFor(r)
	writeData(w, http.StatusOK, user)
}

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]domain.MenuItem{}, s.menu...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, items)
}

func (s *Server) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var in domain.MenuItemInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	item := domain.MenuItem{
		ID:          s.nextID("m"),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
		IsAvailable: in.IsAvailable,
		CreatedAt:   Now,
		UpdatedAt:   Now,
	}
	s.menu = append(s.menu, item)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, item)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.menu {
		if s.menu[i].ID != chi.URLParam(r, "id") {
			continue
		}
		updated, err := merge(s.menu[i], patch)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		updated.UpdatedAt = Now
		s.menu[i] = updated
		writeData(w, http.StatusOK, updated)
		return
	}
	writeMessage(w, http.StatusNotFound, "Menu item not found")
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.menu {
		if item.ID == chi.URLParam(r, "id") {
			s.menu = append(s.menu[:i], s.menu[i+1:]...)
			writeData(w, http.StatusOK, map[string]string{"_id": item.ID})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Menu item not found")
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.ReservationInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	res := domain.Reservation{
		ID:        s.nextID("r"),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Date:      in.Date,
		Time:      in.Time,
		Guests:    in.Guests,
		Message:   in.Message,
		Status:    domain.StatusPending,
		CreatedAt: Now,
		UpdatedAt: Now,
	}
	s.reservations = append(s.reservations, res)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, res)
}

func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]domain.Reservation{}, s.reservations...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}
	status, err := domain.ParseReservationStatus(body.Status)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reservations {
		if s.reservations[i].ID == chi.URLParam(r, "id") {
			s.reservations[i].Status = status
			s.reservations[i].UpdatedAt = Now
			writeData(w, http.StatusOK, s.reservations[i])
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Reservation not found")
}

func (s *Server) deleteReservation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, res := range s.reservations {
		if res.ID == chi.URLParam(r, "id") {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			writeData(w, http.StatusOK, map[string]string{"_id": res.ID})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Reservation not found")
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactPayload
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	msg := domain.ContactMessage{
		ID:        s.nextID("c"),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: Now,
		UpdatedAt: Now,
	}
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, msg)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]domain.ContactMessage{}, s.messages...)
	s.mu.Unlock()
	writeData(w, http.StatusOK, out)
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, msg := range s.messages {
		if msg.ID == chi.URLParam(r, "id") {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			writeData(w, http.StatusOK, map[string]string{"_id": msg.ID})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Message not found")
}

// merge applies a partial JSON document onto item.
func merge(item domain.MenuItem, patch map[string]json.RawMessage) (domain.MenuItem, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return item, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return item, err
	}
	for k, v := range patch {
		doc[k] = v
	}
	raw, err = json.Marshal(doc)
	if err != nil {
		return item, err
	}

	var out domain.MenuItem
	err = json.Unmarshal(raw, &out)
	return out, err
}
