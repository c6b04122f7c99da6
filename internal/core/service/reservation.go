package service

import (
	"context"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// ReservationService calls the /reservations routes.
type ReservationService struct {
	api connection.Doer
}

// NewReservationService creates a ReservationService.
func NewReservationService(api connection.Doer) *ReservationService {
	return &ReservationService{api: api}
}

// Create books a table. Anyone may call it.
func (s *ReservationService) Create(ctx context.Context, in domain.ReservationInput) (domain.Reservation, error) {
	return connection.Post[domain.Reservation](ctx, s.api, "/reservations", in)
}

// List returns all reservations. Staff only.
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return connection.Get[[]domain.Reservation](ctx, s.api, "/reservations")
}

// UpdateStatus sets the status of reservation id.
func (s *ReservationService) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (domain.Reservation, error) {
	body := struct {
		Status domain.ReservationStatus `json:"status"`
	}{status}
	return connection.Patch[domain.Reservation](ctx, s.api, itemPath("/reservations", id)+"/status", body)
}

// Delete removes reservation id.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	return connection.Delete(ctx, s.api, itemPath("/reservations", id))
}
