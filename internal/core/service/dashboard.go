package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/spot-go/internal/core/domain"
)

// Gate reports whether staff routes may be called.
type Gate interface {
	IsAuthenticated() bool
}

// Dashboard is the staff overview.
type Dashboard struct {
	Menu         []domain.MenuItem
	Reservations []domain.Reservation
	Messages     []domain.ContactMessage
}

// LoadDashboard fetches the managed menu, reservations and messages in
// parallel. It loads nothing unless gate is authenticated. The first
// failure cancels the other calls and is returned as is; there is no
// partial result.
func (s *Services) LoadDashboard(ctx context.Context, gate Gate) (*Dashboard, error) {
	if gate == nil || !gate.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Menu, err = s.Menu.ListManaged(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Reservations, err = s.Reservations.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Messages, err = s.Contact.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
