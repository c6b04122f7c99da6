package service

import (
	"context"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// MenuService calls the /menu routes.
type MenuService struct {
	api connection.Doer
}

// NewMenuService creates a MenuService.
func NewMenuService(api connection.Doer) *MenuService {
	return &MenuService{api: api}
}

// List returns the public menu.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return connection.Get[[]domain.MenuItem](ctx, s.api, "/menu")
}

// ListManaged returns every item, including unavailable ones. Staff only.
func (s *MenuService) ListManaged(ctx context.Context) ([]domain.MenuItem, error) {
	return connection.Get[[]domain.MenuItem](ctx, s.api, "/menu/manage")
}

// Create adds a menu item.
func (s *MenuService) Create(ctx context.Context, in domain.MenuItemInput) (domain.MenuItem, error) {
	return connection.Post[domain.MenuItem](ctx, s.api, "/menu", in)
}

// Update applies patch to item id. Only set fields are sent.
func (s *MenuService) Update(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error) {
	return connection.Patch[domain.MenuItem](ctx, s.api, itemPath("/menu", id), patch)
}

// ToggleAvailability flips item's availability and returns the server's copy.
func (s *MenuService) ToggleAvailability(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	available := !item.IsAvailable
	return s.Update(ctx, item.ID, domain.MenuItemPatch{IsAvailable: &available})
}

// Delete removes item id.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	return connection.Delete(ctx, s.api, itemPath("/menu", id))
}
