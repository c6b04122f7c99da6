package service

import (
	"context"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// ContactService calls the /contact routes.
type ContactService struct {
	api connection.Doer
}

// NewContactService creates a ContactService.
func NewContactService(api connection.Doer) *ContactService {
	return &ContactService{api: api}
}

// Submit sends a contact form. Anyone may call it.
func (s *ContactService) Submit(ctx context.Context, p domain.ContactPayload) (domain.ContactMessage, error) {
	return connection.Post[domain.ContactMessage](ctx, s.api, "/contact", p)
}

// List returns all received messages. Staff only.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return connection.Get[[]domain.ContactMessage](ctx, s.api, "/contact")
}

// Delete removes message id.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return connection.Delete(ctx, s.api, itemPath("/contact", id))
}
