package service

import (
	"net/url"

	"github.com/yndnr/spot-go/internal/cli/connection"
)

// Services bundles every API service over one transport.
type Services struct {
	Auth         *AuthService
	Menu         *MenuService
	Reservations *ReservationService
	Contact      *ContactService
}

// New creates all services over api.
func New(api connection.Doer) *Services {
	return &Services{
		Auth:         NewAuthService(api),
		Menu:         NewMenuService(api),
		Reservations: NewReservationService(api),
		Contact:      NewContactService(api),
	}
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
