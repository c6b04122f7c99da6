package domain

import (
	"fmt"
	"time"
)

// ReservationStatus is the lifecycle state of a booking.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus validates s as a reservation status.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch st := ReservationStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// Booking form limits.
const (
	MinGuests     = 1
	MaxGuests     = 12
	DefaultGuests = 2
)

// TimeSlots are the seating times offered by the reservation form.
var TimeSlots = []string{
	"05:30 PM", "06:00 PM", "06:30 PM", "07:00 PM",
	"07:30 PM", "08:00 PM", "08:30 PM", "09:00 PM",
}

// IsTimeSlot reports whether s is one of TimeSlots.
func IsTimeSlot(s string) bool {
	for _, slot := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// Reservation is a table booking as stored by the server.
type Reservation struct {
	ID        string            `json:"_id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Guests    int               `json:"guests"`
	Message   string            `json:"message,omitempty" table:"wide"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt" table:"wide"`
	UpdatedAt time.Time         `json:"updatedAt" table:"wide"`
}

// ReservationInput is the public booking form payload.
type ReservationInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,timeslot"`
	Guests  int    `json:"guests" validate:"min=1,max=12"`
	Message string `json:"message,omitempty"`
}
