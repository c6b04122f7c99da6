package domain

import (
	"errors"
	"strings"
	"testing"
)

func validReservation() ReservationInput {
	return ReservationInput{
		Name:   "Jo",
		Email:  "jo@x.com",
		Phone:  "123",
		Date:   "2025-01-01",
		Time:   "07:00 PM",
		Guests: DefaultGuests,
	}
}

func TestValidate_Reservation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ReservationInput)
		wantErr string
	}{
		{name: "valid", mutate: func(*ReservationInput) {}},
		{name: "missing name", mutate: func(r *ReservationInput) { r.Name = "" }, wantErr: "name is required"},
		{name: "bad email", mutate: func(r *ReservationInput) { r.Email = "nope" }, wantErr: "email must be a valid email address"},
		{name: "bad date", mutate: func(r *ReservationInput) { r.Date = "01/01/2025" }, wantErr: "date must be a date"},
		{name: "off-menu slot", mutate: func(r *ReservationInput) { r.Time = "10:00 PM" }, wantErr: "time must be one of"},
		{name: "too few guests", mutate: func(r *ReservationInput) { r.Guests = 0 }, wantErr: "guests must be at least 1"},
		{name: "too many guests", mutate: func(r *ReservationInput) { r.Guests = 13 }, wantErr: "guests must be at most 12"},
		{name: "message optional", mutate: func(r *ReservationInput) { r.Message = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validReservation()
			tt.mutate(&in)
			err := Validate(in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error should be ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_Contact(t *testing.T) {
	ok := ContactPayload{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Hello"}
	if err := Validate(ok); err != nil {
		t.Fatalf("phone should be optional: %v", err)
	}

	bad := ok
	bad.Subject = ""
	bad.Message = ""
	err := Validate(bad)
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !strings.Contains(err.Error(), "subject is required") || !strings.Contains(err.Error(), "message is required") {
		t.Errorf("error should list every field: %v", err)
	}
}

func TestValidate_MenuItem(t *testing.T) {
	in := NewMenuItemInput()
	in.Title = "Soup"
	in.Description = "Hot"
	in.ImageURL = "https://img/soup.png"
	if err := Validate(in); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	in.Price = -1
	if err := Validate(in); err == nil || !strings.Contains(err.Error(), "price must be at least 0") {
		t.Errorf("negative price should fail, got %v", err)
	}

	in.Price = 4
	in.Category = "Soups"
	if err := Validate(in); err == nil || !strings.Contains(err.Error(), "category must be one of") {
		t.Errorf("unknown category should fail, got %v", err)
	}
}

func TestValidate_MenuItemPatch(t *testing.T) {
	price := -2.0
	if err := Validate(MenuItemPatch{Price: &price}); err == nil {
		t.Error("negative patch price should fail")
	}
	if err := Validate(MenuItemPatch{}); err != nil {
		t.Errorf("empty patch should pass: %v", err)
	}
}

func TestNewMenuItemInput_Defaults(t *testing.T) {
	in := NewMenuItemInput()
	if !in.IsAvailable || in.IsFeatured {
		t.Errorf("defaults = available %v featured %v, want true false", in.IsAvailable, in.IsFeatured)
	}
	if in.Category != CategoryAppetizers {
		t.Errorf("Category = %q, want %q", in.Category, CategoryAppetizers)
	}
}

func TestParseMenuCategory(t *testing.T) {
	c, ok := ParseMenuCategory("main courses")
	if !ok || c != CategoryMainCourses {
		t.Errorf("ParseMenuCategory() = %q, %v", c, ok)
	}
	if _, ok := ParseMenuCategory("brunch"); ok {
		t.Error("unknown category should not parse")
	}
}

func TestFilterAndGroup(t *testing.T) {
	items := []MenuItem{
		{ID: "1", Category: CategoryDrinks},
		{ID: "2", Category: CategoryDesserts},
		{ID: "3", Category: CategoryDrinks},
	}

	if got := FilterByCategory(items, ""); len(got) != 3 {
		t.Errorf("empty filter returned %d items", len(got))
	}
	drinks := FilterByCategory(items, CategoryDrinks)
	if len(drinks) != 2 || drinks[0].ID != "1" || drinks[1].ID != "3" {
		t.Errorf("FilterByCategory() = %+v", drinks)
	}

	groups := GroupByCategory(items)
	if len(groups) != 2 || len(groups[CategoryDrinks]) != 2 {
		t.Errorf("GroupByCategory() = %+v", groups)
	}
	if _, ok := groups[CategoryAppetizers]; ok {
		t.Error("empty categories should be omitted")
	}
}

func TestParseReservationStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		if _, err := ParseReservationStatus(s); err != nil {
			t.Errorf("ParseReservationStatus(%q) error = %v", s, err)
		}
	}
	if _, err := ParseReservationStatus("done"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status should be ErrValidation, got %v", err)
	}
}

func TestUser_Valid(t *testing.T) {
	if (User{}).Valid() {
		t.Error("zero User should not be valid")
	}
	if !(User{ID: "1"}).Valid() {
		t.Error("User with an ID should be valid")
	}
}
