package domain

import (
	"strings"
	"time"
)

// MenuCategory groups menu items on the public menu page.
type MenuCategory string

const (
	CategoryAppetizers  MenuCategory = "Appetizers"
	CategoryMainCourses MenuCategory = "Main Courses"
	CategoryDesserts    MenuCategory = "Desserts"
	CategoryDrinks      MenuCategory = "Drinks"
)

// MenuCategories lists the categories in display order.
var MenuCategories = []MenuCategory{
	CategoryAppetizers,
	CategoryMainCourses,
	CategoryDesserts,
	CategoryDrinks,
}

// ParseMenuCategory matches s against the known categories, ignoring case.
func ParseMenuCategory(s string) (MenuCategory, bool) {
	for _, c := range MenuCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// IsMenuCategory reports whether s is exactly one of MenuCategories.
func IsMenuCategory(s string) bool {
	for _, c := range MenuCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// MenuItem is a dish or drink as stored by the server.
type MenuItem struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description" table:"wide"`
	Price       float64      `json:"price"`
	Category    MenuCategory `json:"category"`
	ImageURL    string       `json:"imageUrl" table:"-"`
	IsFeatured  bool         `json:"isFeatured"`
	IsAvailable bool         `json:"isAvailable"`
	CreatedAt   time.Time    `json:"createdAt" table:"wide"`
	UpdatedAt   time.Time    `json:"updatedAt" table:"wide"`
}

// MenuItemInput is the create payload for a menu item.
type MenuItemInput struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Price       float64      `json:"price" validate:"min=0"`
	Category    MenuCategory `json:"category" validate:"required,menucategory"`
	ImageURL    string       `json:"imageUrl" validate:"required"`
	IsFeatured  bool         `json:"isFeatured"`
	IsAvailable bool         `json:"isAvailable"`
}

// NewMenuItemInput returns the blank form used by the dashboard.
func NewMenuItemInput() MenuItemInput {
	return MenuItemInput{
		Category:    CategoryAppetizers,
		IsAvailable: true,
	}
}

// MenuItemPatch is a partial update. Nil fields are left out of the request.
type MenuItemPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Price       *float64      `json:"price,omitempty" validate:"omitempty,min=0"`
	Category    *MenuCategory `json:"category,omitempty" validate:"omitempty,menucategory"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	IsFeatured  *bool         `json:"isFeatured,omitempty"`
	IsAvailable *bool         `json:"isAvailable,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p MenuItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.ImageURL == nil && p.IsFeatured == nil && p.IsAvailable == nil
}

// GroupByCategory buckets items by category, preserving input order within
// each bucket. Categories without items are omitted.
func GroupByCategory(items []MenuItem) map[MenuCategory][]MenuItem {
	groups := make(map[MenuCategory][]MenuItem)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups
}

// FilterByCategory returns the items in category c. An empty c returns all items.
func FilterByCategory(items []MenuItem, c MenuCategory) []MenuItem {
	if c == "" {
		return items
	}
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}
