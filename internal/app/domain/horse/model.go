// Package horse contains the horse domain model.
package horse

import (
	"fmt"
	"time"
)

// Gender enumerates the recognized horse genders.
type Gender string

const (
	GenderMare     Gender = "mare"
	GenderStallion Gender = "stallion"
	GenderGelding  Gender = "gelding"
)

// Horse represents a horse registered with an organization. Name uniqueness
// is a remote-backend concern and is not enforced at this layer.
type Horse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Breed        string    `json:"breed"`
	Age          int       `json:"age"`
	AgeDisplay   string    `json:"age_display"`
	Color        string    `json:"color"`
	Gender       Gender    `json:"gender"`
	HealthStatus string    `json:"health_status"`
	OwnerName    string    `json:"owner_name"`
	IsActive     bool      `json:"is_active"`
	IsForSale    bool      `json:"is_for_sale"`
	IsRetired    bool      `json:"is_retired"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FormatAge renders the human-readable age string stored alongside the
// numeric age.
func FormatAge(age int) string {
	if age == 1 {
		return "1 year old"
	}
	return fmt.Sprintf("%d years old", age)
}

// ListOptions are the recognized query parameters for the horses collection.
type ListOptions struct {
	ActiveOnly bool
	Search     string
	SortBy     string
	SortOrder  string
	Limit      int
}

// CreateRequest carries the caller-supplied fields for a new horse. Missing
// optional fields fall back to defaults.
type CreateRequest struct {
	Name         string `json:"name"`
	Breed        string `json:"breed,omitempty"`
	Age          int    `json:"age,omitempty"`
	Color        string `json:"color,omitempty"`
	Gender       Gender `json:"gender,omitempty"`
	HealthStatus string `json:"health_status,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
	IsForSale    bool   `json:"is_for_sale,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Breed        *string `json:"breed,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Color        *string `json:"color,omitempty"`
	Gender       *Gender `json:"gender,omitempty"`
	HealthStatus *string `json:"health_status,omitempty"`
	OwnerName    *string `json:"owner_name,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsForSale    *bool   `json:"is_for_sale,omitempty"`
	IsRetired    *bool   `json:"is_retired,omitempty"`
}

// Apply merges the update into h.
func (r UpdateRequest) Apply(h *Horse) {
	if r.Name != nil {
		h.Name = *r.Name
	}
	if r.Breed != nil {
		h.Breed = *r.Breed
	}
	if r.Age != nil {
		h.Age = *r.Age
		h.AgeDisplay = FormatAge(*r.Age)
	}
	if r.Color != nil {
		h.Color = *r.Color
	}
	if r.Gender != nil {
		h.Gender = *r.Gender
	}
	if r.HealthStatus != nil {
		h.HealthStatus = *r.HealthStatus
	}
	if r.OwnerName != nil {
		h.OwnerName = *r.OwnerName
	}
	if r.IsActive != nil {
		h.IsActive = *r.IsActive
	}
	if r.IsForSale != nil {
		h.IsForSale = *r.IsForSale
	}
	if r.IsRetired != nil {
		h.IsRetired = *r.IsRetired
	}
}
