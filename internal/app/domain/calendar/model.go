// Package calendar contains the scheduling domain model.
package calendar

import "time"

// EventType enumerates the kinds of barn calendar events.
type EventType string

const (
	TypeVeterinary     EventType = "veterinary"
	TypeTraining       EventType = "training"
	TypeFarrier        EventType = "farrier"
	TypeDental         EventType = "dental"
	TypeSupplyDelivery EventType = "supply_delivery"
	TypeCompetition    EventType = "competition"
	TypeOther          EventType = "other"
)

// Event is a scheduled barn event, optionally tied to a horse. HorseName is
// denormalized for display and resolved from the horse collection at read
// time.
type Event struct {
	ID              int64     `json:"id"`
	UUID            string    `json:"uuid"`
	Type            EventType `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	HorseID         string    `json:"horse_id,omitempty"`
	HorseName       string    `json:"horse_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateRequest carries the caller-supplied fields for a new event.
type CreateRequest struct {
	Type            EventType `json:"type,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	HorseID         string    `json:"horse_id,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Type            *EventType `json:"type,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	HorseID         *string    `json:"horse_id,omitempty"`
}

// Apply merges the update into e.
func (r UpdateRequest) Apply(e *Event) {
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.StartsAt != nil {
		e.StartsAt = *r.StartsAt
	}
	if r.DurationMinutes != nil {
		e.DurationMinutes = *r.DurationMinutes
	}
	if r.HorseID != nil {
		e.HorseID = *r.HorseID
	}
}
