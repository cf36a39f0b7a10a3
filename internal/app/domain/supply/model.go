// Package supply contains the barn supply inventory model.
package supply

import "time"

// Supply is a stocked inventory item. IsLowStock and IsOutOfStock are derived
// from the stock fields and recomputed on every stock change; they are never
// authoritative on their own.
type Supply struct {
	ID              int64     `json:"id"`
	UUID            string    `json:"uuid"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	UnitType        string    `json:"unit_type,omitempty"`
	PackageSize     float64   `json:"package_size,omitempty"`
	PackageUnit     string    `json:"package_unit,omitempty"`
	CurrentStock    float64   `json:"current_stock"`
	MinimumStock    float64   `json:"minimum_stock"`
	ReorderPoint    float64   `json:"reorder_point"`
	LastCostPerUnit float64   `json:"last_cost_per_unit"`
	Location        string    `json:"location,omitempty"`
	IsLowStock      bool      `json:"is_low_stock"`
	IsOutOfStock    bool      `json:"is_out_of_stock"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecomputeFlags refreshes the derived stock flags from the stock fields.
func (s *Supply) RecomputeFlags() {
	s.IsOutOfStock = s.CurrentStock == 0
	s.IsLowStock = s.CurrentStock > 0 && s.CurrentStock <= s.ReorderPoint
}

// Dashboard is the read-only projection over the supply collection. It is
// computed at request time and never stored.
type Dashboard struct {
	TotalItems          int      `json:"total_items"`
	LowStockCount       int      `json:"low_stock_count"`
	OutOfStockCount     int      `json:"out_of_stock_count"`
	TotalInventoryValue float64  `json:"total_inventory_value"`
	LowStockItems       []Supply `json:"low_stock_items"`
}

// ListOptions are the recognized query parameters for the supplies collection.
type ListOptions struct {
	ActiveOnly bool
}

// CreateRequest carries the caller-supplied fields for a new supply.
type CreateRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	Brand           string  `json:"brand,omitempty"`
	UnitType        string  `json:"unit_type,omitempty"`
	PackageSize     float64 `json:"package_size,omitempty"`
	PackageUnit     string  `json:"package_unit,omitempty"`
	CurrentStock    float64 `json:"current_stock,omitempty"`
	MinimumStock    float64 `json:"minimum_stock,omitempty"`
	ReorderPoint    float64 `json:"reorder_point,omitempty"`
	LastCostPerUnit float64 `json:"last_cost_per_unit,omitempty"`
	Location        string  `json:"location,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	UnitType        *string  `json:"unit_type,omitempty"`
	PackageSize     *float64 `json:"package_size,omitempty"`
	PackageUnit     *string  `json:"package_unit,omitempty"`
	CurrentStock    *float64 `json:"current_stock,omitempty"`
	MinimumStock    *float64 `json:"minimum_stock,omitempty"`
	ReorderPoint    *float64 `json:"reorder_point,omitempty"`
	LastCostPerUnit *float64 `json:"last_cost_per_unit,omitempty"`
	Location        *string  `json:"location,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// Apply merges the update into s. Derived flags are recomputed afterwards so
// they stay consistent with the stock fields.
func (r UpdateRequest) Apply(s *Supply) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.Brand != nil {
		s.Brand = *r.Brand
	}
	if r.UnitType != nil {
		s.UnitType = *r.UnitType
	}
	if r.PackageSize != nil {
		s.PackageSize = *r.PackageSize
	}
	if r.PackageUnit != nil {
		s.PackageUnit = *r.PackageUnit
	}
	if r.CurrentStock != nil {
		s.CurrentStock = *r.CurrentStock
	}
	if r.MinimumStock != nil {
		s.MinimumStock = *r.MinimumStock
	}
	if r.ReorderPoint != nil {
		s.ReorderPoint = *r.ReorderPoint
	}
	if r.LastCostPerUnit != nil {
		s.LastCostPerUnit = *r.LastCostPerUnit
	}
	if r.Location != nil {
		s.Location = *r.Location
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	s.RecomputeFlags()
}

// ReceiptResult is the acknowledgement returned by the receipt upload
// endpoint once the multipart payload has been accepted.
type ReceiptResult struct {
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"size_bytes"`
	Status      string `json:"status"`
	ItemsParsed int    `json:"items_parsed"`
}
