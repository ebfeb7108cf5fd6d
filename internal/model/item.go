package model

import "time"

// Quantity units an item can be sold in.
const (
	UnitKg  = "kg"
	UnitPcs = "pcs"
)

// Variant is a priced, independently available size option of an item.
type Variant struct {
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// Item represents a catalogue product with its priced variants.
//
// BaseQuantity is advisory stock on hand; it is never decremented by orders.
type Item struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description,omitempty" db:"description"`
	Category     string    `json:"category,omitempty" db:"category"`
	BaseQuantity float64   `json:"baseQuantity" db:"base_quantity"`
	QuantityUnit string    `json:"quantityUnit" db:"quantity_unit"`
	Variants     []Variant `json:"variants" db:"variants"`
	PhotoURL     string    `json:"photoUrl,omitempty" db:"photo_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FindVariant returns the variant with the given size, or nil if the item
// has no such variant.
func (i *Item) FindVariant(size string) *Variant {
	for idx := range i.Variants {
		if i.Variants[idx].Size == size {
			return &i.Variants[idx]
		}
	}
	return nil
}

// ItemInput carries the writable fields of an item for create and update.
type ItemInput struct {
	Name         string
	Description  string
	Category     string
	BaseQuantity float64
	QuantityUnit string
	Variants     []Variant
}
