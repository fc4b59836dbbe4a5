// Package selection holds the working set of products a customer is composing into
// a mix or order, the totals derived from it, and its per-session storage.
package selection

import (
	"encoding/json"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/quantity"
)

// PlaceholderName is displayed for a product whose name is unknown.
const PlaceholderName = "Producto"

// Product is the read-only view of a catalog product the selection needs.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Stock        float64 `json:"stock"`
}

// Item is one selected product and its weight in pounds.
type Item struct {
	Product  Product `json:"product"`
	Quantity float64 `json:"quantity"`
}

// Set is an insertion-ordered collection holding at most one item per product id.
// Every quantity it holds is at least quantity.Minimum. The zero value is an empty set.
type Set struct {
	items []Item
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) indexOf(productID string) int {
	productID = strings.TrimSpace(productID)
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Toggle removes the product when present and inserts it with the default weight
// otherwise. It reports whether the product was inserted.
func (s *Set) Toggle(product Product) bool {
	product.ID = strings.TrimSpace(product.ID)
	if idx := s.indexOf(product.ID); idx >= 0 {
		s.removeAt(idx)
		return false
	}
	s.items = append(s.items, Item{Product: product, Quantity: quantity.Default})
	return true
}

// SetQuantity clamps raw onto the item for productID. Absent ids are a no-op.
func (s *Set) SetQuantity(productID string, raw any) bool {
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items[idx].Quantity = quantity.Clamp(raw)
	return true
}

// Remove drops the item for productID if present.
func (s *Set) Remove(productID string) bool {
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *Set) removeAt(idx int) {
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}

// Clear empties the set. Callers confirm destructive intent before calling it.
func (s *Set) Clear() {
	s.items = nil
}

// RemoveSubmitted drops each item of submitted whose product and quantity still match
// the set. Lines added or re-weighed since the snapshot was taken stay selected.
func (s *Set) RemoveSubmitted(submitted []Item) int {
	removed := 0
	for _, item := range submitted {
		idx := s.indexOf(item.Product.ID)
		if idx < 0 || s.items[idx].Quantity != item.Quantity {
			continue
		}
		s.removeAt(idx)
		removed++
	}
	return removed
}

func (s *Set) IsSelected(productID string) bool {
	return s.indexOf(productID) >= 0
}

// Items returns a copy of the items in insertion order.
func (s *Set) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) IsEmpty() bool {
	return len(s.items) == 0
}

// add inserts item, summing quantities into an existing item for the same product.
func (s *Set) add(item Item) {
	item.Quantity = quantity.Clamp(item.Quantity)
	if idx := s.indexOf(item.Product.ID); idx >= 0 {
		s.items[idx].Quantity = quantity.Clamp(s.items[idx].Quantity + item.Quantity)
		return
	}
	s.items = append(s.items, item)
}

// FromItems builds a set from items in order. Items sharing a product id are merged
// by summing their quantities.
func FromItems(items []Item) *Set {
	set := NewSet()
	for _, item := range items {
		item.Product.ID = strings.TrimSpace(item.Product.ID)
		set.add(item)
	}
	return set
}

func (s *Set) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON restores a stored set, re-applying the quantity and uniqueness rules.
func (s *Set) UnmarshalJSON(data []byte) error {
	var stored []struct {
		Product  Product `json:"product"`
		Quantity any     `json:"quantity"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	restored := NewSet()
	for _, entry := range stored {
		entry.Product.ID = strings.TrimSpace(entry.Product.ID)
		restored.add(Item{Product: entry.Product, Quantity: quantity.Clamp(entry.Quantity)})
	}
	s.items = restored.items
	return nil
}
