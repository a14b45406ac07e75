package repository

import (
	"strings"

	"github.com/arborline/production-board/internal/domain"
)

// ProductionRepository owns the collection of production items for a session.
// State is memory-resident only. Every mutation installs a fresh collection
// snapshot and every read hands out deep copies, so callers never alias
// store state.
type ProductionRepository struct {
	items []domain.ProductionItem
}

// NewProductionRepository creates an empty in-memory store
func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{items: []domain.ProductionItem{}}
}

// Add appends the item to a new collection snapshot
func (r *ProductionRepository) Add(item domain.ProductionItem) {
	next := make([]domain.ProductionItem, 0, len(r.items)+1)
	next = append(next, r.items...)
	next = append(next, item.Clone())
	r.items = next
}

// GetByID returns a deep copy of the item with the given id
func (r *ProductionRepository) GetByID(id string) (domain.ProductionItem, bool) {
	for _, item := range r.items {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return domain.ProductionItem{}, false
}

// List returns deep copies of all items in insertion order
func (r *ProductionRepository) List() []domain.ProductionItem {
	out := make([]domain.ProductionItem, len(r.items))
	for i, item := range r.items {
		out[i] = item.Clone()
	}
	return out
}

// Search filters items by case-insensitive substring match against the
// product code or any SKU name. An empty query matches everything.
func (r *ProductionRepository) Search(query string) []domain.ProductionItem {
	q := strings.ToLower(query)
	out := make([]domain.ProductionItem, 0, len(r.items))
	for _, item := range r.items {
		if matchesQuery(item, q) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func matchesQuery(item domain.ProductionItem, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.ProductCode), q) {
		return true
	}
	for _, sku := range item.SKUs {
		if strings.Contains(strings.ToLower(sku.Name), q) {
			return true
		}
	}
	return false
}

// Replace swaps the stored item with the same id for the given one, in a
// new collection snapshot. Returns false when the id is unknown.
func (r *ProductionRepository) Replace(item domain.ProductionItem) bool {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			next := make([]domain.ProductionItem, len(r.items))
			copy(next, r.items)
			next[i] = item.Clone()
			r.items = next
			return true
		}
	}
	return false
}

// Count returns the number of stored items
func (r *ProductionRepository) Count() int {
	return len(r.items)
}
