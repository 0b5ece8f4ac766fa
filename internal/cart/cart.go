// Package cart implements the visitor's order composition: a per-visitor,
// per-restaurant accumulation of items, quantities, and selected options,
// serialized in one shot into the upstream messaging-link request.
package cart

import "errors"

// ErrItemUnavailable rejects an increment of an item the menu currently
// marks unavailable. Decrements are always allowed so a visitor is never
// stuck with an entry they cannot remove.
var ErrItemUnavailable = errors.New("item is not available")

// ItemSnapshot is what the cart needs to know about a menu item, captured
// from the most recently served menu
type ItemSnapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	IsAvailable bool     `json:"isAvailable"`
	Options     []string `json:"options,omitempty"`
}

// Entry is one cart line. Qty is always >= 1; an entry that would reach
// zero is removed instead of stored.
type Entry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Qty     int      `json:"qty"`
	Options []string `json:"options"`
}

// Line is one serialized order row
type Line struct {
	Name    string   `json:"name"`
	Qty     int      `json:"qty"`
	Options []string `json:"options"`
}

// Cart maps item IDs to entries, remembering insertion order so the
// serialized order list is deterministic
type Cart struct {
	Entries map[string]*Entry `json:"entries"`
	Order   []string          `json:"order"`
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		Entries: make(map[string]*Entry),
		Order:   nil,
	}
}

// ChangeQuantity applies a delta to the item's quantity, clamped at zero.
// Reaching zero removes the entry. Incrementing an unavailable item is
// rejected; decrementing one is permitted.
func (c *Cart) ChangeQuantity(item ItemSnapshot, delta int) error {
	if delta > 0 && !item.IsAvailable {
		return ErrItemUnavailable
	}

	entry, ok := c.Entries[item.ID]
	current := 0
	if ok {
		current = entry.Qty
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	if next == 0 {
		if ok {
			c.remove(item.ID)
		}
		return nil
	}

	if !ok {
		c.Entries[item.ID] = &Entry{
			ID:      item.ID,
			Name:    item.Name,
			Qty:     next,
			Options: []string{},
		}
		c.Order = append(c.Order, item.ID)
		return nil
	}

	entry.Qty = next
	return nil
}

// ToggleOption flips membership of an option in the item's selected set.
// It is a no-op when the item is not in the cart, so options cannot be
// attached to a zero-quantity item. Toggling twice restores the prior set.
func (c *Cart) ToggleOption(itemID, option string) {
	entry, ok := c.Entries[itemID]
	if !ok {
		return
	}

	for i, existing := range entry.Options {
		if existing == option {
			entry.Options = append(entry.Options[:i], entry.Options[i+1:]...)
			return
		}
	}
	entry.Options = append(entry.Options, option)
}

// Lines serializes the cart into ordered rows of {name, qty, options}
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.Order))
	for _, id := range c.Order {
		entry, ok := c.Entries[id]
		if !ok {
			continue
		}
		options := entry.Options
		if options == nil {
			options = []string{}
		}
		lines = append(lines, Line{
			Name:    entry.Name,
			Qty:     entry.Qty,
			Options: options,
		})
	}
	return lines
}

// Count returns the total quantity across all entries
func (c *Cart) Count() int {
	total := 0
	for _, entry := range c.Entries {
		total += entry.Qty
	}
	return total
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

func (c *Cart) remove(itemID string) {
	delete(c.Entries, itemID)
	for i, id := range c.Order {
		if id == itemID {
			c.Order = append(c.Order[:i], c.Order[i+1:]...)
			return
		}
	}
}
