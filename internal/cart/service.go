package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
)

var (
	// ErrEmptyCart rejects order submission before any network call
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownItem rejects operations on items absent from the menu
	// snapshot; the visitor needs a fresh menu first
	ErrUnknownItem = errors.New("item not found in menu")
	// ErrUnknownOption rejects an option name the menu does not list for
	// that item
	ErrUnknownOption = errors.New("option not found for item")
)

// MenuAPI is the slice of the upstream client the service depends on
type MenuAPI interface {
	GetMenu(ctx context.Context, slug, search string) (*upstream.Menu, error)
	OrderLink(ctx context.Context, req upstream.OrderRequest) (*upstream.OrderLink, error)
}

// Service coordinates the cart state machine with the menu snapshot and the
// upstream link generator
type Service struct {
	store Store
	api   MenuAPI
}

// NewService creates a cart service
func NewService(store Store, api MenuAPI) *Service {
	return &Service{store: store, api: api}
}

// Menu serves the restaurant menu and refreshes the visitor's item
// snapshot. Snapshot entries are merged, not replaced, so an item that a
// search filter hides — or that went unavailable — still backs the cart
// entries referencing it.
func (s *Service) Menu(ctx context.Context, visitorID, slug, search string) (*upstream.Menu, *State, error) {
	menu, err := s.api.GetMenu(ctx, slug, search)
	if err != nil {
		return nil, nil, err
	}

	st, err := s.store.Load(ctx, visitorID, slug)
	if err != nil {
		return nil, nil, err
	}

	for _, section := range menu.Sections {
		for _, item := range section.Items {
			names := make([]string, 0, len(item.Options))
			for _, opt := range item.Options {
				names = append(names, opt.Name)
			}
			st.Items[item.ID] = ItemSnapshot{
				ID:          item.ID,
				Name:        item.Name,
				IsAvailable: item.IsAvailable,
				Options:     names,
			}
		}
	}

	if err := s.store.Save(ctx, visitorID, slug, st); err != nil {
		return nil, nil, err
	}
	return menu, st, nil
}

// View returns the current cart state without contacting the upstream
func (s *Service) View(ctx context.Context, visitorID, slug string) (*State, error) {
	return s.store.Load(ctx, visitorID, slug)
}

// ChangeQuantity applies a quantity delta against the menu snapshot
func (s *Service) ChangeQuantity(ctx context.Context, visitorID, slug, itemID string, delta int) (*State, error) {
	st, err := s.store.Load(ctx, visitorID, slug)
	if err != nil {
		return nil, err
	}

	item, ok := st.Items[itemID]
	if !ok {
		return nil, ErrUnknownItem
	}

	if err := st.Cart.ChangeQuantity(item, delta); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, visitorID, slug, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ToggleOption flips an option on a cart entry. Toggling an item that is
// not in the cart changes nothing, and the unchanged state is returned.
func (s *Service) ToggleOption(ctx context.Context, visitorID, slug, itemID, option string) (*State, error) {
	st, err := s.store.Load(ctx, visitorID, slug)
	if err != nil {
		return nil, err
	}

	if _, inCart := st.Cart.Entries[itemID]; !inCart {
		return st, nil
	}

	item, ok := st.Items[itemID]
	if !ok {
		return nil, ErrUnknownItem
	}
	if !containsOption(item.Options, option) {
		return nil, ErrUnknownOption
	}

	st.Cart.ToggleOption(itemID, option)

	if err := s.store.Save(ctx, visitorID, slug, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Clear discards the cart state
func (s *Service) Clear(ctx context.Context, visitorID, slug string) error {
	return s.store.Delete(ctx, visitorID, slug)
}

// Submit serializes the cart and asks the upstream for the outbound
// messaging link. An empty cart is rejected before any network call. On
// failure the cart is preserved so the attempt can be retried; on success
// it is cleared.
func (s *Service) Submit(ctx context.Context, visitorID, slug, notes string, tableNumber *int) (*upstream.OrderLink, error) {
	st, err := s.store.Load(ctx, visitorID, slug)
	if err != nil {
		return nil, err
	}

	if st.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := st.Cart.Lines()
	items := make([]upstream.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, upstream.OrderItem{
			Name:    line.Name,
			Qty:     line.Qty,
			Options: line.Options,
		})
	}

	link, err := s.api.OrderLink(ctx, upstream.OrderRequest{
		Slug:        slug,
		TableNumber: tableNumber,
		Items:       items,
		Notes:       notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order link: %w", err)
	}

	if err := s.store.Delete(ctx, visitorID, slug); err != nil {
		return nil, err
	}
	return link, nil
}

func containsOption(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
