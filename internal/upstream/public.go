package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// RestaurantFilter narrows the public restaurant listing. Zero values are
// omitted from the query entirely, matching the upstream contract.
type RestaurantFilter struct {
	City     string
	Type     string
	OpenNow  bool
	Delivery bool
	Page     int
	Limit    int
}

func (f RestaurantFilter) query() url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.OpenNow {
		q.Set("openNow", "true")
	}
	if f.Delivery {
		q.Set("delivery", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Home fetches the public home aggregation
func (c *Client) Home(ctx context.Context) (*HomePayload, error) {
	var payload HomePayload
	if err := c.get(ctx, "/api/public/home", "", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListRestaurants fetches one page of the filtered public listing
func (c *Client) ListRestaurants(ctx context.Context, filter RestaurantFilter) (*RestaurantPage, error) {
	var page RestaurantPage
	if err := c.get(ctx, "/api/public/restaurants", "", filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search runs a full-text search across restaurants and menu items
func (c *Client) Search(ctx context.Context, q string) (*SearchResult, error) {
	query := url.Values{}
	query.Set("q", q)
	var result SearchResult
	if err := c.get(ctx, "/api/public/search", "", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRestaurant looks up a single restaurant by its public slug
func (c *Client) GetRestaurant(ctx context.Context, slug string) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.get(ctx, "/api/public/r/"+url.PathEscape(slug), "", nil, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// GetMenu fetches a restaurant menu by slug, optionally filtered by search
// text within the menu
func (c *Client) GetMenu(ctx context.Context, slug, search string) (*Menu, error) {
	query := url.Values{}
	if search != "" {
		query.Set("q", search)
	}
	var menu Menu
	if err := c.get(ctx, fmt.Sprintf("/api/public/r/%s/menu", url.PathEscape(slug)), "", query, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// Offers fetches the currently active public offers
func (c *Client) Offers(ctx context.Context) ([]Offer, error) {
	var offers []Offer
	if err := c.get(ctx, "/api/public/offers", "", nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// OrderLink sends the assembled order to the upstream, which renders it into
// an opaque outbound messaging link
func (c *Client) OrderLink(ctx context.Context, req OrderRequest) (*OrderLink, error) {
	var link OrderLink
	if err := c.send(ctx, http.MethodPost, "/api/public/whatsapp-message", "", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}
