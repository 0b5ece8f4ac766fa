package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AdminListFilter narrows the admin restaurant/user listings
type AdminListFilter struct {
	Q     string
	City  string
	Page  int
	Limit int
}

func (f AdminListFilter) query() url.Values {
	q := url.Values{}
	if f.Q != "" {
		q.Set("q", f.Q)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// AdminListRestaurants fetches one page of the platform-wide restaurant list
func (c *Client) AdminListRestaurants(ctx context.Context, token string, filter AdminListFilter) (*RestaurantPage, error) {
	var page RestaurantPage
	if err := c.get(ctx, "/api/admin/restaurants", token, filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ActivateRestaurant sets a restaurant's active flag
func (c *Client) ActivateRestaurant(ctx context.Context, token, id string, isActive bool) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	body := map[string]bool{"isActive": isActive}
	if err := c.send(ctx, http.MethodPatch, "/api/admin/restaurants/"+url.PathEscape(id)+"/activate", token, body, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// FeatureRestaurant sets a restaurant's featured flag
func (c *Client) FeatureRestaurant(ctx context.Context, token, id string, isFeatured bool) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	body := map[string]bool{"isFeatured": isFeatured}
	if err := c.send(ctx, http.MethodPatch, "/api/admin/restaurants/"+url.PathEscape(id)+"/feature", token, body, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// AdminListUsers fetches one page of the platform-wide user list
func (c *Client) AdminListUsers(ctx context.Context, token string, filter AdminListFilter) (*UserPage, error) {
	var page UserPage
	if err := c.get(ctx, "/api/admin/users", token, filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateOwner creates an owner account, optionally linked to a restaurant
func (c *Client) CreateOwner(ctx context.Context, token, name, email, password, restaurantID string) (*User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if restaurantID != "" {
		body["restaurantId"] = restaurantID
	}
	var wrapper struct {
		User User `json:"user"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/admin/owners", token, body, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}

// ActivateUser sets a user's active flag
func (c *Client) ActivateUser(ctx context.Context, token, id string, isActive bool) (*User, error) {
	var wrapper struct {
		User User `json:"user"`
	}
	body := map[string]bool{"isActive": isActive}
	if err := c.send(ctx, http.MethodPatch, "/api/admin/users/"+url.PathEscape(id)+"/activate", token, body, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.User, nil
}
