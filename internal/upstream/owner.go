package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// RestaurantInput carries the owner-editable profile fields. Slug is set on
// creation and ignored by updates.
type RestaurantInput struct {
	Slug            string   `json:"slug,omitempty"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	Type            string   `json:"type"`
	Whatsapp        string   `json:"whatsapp"`
	Phone           string   `json:"phone,omitempty"`
	Address         string   `json:"address,omitempty"`
	Location        GeoPoint `json:"location"`
	Hours           Hours    `json:"hours"`
	DeliveryEnabled bool     `json:"deliveryEnabled"`
	PickupEnabled   bool     `json:"pickupEnabled"`
}

// SectionInput carries the editable fields of a menu section
type SectionInput struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ItemInput carries the editable fields of a menu item
type ItemInput struct {
	SectionID   string       `json:"sectionId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Currency    string       `json:"currency"`
	IsAvailable bool         `json:"isAvailable"`
	Options     []ItemOption `json:"options,omitempty"`
}

// OfferInput carries the editable fields of an offer; StartAt/EndAt are
// RFC 3339 timestamps
type OfferInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

// --- Restaurant ---

// CreateRestaurant creates the owner's restaurant
func (c *Client) CreateRestaurant(ctx context.Context, token string, input RestaurantInput) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/owner/restaurants", token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// UpdateRestaurant updates profile fields of the restaurant
func (c *Client) UpdateRestaurant(ctx context.Context, token, id string, input RestaurantInput) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/owner/restaurants/"+url.PathEscape(id), token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// OwnerRestaurant fetches the owner's restaurant by ID
func (c *Client) OwnerRestaurant(ctx context.Context, token, id string) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.get(ctx, "/api/owner/restaurants/"+url.PathEscape(id), token, nil, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// --- Media ---

// UploadLogo replaces the restaurant logo
func (c *Client) UploadLogo(ctx context.Context, token, restaurantID, filename string, file io.Reader) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	parts := []FilePart{{Field: "file", Filename: filename, Reader: file}}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/logo"
	if err := c.upload(ctx, path, token, parts, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// UploadCovers appends one or more cover images
func (c *Client) UploadCovers(ctx context.Context, token, restaurantID string, files []FilePart) (*Restaurant, error) {
	var wrapper struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	for i := range files {
		files[i].Field = "files"
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/covers"
	if err := c.upload(ctx, path, token, files, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Restaurant, nil
}

// DeleteLogo removes the restaurant logo
func (c *Client) DeleteLogo(ctx context.Context, token, restaurantID string) error {
	return c.send(ctx, http.MethodDelete, "/api/owner/restaurants/"+url.PathEscape(restaurantID)+"/logo", token, nil, nil)
}

// DeleteCover removes one cover image, identified by its URL
func (c *Client) DeleteCover(ctx context.Context, token, restaurantID, coverURL string) error {
	body := map[string]string{"url": coverURL}
	return c.send(ctx, http.MethodDelete, "/api/owner/restaurants/"+url.PathEscape(restaurantID)+"/covers", token, body, nil)
}

// --- Sections ---

// CreateSection adds a menu section to the restaurant
func (c *Client) CreateSection(ctx context.Context, token, restaurantID string, input SectionInput) (*MenuSection, error) {
	var wrapper struct {
		Section MenuSection `json:"section"`
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/sections"
	if err := c.send(ctx, http.MethodPost, path, token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Section, nil
}

// UpdateSection updates a menu section
func (c *Client) UpdateSection(ctx context.Context, token, sectionID string, input SectionInput) (*MenuSection, error) {
	var wrapper struct {
		Section MenuSection `json:"section"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/owner/sections/"+url.PathEscape(sectionID), token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Section, nil
}

// ToggleSection flips a section's active flag
func (c *Client) ToggleSection(ctx context.Context, token, sectionID string) (*MenuSection, error) {
	var wrapper struct {
		Section MenuSection `json:"section"`
	}
	if err := c.send(ctx, http.MethodPatch, "/api/owner/sections/"+url.PathEscape(sectionID)+"/toggle", token, nil, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Section, nil
}

// DeleteSection soft-deletes a section
func (c *Client) DeleteSection(ctx context.Context, token, sectionID string) error {
	return c.send(ctx, http.MethodDelete, "/api/owner/sections/"+url.PathEscape(sectionID), token, nil, nil)
}

// --- Items ---

// CreateItem adds a menu item
func (c *Client) CreateItem(ctx context.Context, token, restaurantID string, input ItemInput) (*MenuItem, error) {
	var wrapper struct {
		Item MenuItem `json:"item"`
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/items"
	if err := c.send(ctx, http.MethodPost, path, token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Item, nil
}

// UpdateItem updates a menu item
func (c *Client) UpdateItem(ctx context.Context, token, itemID string, input ItemInput) (*MenuItem, error) {
	var wrapper struct {
		Item MenuItem `json:"item"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/owner/items/"+url.PathEscape(itemID), token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Item, nil
}

// SetItemAvailability flips an item's availability flag
func (c *Client) SetItemAvailability(ctx context.Context, token, itemID string, isAvailable bool) (*MenuItem, error) {
	var wrapper struct {
		Item MenuItem `json:"item"`
	}
	body := map[string]bool{"isAvailable": isAvailable}
	if err := c.send(ctx, http.MethodPatch, "/api/owner/items/"+url.PathEscape(itemID)+"/availability", token, body, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Item, nil
}

// DeleteItem soft-deletes a menu item
func (c *Client) DeleteItem(ctx context.Context, token, itemID string) error {
	return c.send(ctx, http.MethodDelete, "/api/owner/items/"+url.PathEscape(itemID), token, nil, nil)
}

// UploadItemImage replaces the dish photo of a menu item
func (c *Client) UploadItemImage(ctx context.Context, token, itemID, filename string, file io.Reader) (*MenuItem, error) {
	var wrapper struct {
		Item MenuItem `json:"item"`
	}
	parts := []FilePart{{Field: "file", Filename: filename, Reader: file}}
	if err := c.upload(ctx, "/api/owner/items/"+url.PathEscape(itemID)+"/image", token, parts, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Item, nil
}

// --- Offers ---

// CreateOffer adds a promotional offer
func (c *Client) CreateOffer(ctx context.Context, token, restaurantID string, input OfferInput) (*Offer, error) {
	var wrapper struct {
		Offer Offer `json:"offer"`
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/offers"
	if err := c.send(ctx, http.MethodPost, path, token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Offer, nil
}

// UpdateOffer updates a promotional offer
func (c *Client) UpdateOffer(ctx context.Context, token, offerID string, input OfferInput) (*Offer, error) {
	var wrapper struct {
		Offer Offer `json:"offer"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/owner/offers/"+url.PathEscape(offerID), token, input, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Offer, nil
}

// DeleteOffer removes a promotional offer
func (c *Client) DeleteOffer(ctx context.Context, token, offerID string) error {
	return c.send(ctx, http.MethodDelete, "/api/owner/offers/"+url.PathEscape(offerID), token, nil, nil)
}

// ListOffers fetches the restaurant's offers. Active-window filtering is
// computed upstream, never here.
func (c *Client) ListOffers(ctx context.Context, token, restaurantID string, activeOnly bool) ([]Offer, error) {
	query := url.Values{}
	if activeOnly {
		query.Set("active", "true")
	}
	var offers []Offer
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/offers"
	if err := c.get(ctx, path, token, query, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// UploadOfferImage replaces the offer banner image
func (c *Client) UploadOfferImage(ctx context.Context, token, offerID, filename string, file io.Reader) (*Offer, error) {
	var wrapper struct {
		Offer Offer `json:"offer"`
	}
	parts := []FilePart{{Field: "file", Filename: filename, Reader: file}}
	if err := c.upload(ctx, "/api/owner/offers/"+url.PathEscape(offerID)+"/image", token, parts, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Offer, nil
}

// --- Tables ---

// BulkCreateTables creates tables numbered from..to inclusive
func (c *Client) BulkCreateTables(ctx context.Context, token, restaurantID string, from, to int) ([]Table, error) {
	body := map[string]int{"from": from, "to": to}
	var wrapper struct {
		Tables []Table `json:"tables"`
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/tables/bulk"
	if err := c.send(ctx, http.MethodPost, path, token, body, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Tables, nil
}

// ListTables fetches all tables of the restaurant
func (c *Client) ListTables(ctx context.Context, token, restaurantID string) ([]Table, error) {
	var wrapper struct {
		Tables []Table `json:"tables"`
	}
	path := "/api/owner/restaurants/" + url.PathEscape(restaurantID) + "/tables"
	if err := c.get(ctx, path, token, nil, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Tables, nil
}

// FetchQR fetches the QR image for the general menu link, or for one table
// when table > 0. Returns the raw image bytes and content type.
func (c *Client) FetchQR(ctx context.Context, token, restaurantID string, table int) ([]byte, string, error) {
	query := url.Values{}
	if table > 0 {
		query.Set("table", strconv.Itoa(table))
	}
	return c.fetchBinary(ctx, "/api/owner/restaurants/"+url.PathEscape(restaurantID)+"/qr", token, query)
}
