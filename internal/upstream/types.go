package upstream

// User is the account profile returned by the auth endpoints.
// RestaurantID is empty for admins and for owners without a linked restaurant.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"` // "admin" or "owner"
	RestaurantID string `json:"restaurantId,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// Roles accepted by the console
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// GeoPoint is a map coordinate chosen in the restaurant form
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DayHours describes one weekday entry of the weekly operating hours
type DayHours struct {
	Day      int    `json:"day"` // 0 = Sunday
	IsClosed bool   `json:"isClosed"`
	Open     string `json:"open"`  // "09:00"
	Close    string `json:"close"` // "23:00"
}

// Hours is the weekly operating-hours block
type Hours struct {
	Timezone string     `json:"timezone"`
	Weekly   []DayHours `json:"weekly"`
}

// Restaurant mirrors the upstream restaurant record. Slug is immutable after
// creation; active/featured flags are admin-owned.
type Restaurant struct {
	ID              string   `json:"_id"`
	Slug            string   `json:"slug"`
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
	LogoURL         string   `json:"logoUrl,omitempty"`
	Covers          []string `json:"covers,omitempty"`
	IsActive        bool     `json:"isActive"`
	IsFeatured      bool     `json:"isFeatured"`
}

// ItemOption is an add-on a visitor can select for a menu item
type ItemOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItem mirrors the upstream menu item record
type MenuItem struct {
	ID          string       `json:"_id"`
	SectionID   string       `json:"sectionId"`
	SectionName string       `json:"sectionName,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Currency    string       `json:"currency"`
	IsAvailable bool         `json:"isAvailable"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Options     []ItemOption `json:"options,omitempty"`
}

// MenuSection groups items within a restaurant menu
type MenuSection struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	SortOrder int        `json:"sortOrder"`
	IsActive  bool       `json:"isActive"`
	Items     []MenuItem `json:"items,omitempty"`
}

// Menu is the public menu payload for one restaurant
type Menu struct {
	Restaurant Restaurant    `json:"restaurant"`
	Sections   []MenuSection `json:"sections"`
}

// Offer is a time-windowed promotion; validity is computed upstream
type Offer struct {
	ID           string `json:"_id"`
	RestaurantID string `json:"restaurantId"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	StartAt      string `json:"startAt"`
	EndAt        string `json:"endAt"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Table is one physical table with an optional label
type Table struct {
	ID           string `json:"_id"`
	RestaurantID string `json:"restaurantId"`
	Number       int    `json:"number"`
	Label        string `json:"label,omitempty"`
}

// HomePayload is the public home aggregation
type HomePayload struct {
	Cities              []string     `json:"cities"`
	Types               []string     `json:"types"`
	FeaturedRestaurants []Restaurant `json:"featuredRestaurants"`
	TodayOffers         []Offer      `json:"todayOffers"`
}

// RestaurantPage is one page of a filtered restaurant listing
type RestaurantPage struct {
	Items      []Restaurant `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Total      int64        `json:"total"`
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Items      []User `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Total      int64  `json:"total"`
}

// SearchResult holds full-text matches across restaurants and menu items
type SearchResult struct {
	Restaurants []Restaurant `json:"restaurants"`
	MenuItems   []MenuItem   `json:"menuItems"`
}

// OrderItem is one serialized cart line sent to the link generator
type OrderItem struct {
	Name    string   `json:"name"`
	Qty     int      `json:"qty"`
	Options []string `json:"options"`
}

// OrderRequest is the payload for the messaging-link generator
type OrderRequest struct {
	Slug        string      `json:"slug"`
	TableNumber *int        `json:"tableNumber,omitempty"`
	Items       []OrderItem `json:"items"`
	Notes       string      `json:"notes,omitempty"`
}

// OrderLink is the opaque outbound link returned by the upstream
type OrderLink struct {
	WhatsappURL string `json:"whatsappUrl"`
}

// AuthResult is the login/register payload: a bearer token plus the profile
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Profile is the /auth/me payload
type Profile struct {
	User User `json:"user"`
}
