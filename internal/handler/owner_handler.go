package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// OwnerHandler handles the restaurant management console. Every route runs
// behind the manager guard; the working restaurant comes from the session,
// except for admins who may address any restaurant explicitly.
type OwnerHandler struct {
	api *upstream.Client
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(api *upstream.Client) *OwnerHandler {
	return &OwnerHandler{api: api}
}

// restaurantID resolves the restaurant the request operates on. It writes
// the error response itself when no restaurant can be resolved.
func (h *OwnerHandler) restaurantID(c *gin.Context) (string, bool) {
	sess, _ := SessionFrom(c)

	if id := c.Query("restaurantId"); id != "" && sess.IsAdmin() {
		return id, true
	}
	if sess.User.RestaurantID == "" {
		c.JSON(http.StatusNotFound, response.NotFound("No restaurant linked to this account"))
		return "", false
	}
	return sess.User.RestaurantID, true
}

func token(c *gin.Context) string {
	sess, _ := SessionFrom(c)
	return sess.Token
}

// --- Restaurant profile ---

type restaurantRequest struct {
	Slug            string            `json:"slug"`
	Name            string            `json:"name" binding:"required"`
	City            string            `json:"city" binding:"required"`
	Type            string            `json:"type" binding:"required"`
	Whatsapp        string            `json:"whatsapp" binding:"required"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	Location        upstream.GeoPoint `json:"location"`
	Hours           upstream.Hours    `json:"hours"`
	DeliveryEnabled bool              `json:"deliveryEnabled"`
	PickupEnabled   bool              `json:"pickupEnabled"`
}

func (r restaurantRequest) input() upstream.RestaurantInput {
	return upstream.RestaurantInput{
		Slug:            r.Slug,
		Name:            r.Name,
		City:            r.City,
		Type:            r.Type,
		Whatsapp:        r.Whatsapp,
		Phone:           r.Phone,
		Address:         r.Address,
		Location:        r.Location,
		Hours:           r.Hours,
		DeliveryEnabled: r.DeliveryEnabled,
		PickupEnabled:   r.PickupEnabled,
	}
}

// GetRestaurant serves the owner's restaurant record
// GET /api/v1/owner/restaurant
func (h *OwnerHandler) GetRestaurant(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	restaurant, err := h.api.OwnerRestaurant(c.Request.Context(), token(c), id)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// CreateRestaurant creates the restaurant for an owner who has none yet.
// The linked restaurant appears on the session at the next refresh.
// POST /api/v1/owner/restaurant
func (h *OwnerHandler) CreateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	restaurant, err := h.api.CreateRestaurant(c.Request.Context(), token(c), req.input())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(restaurant))
}

// UpdateRestaurant updates the profile fields. The slug is immutable and
// ignored if sent.
// PUT /api/v1/owner/restaurant
func (h *OwnerHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	input := req.input()
	input.Slug = ""

	restaurant, err := h.api.UpdateRestaurant(c.Request.Context(), token(c), id, input)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// --- Media ---

// UploadLogo replaces the restaurant logo
// POST /api/v1/owner/restaurant/logo
func (h *OwnerHandler) UploadLogo(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("A file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Failed to read file"))
		return
	}
	defer file.Close()

	restaurant, err := h.api.UploadLogo(c.Request.Context(), token(c), id, header.Filename, file)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// DeleteLogo removes the restaurant logo
// DELETE /api/v1/owner/restaurant/logo
func (h *OwnerHandler) DeleteLogo(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	if err := h.api.DeleteLogo(c.Request.Context(), token(c), id); err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// UploadCovers appends cover images to the restaurant gallery
// POST /api/v1/owner/restaurant/covers
func (h *OwnerHandler) UploadCovers(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Multipart form is required"))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, response.BadRequest("At least one file is required"))
		return
	}

	parts := make([]upstream.FilePart, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.BadRequest("Failed to read file"))
			return
		}
		opened = append(opened, file)
		parts = append(parts, upstream.FilePart{Field: "files", Filename: header.Filename, Reader: file})
	}

	restaurant, err := h.api.UploadCovers(c.Request.Context(), token(c), id, parts)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

type deleteCoverRequest struct {
	URL string `json:"url" binding:"required"`
}

// DeleteCover removes one cover image by its URL
// DELETE /api/v1/owner/restaurant/covers
func (h *OwnerHandler) DeleteCover(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req deleteCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if err := h.api.DeleteCover(c.Request.Context(), token(c), id, req.URL); err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// --- Menu sections ---

type sectionRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
}

// CreateSection adds a menu section
// POST /api/v1/owner/sections
func (h *OwnerHandler) CreateSection(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	section, err := h.api.CreateSection(c.Request.Context(), token(c), id, upstream.SectionInput(req))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(section))
}

// UpdateSection renames or reorders a menu section
// PUT /api/v1/owner/sections/:id
func (h *OwnerHandler) UpdateSection(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	section, err := h.api.UpdateSection(c.Request.Context(), token(c), c.Param("id"), upstream.SectionInput(req))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(section))
}

// ToggleSection flips a section's visibility on the public menu
// PATCH /api/v1/owner/sections/:id/toggle
func (h *OwnerHandler) ToggleSection(c *gin.Context) {
	section, err := h.api.ToggleSection(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(section))
}

// DeleteSection removes a section and its items
// DELETE /api/v1/owner/sections/:id
func (h *OwnerHandler) DeleteSection(c *gin.Context) {
	if err := h.api.DeleteSection(c.Request.Context(), token(c), c.Param("id")); err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// --- Menu items ---

type itemRequest struct {
	SectionID   string                `json:"sectionId" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Price       float64               `json:"price" binding:"required"`
	Currency    string                `json:"currency" binding:"required"`
	IsAvailable *bool                 `json:"isAvailable"`
	Options     []upstream.ItemOption `json:"options"`
}

func (r itemRequest) input() upstream.ItemInput {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return upstream.ItemInput{
		SectionID:   r.SectionID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		IsAvailable: available,
		Options:     r.Options,
	}
}

// CreateItem adds a menu item
// POST /api/v1/owner/items
func (h *OwnerHandler) CreateItem(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	item, err := h.api.CreateItem(c.Request.Context(), token(c), id, req.input())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(item))
}

// UpdateItem edits a menu item
// PUT /api/v1/owner/items/:id
func (h *OwnerHandler) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	item, err := h.api.UpdateItem(c.Request.Context(), token(c), c.Param("id"), req.input())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(item))
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// SetItemAvailability marks an item sold out or back in stock
// PATCH /api/v1/owner/items/:id/availability
func (h *OwnerHandler) SetItemAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	item, err := h.api.SetItemAvailability(c.Request.Context(), token(c), c.Param("id"), *req.IsAvailable)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(item))
}

// DeleteItem removes a menu item
// DELETE /api/v1/owner/items/:id
func (h *OwnerHandler) DeleteItem(c *gin.Context) {
	if err := h.api.DeleteItem(c.Request.Context(), token(c), c.Param("id")); err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// UploadItemImage replaces a menu item photo
// POST /api/v1/owner/items/:id/image
func (h *OwnerHandler) UploadItemImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("A file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Failed to read file"))
		return
	}
	defer file.Close()

	item, err := h.api.UploadItemImage(c.Request.Context(), token(c), c.Param("id"), header.Filename, file)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(item))
}

// --- Offers ---

type offerRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartAt     string `json:"startAt" binding:"required"`
	EndAt       string `json:"endAt" binding:"required"`
}

// ListOffers serves the restaurant's offers, optionally only active ones
// GET /api/v1/owner/offers
func (h *OwnerHandler) ListOffers(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	offers, err := h.api.ListOffers(c.Request.Context(), token(c), id, c.Query("active") == "true")
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offers))
}

// CreateOffer adds a time-windowed promotion
// POST /api/v1/owner/offers
func (h *OwnerHandler) CreateOffer(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	offer, err := h.api.CreateOffer(c.Request.Context(), token(c), id, upstream.OfferInput(req))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(offer))
}

// UpdateOffer edits a promotion
// PUT /api/v1/owner/offers/:id
func (h *OwnerHandler) UpdateOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	offer, err := h.api.UpdateOffer(c.Request.Context(), token(c), c.Param("id"), upstream.OfferInput(req))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offer))
}

// DeleteOffer removes a promotion
// DELETE /api/v1/owner/offers/:id
func (h *OwnerHandler) DeleteOffer(c *gin.Context) {
	if err := h.api.DeleteOffer(c.Request.Context(), token(c), c.Param("id")); err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// UploadOfferImage replaces a promotion banner
// POST /api/v1/owner/offers/:id/image
func (h *OwnerHandler) UploadOfferImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("A file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Failed to read file"))
		return
	}
	defer file.Close()

	offer, err := h.api.UploadOfferImage(c.Request.Context(), token(c), c.Param("id"), header.Filename, file)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offer))
}

// --- Tables and QR codes ---

type bulkTablesRequest struct {
	From int `json:"from" binding:"required,min=1"`
	To   int `json:"to" binding:"required,min=1"`
}

// BulkCreateTables creates a numbered range of tables in one call
// POST /api/v1/owner/tables/bulk
func (h *OwnerHandler) BulkCreateTables(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	var req bulkTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if req.To < req.From {
		c.JSON(http.StatusBadRequest, response.BadRequest("Range end must not precede range start"))
		return
	}

	tables, err := h.api.BulkCreateTables(c.Request.Context(), token(c), id, req.From, req.To)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(tables))
}

// ListTables serves the restaurant's tables
// GET /api/v1/owner/tables
func (h *OwnerHandler) ListTables(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	tables, err := h.api.ListTables(c.Request.Context(), token(c), id)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(tables))
}

// QRCode streams the menu QR image, either for the whole restaurant or for
// one table when ?table=N is given
// GET /api/v1/owner/tables/qr
func (h *OwnerHandler) QRCode(c *gin.Context) {
	id, ok := h.restaurantID(c)
	if !ok {
		return
	}

	table := 0
	if raw := c.Query("table"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, response.BadRequest("Table must be a positive number"))
			return
		}
		table = n
	}

	img, contentType, err := h.api.FetchQR(c.Request.Context(), token(c), id, table)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, img)
}
