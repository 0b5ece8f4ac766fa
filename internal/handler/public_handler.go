package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baha1115/restau-suria-frontend/internal/cart"
	"github.com/baha1115/restau-suria-frontend/internal/session"
	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/logger"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// defaultPageSize matches the storefront listing grid
const defaultPageSize = 12

// PublicHandler serves the storefront: discovery, restaurant profiles and
// menus. No authentication is required on any of its routes.
type PublicHandler struct {
	api      *upstream.Client
	carts    *cart.Service
	sessions *session.Manager
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(api *upstream.Client, carts *cart.Service, sessions *session.Manager) *PublicHandler {
	return &PublicHandler{api: api, carts: carts, sessions: sessions}
}

type restaurantListQuery struct {
	City     string `form:"city"`
	Type     string `form:"type"`
	OpenNow  bool   `form:"openNow"`
	Delivery bool   `form:"delivery"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Home serves the aggregated landing payload
// GET /api/v1/public/home
func (h *PublicHandler) Home(c *gin.Context) {
	payload, err := h.api.Home(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(payload))
}

// ListRestaurants serves the filtered, paginated directory
// GET /api/v1/public/restaurants
func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	var query restaurantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}

	page, err := h.api.ListRestaurants(c.Request.Context(), upstream.RestaurantFilter{
		City:     query.City,
		Type:     query.Type,
		OpenNow:  query.OpenNow,
		Delivery: query.Delivery,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		respondUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(page.Items, page.Page, query.Limit, page.Total))
}

// Search serves full-text discovery across restaurants and menu items.
// A blank query short-circuits to an empty result.
// GET /api/v1/public/search
func (h *PublicHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, response.Success(upstream.SearchResult{
			Restaurants: []upstream.Restaurant{},
			MenuItems:   []upstream.MenuItem{},
		}))
		return
	}

	result, err := h.api.Search(c.Request.Context(), q)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(result))
}

// GetRestaurant serves one public restaurant profile
// GET /api/v1/public/restaurants/:slug
func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	slug := c.Param("slug")

	restaurant, err := h.api.GetRestaurant(c.Request.Context(), slug)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// Menu serves a restaurant menu and refreshes the visitor's cart snapshot
// so quantity changes validate against what was just shown. For a signed-in
// manager the slug is remembered as their working restaurant.
// GET /api/v1/public/restaurants/:slug/menu
func (h *PublicHandler) Menu(c *gin.Context) {
	slug := c.Param("slug")
	search := strings.TrimSpace(c.Query("q"))

	menu, st, err := h.carts.Menu(c.Request.Context(), VisitorFrom(c), slug, search)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	if sess, ok := SessionFrom(c); ok && sess.CanManageRestaurant() {
		if err := h.sessions.RememberSlug(c.Request.Context(), sess, slug); err != nil {
			logger.WithContext(c.Request.Context()).Warn("failed to remember slug", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"menu": menu,
		"cart": cartView(st),
	}))
}

// Offers serves currently valid promotions across all restaurants
// GET /api/v1/public/offers
func (h *PublicHandler) Offers(c *gin.Context) {
	offers, err := h.api.Offers(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offers))
}
