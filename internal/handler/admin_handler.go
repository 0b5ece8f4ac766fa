package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// AdminHandler handles the platform administration console
type AdminHandler struct {
	api *upstream.Client
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(api *upstream.Client) *AdminHandler {
	return &AdminHandler{api: api}
}

type adminListQuery struct {
	Q     string `form:"q"`
	City  string `form:"city"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

func (q *adminListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type featuredRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

type createOwnerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	RestaurantID string `json:"restaurantId"`
}

// ListRestaurants serves the cross-tenant restaurant listing
// GET /api/v1/admin/restaurants
func (h *AdminHandler) ListRestaurants(c *gin.Context) {
	var query adminListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	query.normalize()

	page, err := h.api.AdminListRestaurants(c.Request.Context(), token(c), upstream.AdminListFilter{
		Q:     query.Q,
		City:  query.City,
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(page.Items, page.Page, query.Limit, page.Total))
}

// SetRestaurantActive publishes or unpublishes a restaurant
// PATCH /api/v1/admin/restaurants/:id/active
func (h *AdminHandler) SetRestaurantActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	restaurant, err := h.api.ActivateRestaurant(c.Request.Context(), token(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// SetRestaurantFeatured pins or unpins a restaurant on the landing page
// PATCH /api/v1/admin/restaurants/:id/featured
func (h *AdminHandler) SetRestaurantFeatured(c *gin.Context) {
	var req featuredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	restaurant, err := h.api.FeatureRestaurant(c.Request.Context(), token(c), c.Param("id"), *req.IsFeatured)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(restaurant))
}

// ListUsers serves the account listing
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query adminListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	query.normalize()

	page, err := h.api.AdminListUsers(c.Request.Context(), token(c), upstream.AdminListFilter{
		Q:     query.Q,
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(page.Items, page.Page, query.Limit, page.Total))
}

// CreateOwner provisions an owner account, optionally linked to a restaurant
// POST /api/v1/admin/users
func (h *AdminHandler) CreateOwner(c *gin.Context) {
	var req createOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	user, err := h.api.CreateOwner(c.Request.Context(), token(c), req.Name, req.Email, req.Password, req.RestaurantID)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(user))
}

// SetUserActive enables or disables an account
// PATCH /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	user, err := h.api.ActivateUser(c.Request.Context(), token(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(user))
}
