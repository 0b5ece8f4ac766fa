package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baha1115/restau-suria-frontend/pkg/config"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Public     *PublicHandler
	Cart       *CartHandler
	Owner      *OwnerHandler
	Admin      *AdminHandler
}

// NewRouter builds the gin engine with all console routes mounted
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.Middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Success(gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		}))
	})

	v1 := r.Group("/api/v1")
	v1.Use(h.Middleware.Sessions())

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	public := v1.Group("/public")
	public.Use(h.Middleware.Visitor())
	{
		public.GET("/home", h.Public.Home)
		public.GET("/restaurants", h.Public.ListRestaurants)
		public.GET("/search", h.Public.Search)
		public.GET("/offers", h.Public.Offers)
		public.GET("/restaurants/:slug", h.Public.GetRestaurant)
		public.GET("/restaurants/:slug/menu", h.Public.Menu)

		public.GET("/restaurants/:slug/cart", h.Cart.View)
		public.POST("/restaurants/:slug/cart/items", h.Cart.ChangeQuantity)
		public.POST("/restaurants/:slug/cart/options", h.Cart.ToggleOption)
		public.DELETE("/restaurants/:slug/cart", h.Cart.Clear)
		public.POST("/restaurants/:slug/cart/submit", h.Cart.Submit)
	}

	owner := v1.Group("/owner")
	owner.Use(h.Middleware.RequireManager())
	{
		owner.GET("/restaurant", h.Owner.GetRestaurant)
		owner.POST("/restaurant", h.Owner.CreateRestaurant)
		owner.PUT("/restaurant", h.Owner.UpdateRestaurant)

		owner.POST("/restaurant/logo", h.Owner.UploadLogo)
		owner.DELETE("/restaurant/logo", h.Owner.DeleteLogo)
		owner.POST("/restaurant/covers", h.Owner.UploadCovers)
		owner.DELETE("/restaurant/covers", h.Owner.DeleteCover)

		owner.POST("/sections", h.Owner.CreateSection)
		owner.PUT("/sections/:id", h.Owner.UpdateSection)
		owner.PATCH("/sections/:id/toggle", h.Owner.ToggleSection)
		owner.DELETE("/sections/:id", h.Owner.DeleteSection)

		owner.POST("/items", h.Owner.CreateItem)
		owner.PUT("/items/:id", h.Owner.UpdateItem)
		owner.PATCH("/items/:id/availability", h.Owner.SetItemAvailability)
		owner.DELETE("/items/:id", h.Owner.DeleteItem)
		owner.POST("/items/:id/image", h.Owner.UploadItemImage)

		owner.GET("/offers", h.Owner.ListOffers)
		owner.POST("/offers", h.Owner.CreateOffer)
		owner.PUT("/offers/:id", h.Owner.UpdateOffer)
		owner.DELETE("/offers/:id", h.Owner.DeleteOffer)
		owner.POST("/offers/:id/image", h.Owner.UploadOfferImage)

		owner.GET("/tables", h.Owner.ListTables)
		owner.POST("/tables/bulk", h.Owner.BulkCreateTables)
		owner.GET("/tables/qr", h.Owner.QRCode)
	}

	admin := v1.Group("/admin")
	admin.Use(h.Middleware.RequireAdmin())
	{
		admin.GET("/restaurants", h.Admin.ListRestaurants)
		admin.PATCH("/restaurants/:id/active", h.Admin.SetRestaurantActive)
		admin.PATCH("/restaurants/:id/featured", h.Admin.SetRestaurantFeatured)

		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateOwner)
		admin.PATCH("/users/:id/active", h.Admin.SetUserActive)
	}

	return r
}
