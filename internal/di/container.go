package di

import (
	"github.com/redis/go-redis/v9"

	"github.com/baha1115/restau-suria-frontend/internal/cart"
	"github.com/baha1115/restau-suria-frontend/internal/handler"
	"github.com/baha1115/restau-suria-frontend/internal/session"
	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/config"
)

// Container holds all dependencies for the console
type Container struct {
	// Infrastructure
	Redis    *redis.Client
	Upstream *upstream.Client

	// Stores
	SessionStore session.Store
	CartStore    cart.Store

	// Services
	Sessions *session.Manager
	Carts    *cart.Service

	// Handlers
	Handlers *handler.Handlers
}

// NewContainer wires the console from configuration and a Redis connection
func NewContainer(cfg *config.Config, redisClient *redis.Client) *Container {
	c := &Container{
		Redis:    redisClient,
		Upstream: upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout),
	}

	c.SessionStore = session.NewRedisStore(redisClient, cfg.Session.TTL)
	c.CartStore = cart.NewRedisStore(redisClient, cfg.Cart.TTL)

	c.Sessions = session.NewManager(c.SessionStore, c.Upstream)
	c.Carts = cart.NewService(c.CartStore, c.Upstream)

	mw := handler.NewMiddleware(c.Sessions, cfg.Session)
	c.Handlers = &handler.Handlers{
		Middleware: mw,
		Auth:       handler.NewAuthHandler(c.Sessions, c.Upstream, cfg.Session, cfg.Features),
		Public:     handler.NewPublicHandler(c.Upstream, c.Carts, c.Sessions),
		Cart:       handler.NewCartHandler(c.Carts),
		Owner:      handler.NewOwnerHandler(c.Upstream),
		Admin:      handler.NewAdminHandler(c.Upstream),
	}

	return c
}
