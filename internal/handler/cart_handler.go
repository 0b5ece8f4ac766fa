package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baha1115/restau-suria-frontend/internal/cart"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// CartHandler mutates the per-visitor cart for one restaurant menu
type CartHandler struct {
	carts *cart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type quantityRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Delta  int    `json:"delta" binding:"required"`
}

type optionRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Option string `json:"option" binding:"required"`
}

type submitRequest struct {
	Notes       string `json:"notes"`
	TableNumber *int   `json:"tableNumber"`
}

type cartLineView struct {
	ItemID  string   `json:"itemId"`
	Name    string   `json:"name"`
	Qty     int      `json:"qty"`
	Options []string `json:"options"`
}

type cartStateView struct {
	Items []cartLineView `json:"items"`
	Count int            `json:"count"`
}

func cartView(st *cart.State) cartStateView {
	view := cartStateView{Items: make([]cartLineView, 0, len(st.Cart.Order)), Count: st.Cart.Count()}
	for _, id := range st.Cart.Order {
		entry, ok := st.Cart.Entries[id]
		if !ok {
			continue
		}
		options := entry.Options
		if options == nil {
			options = []string{}
		}
		view.Items = append(view.Items, cartLineView{
			ItemID:  entry.ID,
			Name:    entry.Name,
			Qty:     entry.Qty,
			Options: options,
		})
	}
	return view
}

// View serves the current cart
// GET /api/v1/public/restaurants/:slug/cart
func (h *CartHandler) View(c *gin.Context) {
	st, err := h.carts.View(c.Request.Context(), VisitorFrom(c), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to load cart"))
		return
	}
	c.JSON(http.StatusOK, response.Success(cartView(st)))
}

// ChangeQuantity applies a quantity delta to one menu item
// POST /api/v1/public/restaurants/:slug/cart/items
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	st, err := h.carts.ChangeQuantity(c.Request.Context(), VisitorFrom(c), c.Param("slug"), req.ItemID, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrUnknownItem):
			c.JSON(http.StatusNotFound, response.NotFound("Item not found in menu"))
		case errors.Is(err, cart.ErrItemUnavailable):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeItemUnavailable, "Item is currently unavailable"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to update cart"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(cartView(st)))
}

// ToggleOption flips an option on a cart entry
// POST /api/v1/public/restaurants/:slug/cart/options
func (h *CartHandler) ToggleOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	st, err := h.carts.ToggleOption(c.Request.Context(), VisitorFrom(c), c.Param("slug"), req.ItemID, req.Option)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrUnknownItem):
			c.JSON(http.StatusNotFound, response.NotFound("Item not found in menu"))
		case errors.Is(err, cart.ErrUnknownOption):
			c.JSON(http.StatusBadRequest, response.BadRequest("Option not found for item"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to update cart"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(cartView(st)))
}

// Clear discards the cart
// DELETE /api/v1/public/restaurants/:slug/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), VisitorFrom(c), c.Param("slug")); err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to clear cart"))
		return
	}
	c.JSON(http.StatusOK, response.Success(cartView(cart.NewState())))
}

// Submit turns the cart into an outbound messaging link
// POST /api/v1/public/restaurants/:slug/cart/submit
func (h *CartHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	link, err := h.carts.Submit(c.Request.Context(), VisitorFrom(c), c.Param("slug"), req.Notes, req.TableNumber)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			c.JSON(http.StatusUnprocessableEntity, response.EmptyCart())
			return
		}
		respondUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(link))
}
