package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"distportal/internal/cart"
	"distportal/internal/model"
	"distportal/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. Each authenticated user has
// one session cart, resolved through the cart manager.
type CartHandler struct {
	carts    *cart.Manager
	products service.ProductService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Manager, products service.ProductService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest is the payload for changing a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart requests, returning the cart lines and total.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.carts.Cart(userID).Snapshot())
}

// Clear handles DELETE /api/cart requests, abandoning the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	h.carts.Cart(userID).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/cart/items requests. The product is looked up in
// the catalogue so the cart line captures the current price snapshot; a
// quantity of zero defaults to one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}

	c := h.carts.Cart(userID)
	if err := c.AddItem(*product, req.Quantity); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "invalid quantity", h.logger)
		case errors.Is(err, model.ErrOutOfStock):
			writeError(w, http.StatusConflict, "product is out of stock", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to add item", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, c.Snapshot())
}

// UpdateItem handles PUT /api/cart/items/{productId} requests. Quantities
// below one leave the line unchanged; removal goes through RemoveItem.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	productID := itemProductID(r.URL.Path)
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	c := h.carts.Cart(userID)
	c.UpdateQuantity(productID, req.Quantity)
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// RemoveItem handles DELETE /api/cart/items/{productId} requests. Removing an
// absent product succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	productID := itemProductID(r.URL.Path)
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	c := h.carts.Cart(userID)
	c.RemoveItem(productID)
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// Checkout handles POST /api/cart/checkout requests, converting the cart into
// a persisted order.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.carts.Cart(userID).Checkout(r.Context(), userID)
	if err != nil {
		var subErr *model.OrderSubmissionError
		switch {
		case errors.Is(err, model.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty", h.logger)
		case errors.Is(err, model.ErrCheckoutInProgress):
			writeError(w, http.StatusConflict, "checkout already in progress", h.logger)
		case errors.As(err, &subErr):
			writeError(w, http.StatusBadGateway, "order submission failed", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to checkout", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// itemProductID extracts the product ID from /api/cart/items/{productId}.
func itemProductID(path string) string {
	const prefix = "/api/cart/items/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimSuffix(path[len(prefix):], "/")
}
