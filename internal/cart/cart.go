package cart

import (
	"context"
	"sync"

	"distportal/internal/model"

	"github.com/rs/zerolog"
)

// Submitter persists an order request built from a cart snapshot. It is
// satisfied by service.OrderService; the cart never retries a failed call.
type Submitter interface {
	SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// Cart is the in-session collection of selected products for one prospective
// order. Lines are ordered by insertion and keyed by product ID: adding a
// product that is already in the cart increments its quantity rather than
// creating a second line. The cart is not persisted; it lives for the session
// and is cleared on a successful checkout.
//
// Quantity policy: AddItem rejects quantities below one instead of clamping,
// and rejects products whose stock is exactly zero (quantities above the
// remaining stock are not capped). UpdateQuantity with a quantity below one
// is a no-op; a line is only ever removed via RemoveItem.
type Cart struct {
	mu        sync.Mutex
	lines     []model.CartLine
	submitter Submitter
	logger    zerolog.Logger

	// checkingOut guards against a second checkout starting while the
	// order submission call for this cart is still in flight.
	checkingOut bool
}

// New creates an empty cart that submits orders through the given submitter.
func New(submitter Submitter, logger zerolog.Logger) *Cart {
	return &Cart{
		submitter: submitter,
		logger:    logger.With().Str("component", "cart").Logger(),
	}
}

// AddItem adds the product to the cart with the requested quantity,
// snapshotting the unit price from the product. If a line for the product
// already exists its quantity is incremented and the original price snapshot
// is kept.
func (c *Cart) AddItem(product model.Product, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}
	if !product.InStock() {
		c.logger.Debug().Str("product_id", product.ID).Msg("add rejected: product out of stock")
		return model.ErrOutOfStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, model.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	return nil
}

// RemoveItem deletes the line for the given product if present. Removing an
// absent product is not an error.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line for the given product.
// Quantities below one are ignored; lines are only removed via RemoveItem.
// Updating an absent product is a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]model.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len returns the number of distinct product lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total returns the sum of unit price times quantity over all lines. It is
// recomputed on every call, never cached.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Cart) totalLocked() float64 {
	var total float64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}

// Clear abandons the cart, removing all lines. A checkout that is already in
// flight is unaffected.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Snapshot returns the API view of the cart: its lines and derived total.
func (c *Cart) Snapshot() model.CartResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]model.CartLine, len(c.lines))
	copy(lines, c.lines)
	return model.CartResponse{Items: lines, Total: c.totalLocked()}
}

// Checkout builds an order request from the current cart state and submits it
// through the order service. On success the cart is cleared and the created
// order is returned. On failure the cart is left exactly as it was, so the
// user can retry without re-entering items; the cause is wrapped in a
// *model.OrderSubmissionError. A second checkout attempted while one is still
// in flight fails fast with model.ErrCheckoutInProgress.
func (c *Cart) Checkout(ctx context.Context, userID string) (*model.OrderResponse, error) {
	c.mu.Lock()
	if len(c.lines) == 0 {
		c.mu.Unlock()
		return nil, model.ErrEmptyCart
	}
	if c.checkingOut {
		c.mu.Unlock()
		c.logger.Warn().Str("user_id", userID).Msg("checkout rejected: already in progress")
		return nil, model.ErrCheckoutInProgress
	}
	c.checkingOut = true

	req := &model.OrderRequest{
		UserID:      userID,
		TotalAmount: c.totalLocked(),
		Status:      model.OrderStatusPending,
		Items:       make([]model.OrderItemRequest, len(c.lines)),
	}
	for i, line := range c.lines {
		req.Items[i] = model.OrderItemRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}
	c.mu.Unlock()

	// The submission call is the only suspension point; the cart is not
	// cleared until it resolves.
	order, err := c.submitter.SubmitOrder(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkingOut = false

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("user_id", userID).
			Int("line_count", len(req.Items)).
			Msg("order submission failed, cart preserved")
		return nil, &model.OrderSubmissionError{Err: err}
	}

	c.lines = nil
	c.logger.Info().
		Str("user_id", userID).
		Str("order_id", order.ID.String()).
		Float64("total_amount", req.TotalAmount).
		Msg("checkout completed")

	return order, nil
}
