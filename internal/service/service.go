package service

import (
	"context"

	"distportal/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// OrderService defines operations for order management. SubmitOrder makes it
// satisfy cart.Submitter, so carts hand their checkout snapshots directly to
// this service.
type OrderService interface {
	// SubmitOrder validates an order request and persists it atomically.
	SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ListByUser retrieves all orders placed by the given user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}
