package repository

import (
	"context"
	"testing"
	"time"

	"distportal/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createOrderSchema creates the order-related database schema for testing.
func createOrderSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			total_amount DECIMAL(10,2) NOT NULL CHECK (total_amount >= 0),
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10,2) NOT NULL CHECK (unit_price >= 0)
		);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// setupOrderTestDB creates a test database with product and order schema.
func setupOrderTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	pool, cleanup := setupTestDB(t)
	createOrderSchema(t, pool)
	seedProducts(t, pool)
	return pool, cleanup
}

func insertTestOrder(t *testing.T, repo OrderRepository, userID string, total float64, items []model.OrderItemRequest) uuid.UUID {
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	now := time.Now()
	order := &model.Order{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	require.NoError(t, repo.CreateOrderItems(ctx, tx, orderItems))
	require.NoError(t, tx.Commit(ctx))

	return order.ID
}

func TestOrderRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainer test")
	}

	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	orderID := insertTestOrder(t, repo, "user-1", 25.50, []model.OrderItemRequest{
		{ProductID: "P001", Quantity: 2, UnitPrice: 10.00},
		{ProductID: "P002", Quantity: 1, UnitPrice: 5.50},
	})

	order, items, err := repo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, 25.50, order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, orderID, item.OrderID)
	}
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainer test")
	}

	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	order, items, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Nil(t, items)
}

func TestOrderRepository_RollbackLeavesNoOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainer test")
	}

	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	now := time.Now()
	order := &model.Order{
		ID:          uuid.New(),
		UserID:      "user-1",
		TotalAmount: 10.00,
		Status:      model.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Rollback(ctx))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainer test")
	}

	pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	insertTestOrder(t, repo, "user-1", 10.00, []model.OrderItemRequest{
		{ProductID: "P001", Quantity: 1, UnitPrice: 10.00},
	})
	insertTestOrder(t, repo, "user-1", 5.50, []model.OrderItemRequest{
		{ProductID: "P002", Quantity: 1, UnitPrice: 5.50},
	})
	insertTestOrder(t, repo, "user-2", 42.90, []model.OrderItemRequest{
		{ProductID: "P003", Quantity: 1, UnitPrice: 42.90},
	})

	orders, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, "user-1", order.UserID)
	}

	// Newest first
	assert.True(t, !orders[0].CreatedAt.Before(orders[1].CreatedAt))

	none, err := repo.ListByUser(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
