package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"distportal/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockOrderService)
		orders := []model.Order{
			{ID: uuid.New(), UserID: "user-1", TotalAmount: 25.50, Status: model.OrderStatusPending, CreatedAt: time.Now()},
			{ID: uuid.New(), UserID: "user-1", TotalAmount: 5.50, Status: model.OrderStatusPending, CreatedAt: time.Now()},
		}
		mockService.On("ListByUser", mock.Anything, "user-1").Return(orders, nil)

		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		rec := serveAs("user-1", h.List, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []model.Order
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 2)
		mockService.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		h := NewOrderHandler(new(MockOrderService), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		rec := serveAs("", h.List, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("ListByUser", mock.Anything, "user-1").Return(nil, errors.New("database down"))

		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		rec := serveAs("user-1", h.List, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		h := NewOrderHandler(new(MockOrderService), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		rec := serveAs("user-1", h.List, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	order := &model.OrderResponse{
		ID:          orderID,
		UserID:      "user-1",
		TotalAmount: 25.50,
		Status:      model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: "P001", Quantity: 2, UnitPrice: 10.00},
		},
	}

	t.Run("success", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("GetByID", mock.Anything, orderID).Return(order, nil)

		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
		rec := serveAs("user-1", h.GetByID, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got model.OrderResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, orderID, got.ID)
		assert.Len(t, got.Items, 1)
	})

	t.Run("invalid order ID", func(t *testing.T) {
		h := NewOrderHandler(new(MockOrderService), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
		rec := serveAs("user-1", h.GetByID, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("GetByID", mock.Anything, orderID).Return(nil, nil)

		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
		rec := serveAs("user-1", h.GetByID, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("another user's order reported absent", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("GetByID", mock.Anything, orderID).Return(order, nil)

		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
		rec := serveAs("user-2", h.GetByID, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
