package usecase

import (
	"context"
	"testing"

	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerClient(t *testing.T, svc *Service, username string) *response.UserResponse {
	t.Helper()
	user, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Password: "password1",
	})
	require.NoError(t, err)
	return user
}

func addProduct(t *testing.T, svc *Service, name string, price float64, quantity int) *response.ProductResponse {
	t.Helper()
	product, err := svc.Product.AddProduct(context.Background(), &request.ProductRequest{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return product
}

func stock(t *testing.T, svc *Service, productID int64) int {
	t.Helper()
	product, err := svc.Product.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return product.Quantity
}

func TestOrderService_WidgetScenario(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()
	alice := registerClient(t, svc, "alice")
	widget := addProduct(t, svc, "Widget", 9.99, 5)

	order, err := svc.Order.PlaceOrder(ctx, alice.ID, &request.PlaceOrderRequest{ProductID: widget.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "29.97", order.TotalPrice.StringFixed(2))
	assert.Equal(t, "Widget", order.ProductName)
	assert.Equal(t, 2, stock(t, svc, widget.ID))

	mine, err := svc.Order.OrdersForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
	assert.Equal(t, "Widget", mine[0].ProductName)

	_, err = svc.Order.CancelUserOrder(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock(t, svc, widget.ID))

	mine, err = svc.Order.OrdersForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = svc.Order.CancelUserOrder(ctx, alice.ID, order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_PlaceValidation(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()
	alice := registerClient(t, svc, "alice")
	widget := addProduct(t, svc, "Widget", 1, 5)

	for _, req := range []request.PlaceOrderRequest{
		{ProductID: widget.ID, Quantity: 0},
		{ProductID: widget.ID, Quantity: -2},
		{ProductID: 0, Quantity: 1},
	} {
		_, err := svc.Order.PlaceOrder(ctx, alice.ID, &req)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}

	_, err := svc.Order.PlaceOrder(ctx, alice.ID, &request.PlaceOrderRequest{ProductID: widget.ID, Quantity: 6})
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 5, stock(t, svc, widget.ID))
}

func TestOrderService_ClientCannotCancelOthersOrder(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()
	alice := registerClient(t, svc, "alice")
	bob := registerClient(t, svc, "bob")
	widget := addProduct(t, svc, "Widget", 1, 5)

	order, err := svc.Order.PlaceOrder(ctx, alice.ID, &request.PlaceOrderRequest{ProductID: widget.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = svc.Order.CancelUserOrder(ctx, bob.ID, order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 3, stock(t, svc, widget.ID))

	// Administrators are not scoped to an owner.
	cancelled, err := svc.Order.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, cancelled.UserID)
	assert.Equal(t, 5, stock(t, svc, widget.ID))
}

func TestOrderService_AllOrders(t *testing.T) {
	svc, _ := createTestService(t)
	ctx := context.Background()
	alice := registerClient(t, svc, "alice")
	bob := registerClient(t, svc, "bob")
	widget := addProduct(t, svc, "Widget", 2.5, 10)

	for _, userID := range []int64{alice.ID, bob.ID} {
		_, err := svc.Order.PlaceOrder(ctx, userID, &request.PlaceOrderRequest{ProductID: widget.ID, Quantity: 2})
		require.NoError(t, err)
	}

	all, err := svc.Order.AllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)
	assert.Equal(t, "5", all[1].TotalPrice.String())
}
