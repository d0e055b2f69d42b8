package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/data/entity"
	"storefront/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_PlaceAndCancelRoundTrip(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	order, err := repo.Order.Place(ctx, alice.ID, widget.ID, 3)
	require.NoError(t, err)
	assert.Positive(t, order.ID)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "29.97", order.TotalPrice.StringFixed(2))
	assert.Equal(t, 2, stockOf(t, repo, widget.ID))

	stored, err := repo.Order.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.TotalPrice.Equal(decimal.RequireFromString("29.97")), "total %s", stored.TotalPrice)

	cancelled, err := repo.Order.Cancel(ctx, order.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, order.ID, cancelled.ID)
	assert.Equal(t, 5, stockOf(t, repo, widget.ID))

	gone, err := repo.Order.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestOrderRepository_PlaceInsufficientStockHasNoSideEffects(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	_, err := repo.Order.Place(ctx, alice.ID, widget.ID, 6)

	var stockErr *apperr.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 5, stockOf(t, repo, widget.ID))

	orders, err := repo.Order.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_PlaceExactStock(t *testing.T) {
	repo, _ := createTestRepository(t)
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "2", 4)

	_, err := repo.Order.Place(context.Background(), alice.ID, widget.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, repo, widget.ID))

	_, err = repo.Order.Place(context.Background(), alice.ID, widget.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
}

func TestOrderRepository_PlaceRejects(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	_, err := repo.Order.Place(ctx, alice.ID, widget.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = repo.Order.Place(ctx, alice.ID, 999, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "product")

	_, err = repo.Order.Place(ctx, 999, widget.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "user")

	assert.Equal(t, 5, stockOf(t, repo, widget.ID))
}

func TestOrderRepository_CancelTwice(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	order, err := repo.Order.Place(ctx, alice.ID, widget.ID, 2)
	require.NoError(t, err)

	_, err = repo.Order.Cancel(ctx, order.ID, nil)
	require.NoError(t, err)

	_, err = repo.Order.Cancel(ctx, order.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 5, stockOf(t, repo, widget.ID))
}

func TestOrderRepository_CancelScopedToOwner(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	bob := createTestUser(t, repo, "bob", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	order, err := repo.Order.Place(ctx, alice.ID, widget.ID, 1)
	require.NoError(t, err)

	_, err = repo.Order.Cancel(ctx, order.ID, &bob.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 4, stockOf(t, repo, widget.ID))

	_, err = repo.Order.Cancel(ctx, order.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, repo, widget.ID))
}

func TestOrderRepository_CancelRestoresStoredQuantityAfterEdit(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	order, err := repo.Order.Place(ctx, alice.ID, widget.ID, 2)
	require.NoError(t, err)

	// Restock while the order is open.
	widget.Quantity = 10
	require.NoError(t, repo.Product.Update(ctx, widget))

	_, err = repo.Order.Cancel(ctx, order.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, stockOf(t, repo, widget.ID))
}

func TestOrderRepository_DanglingProduct(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)

	order, err := repo.Order.Place(ctx, alice.ID, widget.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Product.Delete(ctx, widget.ID))

	views, err := repo.Order.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, widget.ID, views[0].ProductID)
	assert.Empty(t, views[0].ProductName)

	_, err = repo.Order.Cancel(ctx, order.ID, nil)
	require.NoError(t, err)

	views, err = repo.Order.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestOrderRepository_Views(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	bob := createTestUser(t, repo, "bob", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "9.99", 5)
	gadget := createTestProduct(t, repo, "Gadget", "20", 5)

	_, err := repo.Order.Place(ctx, alice.ID, widget.ID, 1)
	require.NoError(t, err)
	_, err = repo.Order.Place(ctx, bob.ID, gadget.ID, 2)
	require.NoError(t, err)
	_, err = repo.Order.Place(ctx, alice.ID, gadget.ID, 1)
	require.NoError(t, err)

	mine, err := repo.Order.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Widget", mine[0].ProductName)
	assert.Equal(t, "Gadget", mine[1].ProductName)
	for _, v := range mine {
		assert.Equal(t, "alice", v.Username)
	}

	all, err := repo.Order.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bob", all[1].Username)
	assert.Equal(t, "40", all[1].TotalPrice.String())

	none, err := repo.Order.FindByUserID(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderRepository_ConcurrentPlacementsNeverOversell(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "1", 10)

	const workers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		placed   int
		rejected int
		other    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Order.Place(ctx, alice.ID, widget.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				placed++
			case errors.Is(err, apperr.ErrInsufficientStock):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 10, placed)
	assert.Equal(t, workers-10, rejected)
	assert.Equal(t, 0, stockOf(t, repo, widget.ID))

	orders, err := repo.Order.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 10)
}

func TestOrderRepository_Conservation(t *testing.T) {
	repo, _ := createTestRepository(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "alice", entity.RoleClient)
	bob := createTestUser(t, repo, "bob", entity.RoleClient)
	widget := createTestProduct(t, repo, "Widget", "3.50", 20)

	ownedQuantity := func() int {
		all, err := repo.Order.FindAll(ctx)
		require.NoError(t, err)
		sum := 0
		for _, o := range all {
			sum += o.Quantity
		}
		return sum
	}

	a1, err := repo.Order.Place(ctx, alice.ID, widget.ID, 4)
	require.NoError(t, err)
	_, err = repo.Order.Place(ctx, bob.ID, widget.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 20, stockOf(t, repo, widget.ID)+ownedQuantity())

	_, err = repo.Order.Cancel(ctx, a1.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, stockOf(t, repo, widget.ID)+ownedQuantity())

	_, err = repo.Order.Place(ctx, alice.ID, widget.ID, 14)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 20, stockOf(t, repo, widget.ID)+ownedQuantity())
}
