package repository

import (
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/data/entity"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// createTestRepository opens a fresh database file for one test.
func createTestRepository(t *testing.T) (*Repository, database.SQLIface) {
	t.Helper()
	db, err := database.InitDB(utils.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db, zaptest.NewLogger(t)), db
}

func createTestUser(t *testing.T, repo *Repository, username string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := entity.NewCredentialHash("password1", bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{Username: username, PasswordHash: hash, Role: role}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}

func createTestProduct(t *testing.T, repo *Repository, name, price string, quantity int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	}
	require.NoError(t, repo.Product.Create(context.Background(), product))
	return product
}

func stockOf(t *testing.T, repo *Repository, productID int64) int {
	t.Helper()
	product, err := repo.Product.FindByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Quantity
}
