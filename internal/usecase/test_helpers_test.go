package usecase

import (
	"path/filepath"
	"testing"

	"storefront/internal/data/repository"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Auth: utils.AuthConfig{
			BcryptCost:    bcrypt.MinCost,
			AdminUsername: "admin",
			AdminPassword: "admin",
		},
	}
}

// createTestService wires every service against a fresh database file.
func createTestService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()
	db, err := database.InitDB(utils.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zaptest.NewLogger(t)
	repo := repository.NewRepository(db, log)
	return NewService(repo, testConfig(), log), repo
}
