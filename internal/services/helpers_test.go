package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"inventory_backend/internal/database"
	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	DB *sql.DB

	UserRepo    repositories.UserRepository
	RequestRepo repositories.LoginRequestRepository
	LogRepo     repositories.LoginLogRepository
	ItemRepo    repositories.ItemRepository
	TxnRepo     repositories.TransactionRepository

	Auth      AuthService
	Users     UserService
	Inventory InventoryService
	Reports   ReportService
}

// newTestEnv opens a fresh sqlite store in a temp dir and wires the full
// service stack over it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		DB:          db,
		UserRepo:    repositories.NewUserRepository(db),
		RequestRepo: repositories.NewLoginRequestRepository(db),
		LogRepo:     repositories.NewLoginLogRepository(db),
		ItemRepo:    repositories.NewItemRepository(db),
		TxnRepo:     repositories.NewTransactionRepository(db),
	}
	env.Auth = NewAuthService(env.UserRepo, env.RequestRepo, env.LogRepo, db)
	env.Users = NewUserService(env.UserRepo, db)
	env.Inventory = NewInventoryService(env.ItemRepo, env.TxnRepo, db)
	env.Reports = NewReportService(env.TxnRepo)
	return env
}

func (env *testEnv) createUser(t *testing.T, name, role, pin string) *models.User {
	t.Helper()
	user, err := env.Users.CreateUser(CreateUserRequest{Name: name, Role: role, PIN: pin})
	require.NoError(t, err)
	return user
}

func (env *testEnv) createItem(t *testing.T, category, name string, quantity, threshold int) *models.Item {
	t.Helper()
	item, err := env.Inventory.AddItem(AddItemRequest{
		Category:  category,
		Name:      name,
		Quantity:  quantity,
		Threshold: threshold,
	})
	require.NoError(t, err)
	return item
}
