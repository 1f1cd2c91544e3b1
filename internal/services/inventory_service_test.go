package services

import (
	"sync"
	"testing"

	"inventory_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAddItemRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Inventory.AddCategory("Electrical")
	require.NoError(t, err)

	created := env.createItem(t, "Electrical", "Bulb", 10, 5)
	require.Greater(t, created.ID, int64(0))

	items, err := env.Inventory.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, created.ID, items[0].ID)
	require.Equal(t, "Electrical", items[0].Category)
	require.Equal(t, "Bulb", items[0].Name)
	require.Equal(t, 10, items[0].Quantity)
	require.Equal(t, 5, items[0].Threshold)
}

func TestAddItemDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.createItem(t, "Electrical", "Bulb", 10, 5)

	_, err := env.Inventory.AddItem(AddItemRequest{Category: "Electrical", Name: "Bulb", Quantity: 1, Threshold: 1})
	require.ErrorIs(t, err, ErrItemExists)
}

func TestAddCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Inventory.AddCategory("Electrical")
	require.NoError(t, err)
	_, err = env.Inventory.AddCategory("Electrical")
	require.ErrorIs(t, err, ErrCategoryExists)
}

func TestListItemsByCategory(t *testing.T) {
	env := newTestEnv(t)
	env.createItem(t, "Electrical", "Bulb", 10, 5)
	env.createItem(t, "Plumbing", "Valve", 4, 2)

	items, err := env.Inventory.ListItemsByCategory("Electrical")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Bulb", items[0].Name)
}

func TestTakeDecrementsAndRejectsOverdraw(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 10, 5)

	result, err := env.Inventory.Take(user.ID, item.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 6, result.NewQuantity)

	// A take larger than the remaining stock is rejected in full.
	_, err = env.Inventory.Take(user.ID, item.ID, 7)
	require.ErrorIs(t, err, ErrInsufficientStock)

	got, err := env.ItemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, 6, got.Quantity)
}

func TestRejectedTakeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 3, 1)

	for i := 0; i < 5; i++ {
		_, err := env.Inventory.Take(user.ID, item.ID, 4)
		require.ErrorIs(t, err, ErrInsufficientStock)
	}

	got, err := env.ItemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Quantity)

	// No transaction is recorded for a rejected take.
	transactions, err := env.Reports.ListTransactions(models.WindowInstant)
	require.NoError(t, err)
	require.Empty(t, transactions)
}

func TestTakeUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")

	_, err := env.Inventory.Take(user.ID, 999, 1)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestTakeRecordsTransaction(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 10, 5)

	_, err := env.Inventory.Take(user.ID, item.ID, 3)
	require.NoError(t, err)

	transactions, err := env.Reports.ListTransactions(models.WindowInstant)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.Equal(t, "Bob", transactions[0].UserName)
	require.Equal(t, "Bulb", transactions[0].ItemName)
	require.Equal(t, 3, transactions[0].QuantityTaken)

	// Inventory views carry the last-taken annotation.
	items, err := env.Inventory.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].LastTaken)
	require.Equal(t, "Bob", items[0].LastTaken.UserName)
}

func TestSetQuantity(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Electrical", "Bulb", 10, 5)

	require.NoError(t, env.Inventory.SetQuantity(item.ID, 42))

	got, err := env.ItemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, 42, got.Quantity)

	require.ErrorIs(t, env.Inventory.SetQuantity(item.ID, -1), ErrValidation)
	require.ErrorIs(t, env.Inventory.SetQuantity(999, 1), ErrItemNotFound)
}

func TestComputeLowStockStrictInequality(t *testing.T) {
	items := []models.Item{
		{Name: "Below", Quantity: 2, Threshold: 5},
		{Name: "Equal", Quantity: 5, Threshold: 5},
		{Name: "Above", Quantity: 9, Threshold: 5},
		{Name: "AlsoBelow", Quantity: 0, Threshold: 1},
	}

	alerts := ComputeLowStock(items)
	require.Len(t, alerts, 2)
	// Input order is preserved.
	require.Equal(t, "Below", alerts[0].Name)
	require.Equal(t, "AlsoBelow", alerts[1].Name)
}

func TestLowStockEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 10, 5)

	result, err := env.Inventory.Take(user.ID, item.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 7, result.NewQuantity)

	alerts, err := env.Inventory.LowStockAlerts()
	require.NoError(t, err)
	require.Empty(t, alerts)

	result, err = env.Inventory.Take(user.ID, item.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 2, result.NewQuantity)

	alerts, err = env.Inventory.LowStockAlerts()
	require.NoError(t, err)
	require.Equal(t, []models.LowStockAlert{{Name: "Bulb", Quantity: 2, Threshold: 5}}, alerts)

	_, err = env.Inventory.Take(user.ID, item.ID, 5)
	require.ErrorIs(t, err, ErrInsufficientStock)

	got, err := env.ItemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Quantity)
}

func TestConcurrentTakesNeverBothSucceed(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 5, 1)

	// Both callers ask for the entire stock at once.
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.Inventory.Take(user.ID, item.ID, 5)
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrInsufficientStock)
			rejections++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, rejections)

	got, err := env.ItemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Quantity)

	// Exactly one transaction was logged for the one success.
	transactions, err := env.Reports.ListTransactions(models.WindowInstant)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
}

func TestDeleteCategoryLeavesItems(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.Inventory.AddCategory("Electrical")
	require.NoError(t, err)
	env.createItem(t, "Electrical", "Bulb", 10, 5)

	require.NoError(t, env.Inventory.DeleteCategory(category.ID))

	// The item keeps its category string; no cascade.
	items, err := env.Inventory.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Electrical", items[0].Category)
}

func TestDeleteItem(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Electrical", "Bulb", 10, 5)

	require.NoError(t, env.Inventory.DeleteItem(item.ID))
	require.ErrorIs(t, env.Inventory.DeleteItem(item.ID), ErrItemNotFound)

	items, err := env.Inventory.ListItems()
	require.NoError(t, err)
	require.Empty(t, items)
}
