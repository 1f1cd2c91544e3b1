package services

import (
	"testing"
	"time"

	"inventory_backend/internal/models"

	"github.com/stretchr/testify/require"
)

// recordAt appends a transaction with an explicit timestamp, bypassing
// the take flow so windows can be tested deterministically.
func recordAt(t *testing.T, env *testEnv, userID, itemID int64, qty int, ts time.Time) {
	t.Helper()
	_, err := env.TxnRepo.Create(env.DB, &models.Transaction{
		UserID:        userID,
		ItemID:        itemID,
		QuantityTaken: qty,
		Timestamp:     ts,
	})
	require.NoError(t, err)
}

func TestListTransactionsWindows(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 100, 5)

	now := time.Now()
	recordAt(t, env, user.ID, item.ID, 1, now.Add(-30*time.Second))
	recordAt(t, env, user.ID, item.ID, 2, now.Add(-(6*24+23)*time.Hour)) // 6d23h: still weekly
	recordAt(t, env, user.ID, item.ID, 3, now.Add(-8*24*time.Hour))
	recordAt(t, env, user.ID, item.ID, 4, now.Add(-31*24*time.Hour))
	recordAt(t, env, user.ID, item.ID, 5, now.Add(-400*24*time.Hour))

	cases := []struct {
		window models.ReportWindow
		count  int
	}{
		{models.WindowInstant, 5},
		{models.WindowWeekly, 2},
		{models.WindowMonthly, 3},
		{models.WindowYearly, 4},
	}
	for _, tc := range cases {
		transactions, err := env.Reports.ListTransactions(tc.window)
		require.NoError(t, err)
		require.Len(t, transactions, tc.count, "window %s", tc.window)
	}

	// Newest first, with names joined in.
	all, err := env.Reports.ListTransactions(models.WindowInstant)
	require.NoError(t, err)
	require.Equal(t, 1, all[0].QuantityTaken)
	require.Equal(t, 5, all[4].QuantityTaken)
	require.Equal(t, "Bob", all[0].UserName)
	require.Equal(t, "Bulb", all[0].ItemName)
}

func TestListTransactionsDailyWindow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 100, 5)

	now := time.Now()
	recordAt(t, env, user.ID, item.ID, 1, now.Add(-30*time.Second))
	// Yesterday, same wall-clock time: out of the daily window even
	// though it is less than 24 hours in some DST edge cases.
	recordAt(t, env, user.ID, item.ID, 2, now.AddDate(0, 0, -1))

	transactions, err := env.Reports.ListTransactions(models.WindowDaily)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.Equal(t, 1, transactions[0].QuantityTaken)
}

func TestWithinWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 6 days 23 hours old counts as weekly; 7 full days does not.
	require.True(t, withinWindow(now, now.Add(-(6*24+23)*time.Hour), models.WindowWeekly))
	require.False(t, withinWindow(now, now.Add(-7*24*time.Hour), models.WindowWeekly))
	require.False(t, withinWindow(now, now.Add(-(7*24+1)*time.Hour), models.WindowWeekly))

	require.True(t, withinWindow(now, now.Add(-(29*24+23)*time.Hour), models.WindowMonthly))
	require.False(t, withinWindow(now, now.Add(-30*24*time.Hour), models.WindowMonthly))

	require.True(t, withinWindow(now, now.Add(-(364*24+23)*time.Hour), models.WindowYearly))
	require.False(t, withinWindow(now, now.Add(-365*24*time.Hour), models.WindowYearly))

	// Daily is calendar-date equality, not a 24h sliding window.
	require.True(t, withinWindow(now, now.Add(-11*time.Hour), models.WindowDaily))
	require.False(t, withinWindow(now, now.Add(-13*time.Hour), models.WindowDaily))

	require.True(t, withinWindow(now, now.Add(-1000*24*time.Hour), models.WindowInstant))
}

func TestInvalidWindowRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Reports.ListTransactions(models.ReportWindow("hourly"))
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestLastForItem(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", models.RoleStaff, "alicepin")
	bob := env.createUser(t, "Bob", models.RoleStaff, "bobpin")
	item := env.createItem(t, "Electrical", "Bulb", 100, 5)

	now := time.Now()
	recordAt(t, env, alice.ID, item.ID, 1, now.Add(-2*time.Hour))
	recordAt(t, env, bob.ID, item.ID, 2, now.Add(-1*time.Hour))

	last, err := env.Reports.LastForItem(item.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, "Bob", last.UserName)

	// Never-taken items simply have no annotation.
	other := env.createItem(t, "Electrical", "Fuse", 10, 2)
	last, err = env.Reports.LastForItem(other.ID)
	require.NoError(t, err)
	require.Nil(t, last)
}
