package integration

import (
	"context"
	"testing"
	"time"

	"chowline/internal/model"
	"chowline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func() *model.Order {
		return &model.Order{
			ID:              uuid.New(),
			ShippingAddress: "12 Nguyen Hue",
			Status:          model.OrderStatusPending,
			PaymentMethod:   "Cash",
			TotalPrice:      15.0,
			TotalCost:       7.0,
			UserID:          "user-1",
			RestaurantID:    "rest-1",
			TransactionID:   uuid.NewString(),
			DateOrdered:     time.Now(),
		}
	}

	writeOrder := func(t *testing.T, order *model.Order, items []model.OrderItem) {
		t.Helper()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		if len(items) > 0 {
			require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
		}
		require.NoError(t, tx.Commit(ctx))
	}

	t.Run("create and read back an order with items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		items := []model.OrderItem{
			{
				ID:           uuid.New(),
				OrderID:      order.ID,
				Quantity:     2,
				Excluded:     []string{"onion"},
				Drink:        "Coke",
				AttributeIDs: []string{"attr-1"},
				ProductID:    "prod-1",
			},
		}
		writeOrder(t, order, items)

		got, gotItems, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, model.OrderStatusPending, got.Status)
		assert.Equal(t, 15.0, got.TotalPrice)
		assert.Equal(t, 7.0, got.TotalCost)

		require.Len(t, gotItems, 1)
		assert.Equal(t, 2, gotItems[0].Quantity)
		assert.Equal(t, []string{"onion"}, gotItems[0].Excluded)
		assert.Equal(t, []string{"attr-1"}, gotItems[0].AttributeIDs)
		assert.Equal(t, "prod-1", gotItems[0].ProductID)

		// Reading again without intervening writes yields the same totals.
		again, _, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, got.TotalPrice, again.TotalPrice)
		assert.Equal(t, got.TotalCost, again.TotalCost)
	})

	t.Run("GetByID returns nil for unknown order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		got, items, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Empty(t, items)
	})

	t.Run("duplicate transaction id is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		first := newOrder()
		writeOrder(t, first, nil)

		second := newOrder()
		second.TransactionID = first.TransactionID

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		err = repo.CreateOrder(ctx, tx, second)
		assert.Error(t, err)
		_ = tx.Rollback(ctx)
	})

	t.Run("rolled back order leaves no rows", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		got, _, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetOrderCode and GetByOrderCode round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		writeOrder(t, order, nil)

		require.NoError(t, repo.SetOrderCode(ctx, order.ID, 987654))

		got, err := repo.GetByOrderCode(ctx, 987654)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, int64(987654), got.OrderCode)

		missing, err := repo.GetByOrderCode(ctx, 111111)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("UpdateStatus persists and reports missing orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		writeOrder(t, order, nil)

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusSuccess)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.OrderStatusSuccess, updated.Status)

		gone, err := repo.UpdateStatus(ctx, uuid.New(), model.OrderStatusCancel)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("Delete removes the order and its items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		items := []model.OrderItem{{
			ID:           uuid.New(),
			OrderID:      order.ID,
			Quantity:     1,
			AttributeIDs: []string{"attr-1"},
			ProductID:    "prod-1",
		}}
		writeOrder(t, order, items)

		deleted, err := repo.Delete(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, gotItems, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Empty(t, gotItems)

		deleted, err = repo.Delete(ctx, order.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("SalesReport aggregates Success orders only", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		success := newOrder()
		success.Status = model.OrderStatusSuccess
		success.TotalPrice = 100
		success.TotalCost = 40
		writeOrder(t, success, nil)

		pending := newOrder()
		pending.TotalPrice = 999
		writeOrder(t, pending, nil)

		buckets, err := repo.SalesReport(ctx, "day")
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, 100.0, buckets[0].TotalSales)
		assert.Equal(t, 40.0, buckets[0].TotalCost)
		assert.Equal(t, 60.0, buckets[0].Profit)
	})

	t.Run("ProfitByIDs computes per order profit", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := newOrder()
		order.TotalPrice = 50
		order.TotalCost = 20
		writeOrder(t, order, nil)

		profits, err := repo.ProfitByIDs(ctx, []uuid.UUID{order.ID})
		require.NoError(t, err)
		require.Len(t, profits, 1)
		assert.Equal(t, order.ID, profits[0].OrderID)
		assert.Equal(t, 30.0, profits[0].Profit)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("cart round trips through jsonb", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			ID:           "user-cart",
			Name:         "Cart User",
			Email:        "cart@example.com",
			PasswordHash: "x",
			IsActive:     true,
			Cart:         []model.CartItem{},
		}
		require.NoError(t, repo.Create(ctx, user))

		cart := []model.CartItem{
			{
				ID:           uuid.NewString(),
				Quantity:     3,
				Excluded:     []string{"cheese"},
				Drink:        "Water",
				AttributeIDs: []string{"attr-1", "attr-2"},
				ProductID:    "prod-1",
			},
		}
		updated, err := repo.UpdateCart(ctx, user.ID, cart)
		require.NoError(t, err)
		assert.True(t, updated)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Cart, 1)
		assert.Equal(t, cart[0], got.Cart[0])
	})

	t.Run("UpdateCart reports missing user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		updated, err := repo.UpdateCart(ctx, "nobody", nil)
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("GetByEmail returns nil for unknown email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByEmail(ctx, "missing@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRestaurantRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewRestaurantRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Nearest orders branches by distance", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// District 1, Thu Duc and Hanoi relative to a point in District 3.
		branches := []model.Restaurant{
			{ID: "rest-d1", Name: "District 1", Latitude: 10.7747, Longitude: 106.7020, IsActive: true},
			{ID: "rest-td", Name: "Thu Duc", Latitude: 10.8494, Longitude: 106.7537, IsActive: true},
			{ID: "rest-hn", Name: "Hanoi", Latitude: 21.0285, Longitude: 105.8542, IsActive: true},
		}
		for i := range branches {
			require.NoError(t, repo.Create(ctx, &branches[i]))
		}

		nearest, err := repo.Nearest(ctx, 10.7800, 106.6880, 5)
		require.NoError(t, err)
		require.Len(t, nearest, 3)
		assert.Equal(t, "rest-d1", nearest[0].ID)
		assert.Equal(t, "rest-td", nearest[1].ID)
		assert.Equal(t, "rest-hn", nearest[2].ID)
		assert.Greater(t, nearest[1].DistanceKm, nearest[0].DistanceKm)
		assert.Greater(t, nearest[2].DistanceKm, 1000.0)
	})

	t.Run("Nearest skips inactive branches and honours the limit", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Create(ctx, &model.Restaurant{
			ID: "rest-open", Name: "Open", Latitude: 10.77, Longitude: 106.70, IsActive: true,
		}))
		require.NoError(t, repo.Create(ctx, &model.Restaurant{
			ID: "rest-closed", Name: "Closed", Latitude: 10.77, Longitude: 106.70, IsActive: false,
		}))

		nearest, err := repo.Nearest(ctx, 10.77, 106.70, 1)
		require.NoError(t, err)
		require.Len(t, nearest, 1)
		assert.Equal(t, "rest-open", nearest[0].ID)
	})
}

func TestTransactionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	repo := repository.NewTransactionRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and ListByOrder", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		order := &model.Order{
			ID:            uuid.New(),
			Status:        model.OrderStatusPending,
			PaymentMethod: "Bank Transfer",
			UserID:        "user-1",
			RestaurantID:  "rest-1",
			TransactionID: uuid.NewString(),
			DateOrdered:   time.Now(),
		}
		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))

		record := &model.Transaction{
			ID:                  uuid.NewString(),
			OrderID:             order.ID,
			OrderCode:           123456,
			Reference:           "FT2026001",
			AccountNumber:       "0123456789",
			Amount:              150000,
			Description:         "CL123456 payment",
			TransactionDateTime: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, record))

		list, err := repo.ListByOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, record.ID, list[0].ID)
		assert.Equal(t, int64(123456), list[0].OrderCode)
		assert.Equal(t, 150000.0, list[0].Amount)
	})
}
