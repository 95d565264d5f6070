package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/junaidrashid-git/trendy-shop/models"
	"github.com/junaidrashid-git/trendy-shop/store"
	"github.com/junaidrashid-git/trendy-shop/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	first := &models.User{Email: "ada@example.com", Password: "hash", Name: "Ada"}
	require.NoError(t, s.CreateUser(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &models.User{Email: "ada@example.com", Password: "other", Name: "Imposter"}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestFindUserByEmail(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "bob@example.com", Password: "hash", Name: "Bob"}))

	u, err := s.FindUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSeedCatalogIfEmptyIsIdempotent(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	seeded, err := store.SeedCatalogIfEmpty(ctx, s)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = store.SeedCatalogIfEmpty(ctx, s)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(store.SampleProducts()), n)
}

func TestGetProductIsRepeatable(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	id := products[0].ID
	a, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	b, err := s.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = s.GetProduct(ctx, "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetProductsSkipsUnknownIDs(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)

	found, err := s.GetProducts(ctx, []string{products[0].ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, products[0].ID)
}

func TestListOrdersByUserScopesAndSorts(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	p := products[0]

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Order{
		UserID:    "user-a",
		Items:     []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}},
		Total:     p.Price,
		CreatedAt: base,
	}
	newer := &models.Order{
		UserID:    "user-a",
		Items:     []models.OrderItem{{ProductID: p.ID, Quantity: 2, Price: p.Price}},
		Total:     2 * p.Price,
		CreatedAt: base.Add(time.Hour),
	}
	other := &models.Order{
		UserID:    "user-b",
		Items:     []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}},
		Total:     p.Price,
		CreatedAt: base.Add(2 * time.Hour),
	}
	for _, o := range []*models.Order{older, newer, other} {
		require.NoError(t, s.CreateOrder(ctx, o))
	}

	orders, err := s.ListOrdersByUser(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	for _, o := range orders {
		assert.Equal(t, "user-a", o.UserID)
		assert.Equal(t, models.OrderStatusPending, o.Status)
		require.Len(t, o.Items, 1)
		require.NotNil(t, o.Items[0].Product)
		assert.Equal(t, p.Name, o.Items[0].Product.Name)
	}

	empty, err := s.ListOrdersByUser(ctx, "user-c")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetOrderRequiresOwner(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)

	order := &models.Order{
		UserID: "owner",
		Items:  []models.OrderItem{{ProductID: products[1].ID, Quantity: 1, Price: products[1].Price}},
		Total:  products[1].Price,
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	got, err := s.GetOrder(ctx, "owner", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = s.GetOrder(ctx, "someone-else", order.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateOrderPayment(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)

	order := &models.Order{
		UserID: "owner",
		Items:  []models.OrderItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}},
		Total:  products[0].Price,
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	require.NoError(t, s.UpdateOrderPayment(ctx, order.ID, models.OrderStatusPaid, "txn-1"))

	got, err := s.GetOrder(ctx, "owner", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	assert.Equal(t, "txn-1", got.TransactionID)

	err = s.UpdateOrderPayment(ctx, "missing", models.OrderStatusPaid, "txn-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateOrderPaymentOnlyFromPayableStatus(t *testing.T) {
	s := testutil.NewSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	order := &models.Order{
		UserID: "owner",
		Items:  []models.OrderItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}},
		Total:  products[0].Price,
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	require.NoError(t, s.UpdateOrderPayment(ctx, order.ID, models.OrderStatusPaymentFailed, "txn-declined"))
	require.NoError(t, s.UpdateOrderPayment(ctx, order.ID, models.OrderStatusPaid, "txn-1"))

	err = s.UpdateOrderPayment(ctx, order.ID, models.OrderStatusPaid, "txn-2")
	assert.ErrorIs(t, err, store.ErrNotPayable)

	got, err := s.GetOrder(ctx, "owner", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	assert.Equal(t, "txn-1", got.TransactionID)
}
