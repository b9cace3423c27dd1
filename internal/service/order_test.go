package service

import (
	"context"
	"testing"

	"sportify-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderServiceOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.verifiedUser(t, "alice@example.com")
	bob := f.verifiedUser(t, "bob@example.com")

	_, err := f.carts.AddLine(ctx, alice, AddCartLineInput{ProductID: "nike-academy-football", Quantity: 2})
	require.NoError(t, err)
	order, err := f.checkout.Checkout(ctx, alice, validShipping(), model.PaymentMethodCOD)
	require.NoError(t, err)

	_, err = f.orders.GetOrderLines(ctx, bob, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.orders.GetOrderLines(ctx, alice, order.ID+100)
	require.ErrorIs(t, err, ErrOrderNotFound)

	bobsOrders, err := f.orders.ListOrders(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobsOrders)

	alicesOrders, err := f.orders.ListOrders(ctx, alice)
	require.NoError(t, err)
	require.Len(t, alicesOrders, 1)
	assert.Equal(t, order.ID, alicesOrders[0].ID)
}

func TestListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	var ids []uint
	for i := 0; i < 3; i++ {
		_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-academy-football", Quantity: 1})
		require.NoError(t, err)
		order, err := f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, err := f.orders.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}
