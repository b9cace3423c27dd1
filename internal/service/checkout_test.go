package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
	require.ErrorIs(t, err, ErrCartEmpty)

	assert.Zero(t, f.countOrders(t, userID))
	assert.Zero(t, f.notifications.orderCount())
}

func TestCheckoutSingleLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 9"})
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(14995)), order.Total.String())
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "runner@example.com", order.Shipping.Email, "defaults to the account email")

	items, err := f.orders.GetOrderLines(ctx, userID, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "nike-air-max-270", items[0].ProductID)
	assert.Equal(t, int32(1), items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(14995)))

	cart, err := f.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	assert.Equal(t, int64(1), f.countOrders(t, userID))
	assert.Equal(t, 1, f.notifications.orderCount())
}

func TestCheckoutTotalsEveryLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	for _, in := range []AddCartLineInput{
		{ProductID: "nike-air-max-270", Quantity: 2, Size: "UK 8"},
		{ProductID: "nike-pegasus-premium", Quantity: 1, Size: "UK 5"},
		{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"},
		{ProductID: "nike-academy-football", Quantity: 3},
	} {
		_, err := f.carts.AddLine(ctx, userID, in)
		require.NoError(t, err)
	}

	shipping := validShipping()
	shipping.Email = "Gifts@Example.com"
	order, err := f.checkout.Checkout(ctx, userID, shipping, model.PaymentMethodUPI)
	require.NoError(t, err)

	// 2×14995 + 12995 + 14995 + 3×1695
	assert.True(t, order.Total.Equal(decimal.NewFromInt(63065)), order.Total.String())
	assert.Equal(t, "gifts@example.com", order.Shipping.Email)
	assert.Equal(t, model.PaymentMethodUPI, order.PaymentMethod)

	items, err := f.orders.GetOrderLines(ctx, userID, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 4, "one order item per cart line")

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	assert.True(t, sum.Equal(order.Total))
}

func TestCheckoutMissingProductIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"})
	require.NoError(t, err)
	_, err = f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-pegasus-premium", Quantity: 1, Size: "UK 6"})
	require.NoError(t, err)

	// product withdrawn from the catalog after it was carted
	require.NoError(t, f.db.Delete(&model.Product{}, "id = ?", "nike-pegasus-premium").Error)

	_, err = f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCard)
	require.ErrorIs(t, err, ErrProductUnavailable)

	assert.Zero(t, f.countOrders(t, userID))
	var items int64
	require.NoError(t, f.db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)

	cart, err := f.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart, 2, "cart left untouched")
	assert.Zero(t, f.notifications.orderCount())
}

func TestCheckoutFreezesPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"})
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.Product{}).
		Where("id = ?", "nike-air-max-270").
		Update("price", decimal.NewFromInt(19995)).Error)

	items, err := f.orders.GetOrderLines(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(14995)))

	orders, err := f.orders.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(14995)))
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"})
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, userID, validShipping(), "paylater")
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)

	noCity := validShipping()
	noCity.City = "   "
	_, err = f.checkout.Checkout(ctx, userID, noCity, model.PaymentMethodCOD)
	require.ErrorIs(t, err, ErrInvalidShipping)

	badEmail := validShipping()
	badEmail.Email = "nope"
	_, err = f.checkout.Checkout(ctx, userID, badEmail, model.PaymentMethodCOD)
	require.ErrorIs(t, err, ErrInvalidShipping)

	_, err = f.checkout.Checkout(ctx, "ghost", validShipping(), model.PaymentMethodCOD)
	require.ErrorIs(t, err, ErrUserNotFound)

	assert.Zero(t, f.countOrders(t, userID))
	cart, err := f.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestCheckoutDoubleSubmitCreatesOneOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"})
	require.NoError(t, err)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCartEmpty):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), f.countOrders(t, userID))
}

func TestCheckoutLeavesOtherCartsAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.verifiedUser(t, "alice@example.com")
	bob := f.verifiedUser(t, "bob@example.com")

	_, err := f.carts.AddLine(ctx, alice, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 8"})
	require.NoError(t, err)
	_, err = f.carts.AddLine(ctx, bob, AddCartLineInput{ProductID: "nike-academy-football", Quantity: 1})
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, alice, validShipping(), model.PaymentMethodNetBanking)
	require.NoError(t, err)

	bobCart, err := f.carts.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobCart, 1)
	assert.Zero(t, f.countOrders(t, bob))
}

func TestCheckoutConfirmationGoesToAccountEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-academy-football", Quantity: 1})
	require.NoError(t, err)

	shipping := validShipping()
	shipping.Email = "someone-else@example.com"
	order, err := f.checkout.Checkout(ctx, userID, shipping, model.PaymentMethodCOD)
	require.NoError(t, err)

	assert.Equal(t, "someone-else@example.com", order.Shipping.Email, "shipping contact is kept on the order")

	sent := f.notifications.lastOrder(t)
	assert.Equal(t, "runner@example.com", sent.to)
	assert.Equal(t, order.ID, sent.order.ID)
}

// shortDeleteCartRepository reports one row fewer than it deleted, as if a
// line vanished between the locked read and the delete.
type shortDeleteCartRepository struct {
	repository.CartRepository
}

func (r *shortDeleteCartRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	n, err := r.CartRepository.DeleteByUser(ctx, tx, userID)
	return n - 1, err
}

func TestCheckoutRollsBackWhenCartChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.verifiedUser(t, "runner@example.com")

	_, err := f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-academy-football", Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.AddLine(ctx, userID, AddCartLineInput{ProductID: "nike-air-max-270", Quantity: 1, Size: "UK 9"})
	require.NoError(t, err)

	checkout := NewCheckoutService(
		f.db, f.userRepo,
		&shortDeleteCartRepository{CartRepository: f.cartRepo},
		f.productRepo, f.orderRepo, f.notifications, discardLogger(),
	)

	_, err = checkout.Checkout(ctx, userID, validShipping(), model.PaymentMethodCOD)
	require.ErrorIs(t, err, ErrCartChanged)

	assert.Zero(t, f.countOrders(t, userID))
	var items int64
	require.NoError(t, f.db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)

	cart, err := f.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart, 2, "deleted lines restored by rollback")
	assert.Zero(t, f.notifications.orderCount())
}
