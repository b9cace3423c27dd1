package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"sportify-api/internal/config"
	"sportify-api/internal/model"
	"sportify-api/internal/repository"
	"sportify-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentVerification struct {
	email string
	token string
}

type sentOrder struct {
	to    string
	order *model.Order
	items []*model.OrderItem
}

// fakeNotifications records what would have been emailed.
type fakeNotifications struct {
	mu            sync.Mutex
	verifications []sentVerification
	orders        []sentOrder
}

func (f *fakeNotifications) SendVerification(_ context.Context, email, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, sentVerification{email: email, token: token})
}

func (f *fakeNotifications) SendOrderConfirmation(_ context.Context, to string, order *model.Order, items []*model.OrderItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, sentOrder{to: to, order: order, items: items})
}

func (f *fakeNotifications) Wait(context.Context) error { return nil }

func (f *fakeNotifications) lastVerification(t *testing.T) sentVerification {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.verifications, "no verification sent")
	return f.verifications[len(f.verifications)-1]
}

func (f *fakeNotifications) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeNotifications) lastOrder(t *testing.T) sentOrder {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.orders, "no order confirmation sent")
	return f.orders[len(f.orders)-1]
}

type fixture struct {
	db            *gorm.DB
	clock         *testutil.Clock
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	notifications *fakeNotifications
	tokens        TokenService
	auth          AuthService
	carts         CartService
	checkout      CheckoutService
	orders        OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Now())
	f := &fixture{
		db:            db,
		clock:         clock,
		userRepo:      repository.NewUserRepository(db),
		productRepo:   repository.NewProductRepository(db),
		cartRepo:      repository.NewCartRepository(db),
		orderRepo:     repository.NewOrderRepository(db),
		notifications: &fakeNotifications{},
	}

	products, err := repository.SeedProducts()
	require.NoError(t, err)
	require.NoError(t, f.productRepo.Seed(context.Background(), products))

	f.tokens = NewTokenService(&config.JWT{
		Secret:          "test-secret",
		SessionTTL:      24 * time.Hour,
		VerificationTTL: time.Hour,
	}, clock.Now)

	f.auth, err = NewAuthService(f.userRepo, f.tokens, f.notifications, bcrypt.MinCost, discardLogger())
	require.NoError(t, err)

	f.carts = NewCartService(db, f.cartRepo, f.productRepo)
	f.checkout = NewCheckoutService(db, f.userRepo, f.cartRepo, f.productRepo, f.orderRepo, f.notifications, discardLogger())
	f.orders = NewOrderService(db, f.orderRepo)
	return f
}

// verifiedUser inserts a verified account with password "secret123".
func (f *fixture) verifiedUser(t *testing.T, email string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash), Verified: true}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user.ID
}

func (f *fixture) countOrders(t *testing.T, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Order{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func validShipping() model.ShippingInfo {
	return model.ShippingInfo{
		Name:     "Asha Rao",
		Address1: "12 MG Road",
		City:     "Bengaluru",
		State:    "KA",
		Pin:      "560001",
		Phone:    "9876543210",
	}
}
