package server

import (
	"context"
	"log/slog"
	"net/http"

	"sportify-api/internal/handler"
	appmw "sportify-api/internal/middleware"
	"sportify-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Services struct {
	Auth     service.AuthService
	Tokens   service.TokenService
	Users    service.UserService
	Catalog  service.CatalogService
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
}

type Server struct {
	echo           *echo.Echo
	tokens         service.TokenService
	authRateLimit  float64
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
}

// NewServer wires handlers onto a fresh echo instance. authRateLimit is the
// per-IP request rate allowed on the credential routes; zero disables it.
func NewServer(svcs Services, authRateLimit float64, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.RequestLogger(logger))

	s := &Server{
		echo:           e,
		tokens:         svcs.Tokens,
		authRateLimit:  authRateLimit,
		authHandler:    handler.NewAuthHandler(svcs.Auth),
		productHandler: handler.NewProductHandler(svcs.Catalog),
		cartHandler:    handler.NewCartHandler(svcs.Cart),
		orderHandler:   handler.NewOrderHandler(svcs.Checkout, svcs.Orders),
		userHandler:    handler.NewUserHandler(svcs.Users),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	var limited []echo.MiddlewareFunc
	if s.authRateLimit > 0 {
		limited = append(limited, middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(s.authRateLimit)),
		))
	}
	api.POST("/register", s.authHandler.Register, limited...)
	api.GET("/verify", s.authHandler.Verify)
	api.POST("/verify/resend", s.authHandler.ResendVerification, limited...)
	api.POST("/login", s.authHandler.Login, limited...)

	// -------- catalog --------
	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)

	// -------- session required --------
	session := appmw.AuthMiddleware(s.tokens)

	api.GET("/account", s.userHandler.GetAccount, session)

	api.GET("/cart", s.cartHandler.GetCart, session)
	api.POST("/cart", s.cartHandler.AddLine, session)
	api.DELETE("/cart", s.cartHandler.ClearCart, session)
	api.PUT("/cart/:id", s.cartHandler.UpdateLine, session)
	api.DELETE("/cart/:id", s.cartHandler.RemoveLine, session)

	api.POST("/checkout", s.orderHandler.Checkout, session)
	api.GET("/orders", s.orderHandler.ListOrders, session)
	api.GET("/orders/:id/items", s.orderHandler.GetOrderItems, session)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
