package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aresapparel/apparel-backend/api/controllers"
	"github.com/aresapparel/apparel-backend/api/middleware"
	"github.com/aresapparel/apparel-backend/internal/auth"
	"github.com/aresapparel/apparel-backend/internal/cart"
	"github.com/aresapparel/apparel-backend/internal/categories"
	"github.com/aresapparel/apparel-backend/internal/orders"
	"github.com/aresapparel/apparel-backend/internal/products"
	"github.com/aresapparel/apparel-backend/internal/users"
	"github.com/aresapparel/apparel-backend/pkg/auth/session"
	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	"github.com/aresapparel/apparel-backend/pkg/logger"
	"github.com/aresapparel/apparel-backend/pkg/metrics"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

type categoryFinder interface {
	FindBySlugs(ctx context.Context, slugs []string) (map[string]models.Category, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	limiterStore rateLimiterStore,
	sessionManager session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
	categoryService categories.Service,
	categoryRepo categoryFinder,
	productService products.Service,
	cartService cart.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(nil),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})
	if httpMetrics != nil {
		r.Handle("/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/homepage", controllers.Homepage(categoryRepo, productService, cfg.Assets, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).Post("/register", controllers.Register(registerService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).Post("/login", controllers.Login(authService, logg))
			r.Post("/refresh", controllers.Refresh(authService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/search", controllers.ProductSearch(productService, logg))
			r.Get("/featured", controllers.ProductFeatured(productService, logg))
			r.Get("/{idOrSlug}", controllers.ProductGet(productService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(categoryService, logg))
			r.Get("/{category}/page", controllers.CategoryPage(categoryService, productService, cfg.Assets, logg))
			r.Get("/{category}", controllers.CategoryGet(categoryService, logg))
			r.Get("/{category}/products", controllers.CategoryProducts(categoryService, productService, logg))
			r.Get("/{category}/stats", controllers.CategoryStats(categoryService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(userService, logg))
			r.Get("/{id}", controllers.UserGet(userService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Post("/auth/logout", controllers.Logout(authService, logg))
			r.Get("/profile", controllers.ProfileGet(userService, logg))
			r.Put("/profile", controllers.ProfileUpdate(userService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartView(cartService, logg))
				r.Get("/count", controllers.CartCount(cartService, logg))
				r.Post("/add", controllers.CartAdd(cartService, logg))
				r.Put("/update", controllers.CartUpdate(cartService, logg))
				r.Delete("/remove", controllers.CartRemove(cartService, logg))
				r.Delete("/clear", controllers.CartClear(cartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(orderService, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(orderService, logg))
				r.Get("/{id}", controllers.OrderGet(orderService, logg))
				r.Put("/{id}/cancel", controllers.OrderCancel(orderService, logg))
			})
			r.Get("/track/{orderNumber}", controllers.OrderTrack(orderService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
			r.Use(middleware.RequireRole("admin", logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminProductCreate(productService, logg))
				r.Put("/{id}", controllers.AdminProductUpdate(productService, logg))
				r.Delete("/{id}", controllers.AdminProductDelete(productService, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCategoryCreate(categoryService, logg))
				r.Put("/{id}", controllers.AdminCategoryUpdate(categoryService, logg))
				r.Delete("/{id}", controllers.AdminCategoryDelete(categoryService, logg))
			})
		})
	})

	return r
}
