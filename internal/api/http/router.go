package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Addresses     *handlers.AddressesHandler
	Catalogues    *handlers.CataloguesHandler
	Carts         *handlers.CartsHandler
	CartLines     *handlers.CartLinesHandler
	Checkouts     *handlers.CheckoutsHandler
	Offers        *handlers.OffersHandler
	Vouchers      *handlers.VouchersHandler
	Wishlists     *handlers.WishlistsHandler
	Authenticator *auth.Authenticator
	LoginLimiter  *LoginLimiter
	Gatherer      prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	user := auth.RequireUser()
	admin := auth.RequireAdmin()

	v1 := app.Group("/v1", cfg.Authenticator.Handle)

	authGroup := v1.Group("/auth")
	if cfg.LoginLimiter != nil {
		authGroup.Post("/login", cfg.LoginLimiter.Handle, cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/reset-password-request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/confirm-password", cfg.Auth.ConfirmPassword)

	users := v1.Group("/users")
	users.Get("/me", user, cfg.Users.Me)
	users.Put("/me", user, cfg.Users.UpdateMe)
	users.Delete("/me", user, cfg.Users.DeleteMe)
	users.Get("", admin, cfg.Users.List)
	users.Post("", admin, cfg.Users.Create)
	users.Get("/:id", admin, cfg.Users.Get)
	users.Put("/:id", admin, cfg.Users.Update)
	users.Delete("/:id", admin, cfg.Users.Delete)

	addresses := v1.Group("/addresses")
	addresses.Post("", user, cfg.Addresses.Create)
	addresses.Get("/me", user, cfg.Addresses.Mine)
	addresses.Get("", admin, cfg.Addresses.List)
	addresses.Get("/:id", user, cfg.Addresses.Get)
	addresses.Put("/:id", user, cfg.Addresses.Update)
	addresses.Delete("/:id", user, cfg.Addresses.Delete)

	catalogues := v1.Group("/catalogues")
	catalogues.Get("", cfg.Catalogues.List)
	catalogues.Get("/:id", cfg.Catalogues.Get)
	catalogues.Post("", admin, cfg.Catalogues.Create)
	catalogues.Put("/:id", admin, cfg.Catalogues.Update)
	catalogues.Delete("/:id", admin, cfg.Catalogues.Delete)

	carts := v1.Group("/carts")
	carts.Post("", user, cfg.Carts.Create)
	carts.Get("/me", user, cfg.Carts.Mine)
	carts.Get("", admin, cfg.Carts.List)
	carts.Get("/:id/total", user, cfg.Carts.Total)
	carts.Post("/:id/apply-discount", user, cfg.Carts.ApplyDiscount)
	carts.Get("/:id", user, cfg.Carts.Get)
	carts.Put("/:id", user, cfg.Carts.Update)
	carts.Delete("/:id", user, cfg.Carts.Delete)

	lines := v1.Group("/cart-lines")
	lines.Post("", user, cfg.CartLines.Create)
	lines.Get("", admin, cfg.CartLines.List)
	lines.Post("/:id/apply-discount", user, cfg.CartLines.ApplyDiscount)
	lines.Get("/:id/tax", user, cfg.CartLines.Tax)
	lines.Get("/:id", user, cfg.CartLines.Get)
	lines.Put("/:id", user, cfg.CartLines.Update)
	lines.Delete("/:id", user, cfg.CartLines.Delete)

	checkouts := v1.Group("/checkouts")
	checkouts.Post("", user, cfg.Checkouts.Create)
	checkouts.Get("", admin, cfg.Checkouts.List)
	checkouts.Get("/:id", user, cfg.Checkouts.Get)
	checkouts.Put("/:id", user, cfg.Checkouts.Update)
	checkouts.Delete("/:id", user, cfg.Checkouts.Delete)

	offers := v1.Group("/offers")
	offers.Get("", user, cfg.Offers.List)
	offers.Get("/:id", user, cfg.Offers.Get)
	offers.Post("", admin, cfg.Offers.Create)
	offers.Put("/:id", admin, cfg.Offers.Update)
	offers.Delete("/:id", admin, cfg.Offers.Delete)

	vouchers := v1.Group("/vouchers")
	vouchers.Get("/code/:code", user, cfg.Vouchers.Lookup)
	vouchers.Get("", admin, cfg.Vouchers.List)
	vouchers.Post("", admin, cfg.Vouchers.Create)
	vouchers.Get("/:id", admin, cfg.Vouchers.Get)
	vouchers.Put("/:id", admin, cfg.Vouchers.Update)
	vouchers.Delete("/:id", admin, cfg.Vouchers.Delete)

	wishlists := v1.Group("/wishlists")
	wishlists.Post("", user, cfg.Wishlists.Create)
	wishlists.Get("/me", user, cfg.Wishlists.Mine)
	wishlists.Get("", admin, cfg.Wishlists.List)
	wishlists.Delete("/:id", user, cfg.Wishlists.Delete)
}
