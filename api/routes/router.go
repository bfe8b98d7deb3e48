package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nvteo/bakeshop-backend/api/controllers"
	"github.com/nvteo/bakeshop-backend/api/middleware"
	authsvc "github.com/nvteo/bakeshop-backend/internal/auth"
	cartstore "github.com/nvteo/bakeshop-backend/internal/cart"
	categorysvc "github.com/nvteo/bakeshop-backend/internal/categories"
	dashboardsvc "github.com/nvteo/bakeshop-backend/internal/dashboard"
	notificationsvc "github.com/nvteo/bakeshop-backend/internal/notifications"
	ordersvc "github.com/nvteo/bakeshop-backend/internal/orders"
	productsvc "github.com/nvteo/bakeshop-backend/internal/products"
	siteinfosvc "github.com/nvteo/bakeshop-backend/internal/siteinfo"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/enums"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
	"github.com/nvteo/bakeshop-backend/pkg/metrics"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      controllers.Pinger
	RedisPinger   controllers.Pinger
	RateLimiter   middleware.RateLimiterStore
	Metrics       *metrics.HTTPMetrics
	Registry      *prometheus.Registry
	Auth          authsvc.Service
	Products      productsvc.Service
	Categories    categorysvc.Service
	Orders        ordersvc.Service
	Dashboard     dashboardsvc.Service
	SiteInfo      siteinfosvc.Service
	Cart          *cartstore.Store
	Notifications *notificationsvc.Service
}

// NewRouter mounts the full API surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.CORS(cfg.App.CORSOrigins))

	requireAuth := middleware.Auth(cfg.JWT, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, logg)
	requireAdmin := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, cfg.AuthRateLimit.LoginUsernameLimit)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register", cfg.AuthRateLimit.RegisterWindow, cfg.AuthRateLimit.RegisterIPLimit, cfg.AuthRateLimit.RegisterUsernameLimit)

	r.Get("/health", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DBPinger, deps.RedisPinger, logg))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/Auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
				Post("/login", controllers.Login(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).
				Post("/register", controllers.Register(deps.Auth, logg))
		})

		r.Route("/Products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Post("/", controllers.CreateProduct(deps.Products, logg))
				r.Put("/{id}", controllers.UpdateProduct(deps.Products, logg))
				r.Patch("/{id}", controllers.UpdateProduct(deps.Products, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
			})
		})

		r.Route("/Categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Post("/", controllers.CreateCategory(deps.Categories, logg))
				r.Delete("/{id}", controllers.DeleteCategory(deps.Categories, logg))
			})
		})

		r.Route("/Orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", controllers.CreateOrder(deps.Orders, logg))
				r.Get("/my-orders", controllers.MyOrders(deps.Orders, logg))
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/all", controllers.AdminListOrders(deps.Orders, logg))
				r.Put("/{id}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
			})
		})

		r.With(requireAuth, requireAdmin).
			Get("/Dashboard/summary", controllers.DashboardSummary(deps.Dashboard, logg))

		r.Route("/WebsiteInfo", func(r chi.Router) {
			r.Get("/", controllers.GetWebsiteInfo(deps.SiteInfo, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Put("/", controllers.UpdateWebsiteInfo(deps.SiteInfo, logg))
				r.Patch("/", controllers.UpdateWebsiteInfo(deps.SiteInfo, logg))
			})
		})

		r.Route("/Cart", func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Get("/stream", controllers.CartStream(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddToCart(deps.Cart, logg))
			r.Put("/items/{id}", controllers.UpdateCartQuantity(deps.Cart, logg))
			r.Delete("/items/{id}", controllers.RemoveFromCart(deps.Cart, logg))
		})

		r.Route("/Notifications", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Delete("/", controllers.ClearNotifications(deps.Notifications, logg))
		})
	})

	r.With(optionalAuth, requireAdmin).
		Get("/hub/notification", controllers.NotificationStream(deps.Notifications, logg))

	if dir := cfg.Media.UploadDir; dir != "" {
		fileServer := http.StripPrefix(cfg.Media.PublicBase+"/", http.FileServer(http.Dir(dir)))
		r.Get(cfg.Media.PublicBase+"/*", fileServer.ServeHTTP)
	}

	return r
}
