package router

import (
	"net/http"
	"strings"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/handler"
	"hinglaj-store/internal/middleware"
	"hinglaj-store/internal/model"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Config carries the router dependencies.
type Config struct {
	AuthHandler     *handler.AuthHandler
	ItemHandler     *handler.ItemHandler
	OrderHandler    *handler.OrderHandler
	CustomerHandler *handler.CustomerHandler
	Tokens          *auth.TokenManager
	UploadDir       string
	UploadPublic    string
	Logger          zerolog.Logger
}

// New creates a new HTTP router with all routes and middleware configured.
func New(cfg Config) http.Handler {
	mux := http.NewServeMux()
	logger := cfg.Logger

	authRequired := middleware.AuthRequired(cfg.Tokens, logger)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authRequired(middleware.RequireRole(model.RoleAdmin, logger)(h))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Prometheus scrape endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Uploaded product photos, when stored locally
	if cfg.UploadDir != "" {
		prefix := strings.TrimSuffix(cfg.UploadPublic, "/") + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadDir))))
	}

	mux.HandleFunc("/api/auth/register", cfg.AuthHandler.Register)
	mux.HandleFunc("/api/auth/login", cfg.AuthHandler.Login)

	// Item routes: public reads, admin writes
	itemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		collection := r.URL.Path == "/api/items" || r.URL.Path == "/api/items/"

		switch {
		case r.Method == http.MethodGet && collection:
			cfg.ItemHandler.List(w, r)
		case r.Method == http.MethodGet && r.URL.Path == "/api/items/categories":
			cfg.ItemHandler.Categories(w, r)
		case r.Method == http.MethodGet:
			cfg.ItemHandler.Get(w, r)
		case r.Method == http.MethodPost && collection:
			adminOnly(cfg.ItemHandler.Create).ServeHTTP(w, r)
		case r.Method == http.MethodPut:
			adminOnly(cfg.ItemHandler.Update).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			adminOnly(cfg.ItemHandler.Delete).ServeHTTP(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/items", itemRouteHandler)
	mux.HandleFunc("/api/items/", itemRouteHandler)

	// Order routes: create and my-orders for any signed-in user, the rest
	// admin-only, single-order read enforced owner-or-admin in the service.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		collection := r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/"

		switch {
		case r.Method == http.MethodPost && collection:
			authRequired(http.HandlerFunc(cfg.OrderHandler.Create)).ServeHTTP(w, r)
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/my-orders":
			authRequired(http.HandlerFunc(cfg.OrderHandler.MyOrders)).ServeHTTP(w, r)
		case r.Method == http.MethodGet && collection:
			adminOnly(cfg.OrderHandler.List).ServeHTTP(w, r)
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
			adminOnly(cfg.OrderHandler.UpdateStatus).ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			authRequired(http.HandlerFunc(cfg.OrderHandler.Get)).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			adminOnly(cfg.OrderHandler.Delete).ServeHTTP(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Customer routes are admin-only throughout
	customerRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		collection := r.URL.Path == "/api/customers" || r.URL.Path == "/api/customers/"

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/customers/stats/overview":
			adminOnly(cfg.CustomerHandler.Overview).ServeHTTP(w, r)
		case r.Method == http.MethodGet && collection:
			adminOnly(cfg.CustomerHandler.List).ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			adminOnly(cfg.CustomerHandler.Get).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			adminOnly(cfg.CustomerHandler.Delete).ServeHTTP(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/customers", customerRouteHandler)
	mux.HandleFunc("/api/customers/", customerRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> RequestID -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.RequestID(h)
	h = middleware.Metrics(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
