package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/config"
	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
	"github.com/menuhq/pos-admin/internal/handler"
	"github.com/menuhq/pos-admin/internal/metrics"
	mw "github.com/menuhq/pos-admin/internal/middleware"
	"github.com/menuhq/pos-admin/internal/service"
	"github.com/menuhq/pos-admin/internal/ws"
)

// Pool is the subset of *pgxpool.Pool the router needs.
type Pool interface {
	database.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Deps are the long-lived components shared by every handler.
type Deps struct {
	Pool     Pool
	Hub      *ws.Hub
	Metrics  *metrics.Metrics
	Cache    service.SnapshotCache
	Notifier handler.Notifier
	Uploader handler.SnapshotUploader
}

var defaultOrigins = []string{"http://localhost:5173"}

// New creates a Chi router with all application routes wired up.
// Applies authentication, outlet scoping, and role-based middleware as needed.
func New(cfg *config.Config, deps Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(log.Logger))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	queries := database.New(deps.Pool)

	// Public routes
	r.Get("/health", healthHandler(deps.Pool))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	limiter := mw.NewIPRateLimiter(cfg.AuthRatePerMinute)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		handler.NewAuthHandler(queries, cfg.JWTSecret).RegisterRoutes(r)
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/outlets/{oid}/menu", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(deps.Hub, cfg.JWTSecret, w, r)
	})

	menus := service.NewMenuService(deps.Pool, func(db database.DBTX) service.CatalogStore {
		return database.New(db)
	}, deps.Cache, deps.Metrics)
	quotes := service.NewQuoteService(menus)
	schedules := service.NewScheduleService(deps.Pool, func(db database.DBTX) service.ScheduleStore {
		return database.New(db)
	})
	n := deps.Notifier

	// Protected, outlet-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Route("/outlets/{oid}", func(r chi.Router) {
			r.Use(mw.RequireOutlet)

			// Quotes write nothing, so every role may price a cart.
			r.Route("/quotes", handler.NewQuoteHandler(quotes).RegisterRoutes)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRoleForWrites(enum.WriteRoles...))

				kitchen := handler.NewKitchenHandler(queries, n)
				r.Route("/taxes", handler.NewTaxHandler(queries, n).RegisterRoutes)
				r.Route("/prep-zones", kitchen.RegisterPrepZoneRoutes)
				r.Route("/printers", kitchen.RegisterPrinterRoutes)
				r.Route("/menu-masters", handler.NewMenuMasterHandler(queries, n).RegisterRoutes)
				r.Route("/categories", handler.NewCategoryHandler(queries, n).RegisterRoutes)
				r.Route("/items", handler.NewItemHandler(queries, menus, n).RegisterRoutes)
				r.Route("/modifier-groups", handler.NewModifierHandler(queries, n).RegisterRoutes)
				r.Route("/events", handler.NewEventHandler(queries, schedules, n).RegisterRoutes)
				r.Route("/availabilities", handler.NewAvailabilityHandler(queries, schedules, n).RegisterRoutes)
				r.Route("/menu", handler.NewMenuHandler(menus, deps.Uploader).RegisterRoutes)
			})
		})
	})

	log.Debug().Msg("router initialized")
	return r
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: database unreachable")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}
}
