package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahilkadam/medipay-backend/api/controllers"
	"github.com/sahilkadam/medipay-backend/api/middleware"
	"github.com/sahilkadam/medipay-backend/internal/collections"
	"github.com/sahilkadam/medipay-backend/internal/lineworkers"
	"github.com/sahilkadam/medipay-backend/internal/payments"
	"github.com/sahilkadam/medipay-backend/internal/retailers"
	"github.com/sahilkadam/medipay-backend/internal/tenants"
	"github.com/sahilkadam/medipay-backend/pkg/config"
	"github.com/sahilkadam/medipay-backend/pkg/db"
	"github.com/sahilkadam/medipay-backend/pkg/enums"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	collectionsService collections.Service,
	retailersService retailers.Service,
	lineWorkersService lineworkers.Service,
	paymentsService payments.Service,
	tenantsService tenants.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		// Line worker collection flow.
		r.Route("/v1/collections", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleLineWorker), logg))
			r.Post("/select-retailer", controllers.CollectionSelectRetailer(collectionsService, logg))
			r.Post("/amount", controllers.CollectionEnterAmount(collectionsService, logg))
			r.Post("/send-otp", controllers.CollectionSendOTP(collectionsService, logg))
			r.Post("/verify-otp", controllers.CollectionVerifyOTP(collectionsService, logg))
			r.Post("/cancel", controllers.CollectionCancel(collectionsService, logg))
			r.Get("/current", controllers.CollectionCurrent(collectionsService, logg))
		})

		// Line worker read surface.
		r.Route("/v1/worker", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleLineWorker), logg))
			r.Get("/retailers", controllers.RetailerList(retailersService, logg))
			r.Get("/payments", controllers.WorkerPaymentHistory(paymentsService, logg))
			r.Get("/payments/stats", controllers.WorkerPaymentStats(paymentsService, logg))
		})

		// Wholesaler admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleWholesalerAdmin), logg))

			r.Route("/v1/retailers", func(r chi.Router) {
				r.Get("/", controllers.RetailerList(retailersService, logg))
				r.Post("/", controllers.RetailerCreate(retailersService, logg))
				r.Get("/{retailerId}", controllers.RetailerDetail(retailersService, logg))
				r.Patch("/{retailerId}", controllers.RetailerUpdate(retailersService, logg))
			})

			r.Route("/v1/line-workers", func(r chi.Router) {
				r.Get("/", controllers.LineWorkerList(lineWorkersService, logg))
				r.Post("/", controllers.LineWorkerCreate(lineWorkersService, logg))
				r.Get("/{lineWorkerId}", controllers.LineWorkerDetail(lineWorkersService, logg))
				r.Post("/{lineWorkerId}/active", controllers.LineWorkerSetActive(lineWorkersService, logg))
			})

			r.Route("/v1/payments", func(r chi.Router) {
				r.Get("/", controllers.PaymentHistory(paymentsService, logg))
			})

			r.Route("/v1/tenants", func(r chi.Router) {
				r.Get("/me", controllers.TenantProfile(tenantsService, logg))
				r.Put("/me", controllers.TenantUpdate(tenantsService, logg))
			})
		})
	})

	return r
}
