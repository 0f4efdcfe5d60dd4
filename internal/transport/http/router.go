package http

import (
	"context"
	"net/http"

	"github.com/driversense-api/internal/application/auth"
	"github.com/driversense-api/internal/application/driver"
	"github.com/driversense-api/internal/application/fleet"
	"github.com/driversense-api/internal/application/user"
	"github.com/driversense-api/internal/config"
	"github.com/driversense-api/internal/transport/http/handler"
	appmiddleware "github.com/driversense-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo      UserRepository
	ChallengeRepo ChallengeRepository
	RefreshLedger RefreshLedger
	VehicleRepo   VehicleRepository
	TripRepo      TripRepository
	JWTProvider   TokenProvider
}

// NewRouter builds and returns the application router. ctx bounds the
// lifetime of the rate limiter's background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	consentMw := func(next http.Handler) http.Handler { return next }
	if cfg.ConsentRequired {
		consentMw = appmiddleware.RequireConsent(deps.UserRepo)
	}

	// Applied to the public endpoints that accept credentials or emails.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	authSvc := auth.NewService(auth.ServiceDeps{
		Users:                 deps.UserRepo,
		Challenges:            deps.ChallengeRepo,
		Tokens:                deps.JWTProvider,
		Ledger:                deps.RefreshLedger,
		ChallengeTTL:          cfg.ChallengeTTL,
		DefaultConsentVersion: cfg.DefaultConsentVersion,
	})
	userSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo})
	fleetSvc := fleet.NewService(fleet.ServiceDeps{VehicleRepo: deps.VehicleRepo, TripRepo: deps.TripRepo})
	driverSvc := driver.NewService(driver.ServiceDeps{})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(userSvc)
	fleetH := handler.NewFleetHandler(fleetSvc)
	driverH := handler.NewDriverHandler(driverSvc)

	r.Get("/health", healthH.Check)

	r.Route("/api/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify-2fa", authH.VerifyTwoFactor)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", authH.ForgotPassword)
		r.Post("/auth/refresh", authH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/logout", authH.Logout)
			r.Get("/auth/profile", profileH.Get)
			r.Patch("/auth/profile", profileH.Update)
			r.Post("/auth/consent", authH.AcceptConsent)

			// Driver app, only after consent
			r.Group(func(r chi.Router) {
				r.Use(consentMw)

				r.Get("/vehicles/assigned", fleetH.AssignedVehicles)
				r.Get("/vehicles/{id}", fleetH.Vehicle)

				r.Get("/checks/questions", driverH.Questions)
				r.Post("/checks/start", driverH.StartCheck)
				r.Post("/checks/end", driverH.EndCheck)

				r.Get("/trips", fleetH.Trips)
				r.Post("/trips", fleetH.StartTrip)
				r.Get("/trips/active", fleetH.ActiveTrip)
				r.Get("/trips/statistics", fleetH.Statistics)
				r.Post("/trips/{id}/stop", fleetH.StopTrip)
				r.Get("/trips/privacy-zones", driverH.PrivacyZones)
				r.Post("/trips/privacy-zones", driverH.CreatePrivacyZone)

				r.Get("/incidents/types", driverH.IncidentTypes)
				r.Post("/incidents", driverH.ReportIncident)

				r.Get("/chat/conversations", driverH.Conversations)
				r.Get("/chat/conversations/{id}/messages", driverH.Messages)
				r.Post("/chat/conversations/{id}/messages", driverH.SendMessage)

				r.Get("/achievements", driverH.Achievements)
				r.Get("/achievements/streaks", driverH.Streaks)

				r.Post("/emergency/panic", driverH.Panic)

				r.Get("/notifications/settings", driverH.NotificationSettings)
				r.Post("/notifications/register-token", driverH.RegisterPushToken)
			})
		})
	})

	return r
}
