package main

import (
	"net/http"
	"time"

	"complaint-portal/pkg/middleware"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/cors"
)

const (
	maxBodyBytes = 10 << 20 // 10MB request body cap

	createRateLimit = 5
	upvoteRateLimit = 20
	rateLimitWindow = time.Minute
)

func (app *application) routes() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	// Request order: security headers, then CORS, then the body cap.
	standard := alice.New(
		middleware.RecoverPanic,
		middleware.TraceMiddleware,
		middleware.LoggerMiddleware,
		middleware.MetricsMiddleware,
		middleware.SecureHeaders,
		c.Handler,
		middleware.MaxBodyBytes(maxBodyBytes),
	)
	createLimited := standard.Append(
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(createRateLimit, rateLimitWindow)),
	)
	upvoteLimited := standard.Append(
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(upvoteRateLimit, rateLimitWindow)),
	)

	mux := pat.New()

	mux.Post("/api/admin/login", standard.ThenFunc(app.loginHandler))

	mux.Get("/api/complaints", standard.ThenFunc(app.listComplaintsHandler))
	mux.Post("/api/complaints", createLimited.ThenFunc(app.createComplaintHandler))
	mux.Post("/api/complaints/:id/upvote", upvoteLimited.ThenFunc(app.upvoteComplaintHandler))
	mux.Add("PATCH", "/api/complaints/:id/status", standard.Then(middleware.AdminAuthMiddleware(app.updateStatusHandler)))

	mux.Get("/health", standard.ThenFunc(app.healthHandler))
	mux.Get("/metrics", standard.Then(middleware.GetMetricsHandler()))

	mux.Get("/", standard.ThenFunc(app.rootHandler))

	return mux
}
