package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"request-tracker/internal/api/handler"
	"request-tracker/internal/idgen"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/logger"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository"
)

type Config struct {
	Host            string        `env:"HTTP_HOST" env-required:"true"`
	Port            int           `env:"HTTP_PORT" env-required:"true"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

func NewRouter(repo repository.Repository, engine *lifecycle.Engine, notify *notifier.Notifier, ids *idgen.Generator, log *zap.Logger, srvTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.MiddlewareLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/requests", func(r chi.Router) {
		r.Post("/", handler.CreateRequest(repo, engine, notify, srvTimeout, log))
		r.Get("/", handler.ListRequests(repo, srvTimeout, log))
		r.Get("/{id}", handler.GetRequest(repo, srvTimeout, log))

		r.Post("/{id}/manager-decision", handler.ManagerDecision(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/user-decision", handler.UserDecision(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/test-cases", handler.SubmitTestCases(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/test-cases/review", handler.ReviewTestCases(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/design", handler.SubmitDesign(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/releases", handler.AddRelease(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/signoff", handler.SubmitSignoff(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/signoff/complete", handler.CompleteSignoff(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/cab", handler.PromoteCAB(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/production-release", handler.ProductionRelease(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/complete", handler.CompleteRequest(repo, engine, notify, srvTimeout, log))

		r.Post("/{id}/comments", handler.AddComment(repo, engine, notify, srvTimeout, log))
		r.Post("/{id}/attachments", handler.AddAttachment(repo, ids, srvTimeout, log))
	})

	router.Get("/dashboard/metrics", handler.DashboardMetrics(repo, srvTimeout, log))
	router.Get("/scenarios", handler.ListScenarios(repo, srvTimeout, log))

	router.Get("/users", handler.ListUsers(repo, srvTimeout, log))
	router.Get("/users/{id}", handler.GetUser(repo, srvTimeout, log))

	router.Get("/notifications", handler.ListNotifications(repo, srvTimeout, log))
	router.Post("/notifications/{id}/read", handler.MarkNotificationRead(repo, srvTimeout, log))

	return router
}
