package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository"
)

func ProductionRelease(repo repository.Repository, engine *lifecycle.Engine, notify *notifier.Notifier, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.ProductionReleasePayload
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("ProductionRelease: failed to decode body", zap.Error(err))
			writeError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		d := actionDeps{repo: repo, engine: engine, notify: notify, logger: logger}
		applyAction(ctx, w, d, "ProductionRelease", chi.URLParam(r, "id"), req.ActorID, lifecycle.ReleaseToProduction{
			Comment: req.Comment,
		})
	}
}
