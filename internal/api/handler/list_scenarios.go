package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/repository"
)

func ListScenarios(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		scenarios, err := repo.ListScenarios(ctx, r.URL.Query().Get("system"))
		if err != nil {
			logger.Error("ListScenarios: failed to list scenarios", zap.Error(err))
			writeError(w, logger, "failed to list scenarios", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string][]domain.SystemScenario{"scenarios": scenarios})
		logger.Info("ListScenarios: successfully listed scenarios", zap.Int("count", len(scenarios)))
	}
}
