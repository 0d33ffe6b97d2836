package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/domain"
	"request-tracker/internal/repository"
)

func GetRequest(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")

		req, err := repo.GetRequest(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				logger.Warn("GetRequest: request not found", zap.String("request_id", id))
				api.WriteApiError(w, logger, "request "+id+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("GetRequest: failed to get request", zap.Error(err))
			writeError(w, logger, "failed to get request", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string]domain.Request{"request": req})
	}
}
