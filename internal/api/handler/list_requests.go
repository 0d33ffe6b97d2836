package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/repository"
)

// ListRequests serves both the full listing and search. With
// view=dashboard the collection is narrowed to the role's queue first;
// q then applies either a substring match or a key=value filter set.
func ListRequests(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query, err := lifecycle.ParseQuery(r.URL.Query().Get("q"))
		if err != nil {
			writeEngineError(w, logger, "ListRequests", err)
			return
		}

		requests, err := repo.ListRequests(ctx, repository.ListFilter{
			System: r.URL.Query().Get("system"),
		})
		if err != nil {
			logger.Error("ListRequests: failed to list requests", zap.Error(err))
			writeError(w, logger, "failed to list requests", http.StatusInternalServerError)
			return
		}

		if r.URL.Query().Get("view") == "dashboard" {
			role := domain.Role(r.URL.Query().Get("role"))
			userID := r.URL.Query().Get("user_id")
			requests = lifecycle.DashboardView(requests, role, userID)
		}

		if !query.Empty() {
			filtered := make([]domain.Request, 0, len(requests))
			for _, req := range requests {
				if query.Match(req) {
					filtered = append(filtered, req)
				}
			}
			requests = filtered
		}

		respondJSON(w, logger, http.StatusOK, map[string][]domain.Request{"requests": requests})
		logger.Info("ListRequests: successfully listed requests", zap.Int("count", len(requests)))
	}
}
