package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/repository"
)

type dashboardMetricsResponse struct {
	Gauges    lifecycle.Gauges `json:"gauges"`
	TopSystem string           `json:"top_system"`
	DueSoon   []domain.Request `json:"due_soon"`
}

// DashboardMetrics recomputes the dashboard gauges from the full request
// collection. Gauges are derived, never stored.
func DashboardMetrics(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		requests, err := repo.ListRequests(ctx, repository.ListFilter{})
		if err != nil {
			logger.Error("DashboardMetrics: failed to list requests", zap.Error(err))
			writeError(w, logger, "failed to list requests", http.StatusInternalServerError)
			return
		}

		role := domain.Role(r.URL.Query().Get("role"))
		userID := r.URL.Query().Get("user_id")

		days := 7
		if raw := r.URL.Query().Get("due_within"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				writeError(w, logger, "due_within must be a non-negative integer", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		now := time.Now().UTC()
		resp := dashboardMetricsResponse{
			Gauges:    lifecycle.ComputeGauges(requests, role, userID, now),
			TopSystem: lifecycle.TopSystem(requests),
			DueSoon:   lifecycle.DueWithin(requests, days, now),
		}

		respondJSON(w, logger, http.StatusOK, resp)
		logger.Info("DashboardMetrics: successfully computed metrics", zap.String("role", string(role)))
	}
}
