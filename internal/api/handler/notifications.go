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

func ListNotifications(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, logger, "user_id is required", http.StatusBadRequest)
			return
		}

		notifications, err := repo.ListNotifications(ctx, userID)
		if err != nil {
			logger.Error("ListNotifications: failed to list notifications", zap.Error(err))
			writeError(w, logger, "failed to list notifications", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string][]domain.Notification{"notifications": notifications})
		logger.Info("ListNotifications: successfully listed notifications",
			zap.String("user_id", userID),
			zap.Int("count", len(notifications)),
		)
	}
}

func MarkNotificationRead(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		notification, err := repo.MarkNotificationRead(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotificationNotFound) {
				logger.Warn("MarkNotificationRead: notification not found", zap.String("notification_id", id))
				api.WriteApiError(w, logger, "notification "+id+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("MarkNotificationRead: failed to mark notification read", zap.Error(err))
			writeError(w, logger, "failed to mark notification read", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string]domain.Notification{"notification": notification})
		logger.Info("MarkNotificationRead: successfully marked read", zap.String("notification_id", id))
	}
}
