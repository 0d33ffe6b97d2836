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

func ListUsers(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		users, err := repo.ListUsers(ctx)
		if err != nil {
			logger.Error("ListUsers: failed to list users", zap.Error(err))
			writeError(w, logger, "failed to list users", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string][]domain.User{"users": users})
		logger.Info("ListUsers: successfully listed users", zap.Int("count", len(users)))
	}
}

func GetUser(repo repository.Repository, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		user, err := repo.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logger.Warn("GetUser: user not found", zap.String("user_id", id))
				api.WriteApiError(w, logger, "user "+id+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("GetUser: failed to get user", zap.Error(err))
			writeError(w, logger, "failed to get user", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string]domain.User{"user": user})
		logger.Info("GetUser: successfully got user", zap.String("user_id", id))
	}
}
