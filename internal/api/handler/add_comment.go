package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository"
)

// AddComment appends a collaboration comment. Comments are allowed in
// any open state and never touch the status history, but they notify
// every other participant.
func AddComment(repo repository.Repository, engine *lifecycle.Engine, notify *notifier.Notifier, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.AddCommentPayload
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("AddComment: failed to decode body", zap.Error(err))
			writeError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		actor, err := repo.GetUser(ctx, req.ActorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logger.Warn("AddComment: actor not found", zap.String("actor_id", req.ActorID))
				api.WriteApiError(w, logger, "user "+req.ActorID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("AddComment: failed to resolve actor", zap.Error(err))
			writeError(w, logger, "failed to resolve actor", http.StatusInternalServerError)
			return
		}

		requestID := chi.URLParam(r, "id")
		current, err := repo.GetRequest(ctx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				logger.Warn("AddComment: request not found", zap.String("request_id", requestID))
				api.WriteApiError(w, logger, "request "+requestID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("AddComment: failed to get request", zap.Error(err))
			writeError(w, logger, "failed to get request", http.StatusInternalServerError)
			return
		}

		updated, _, err := engine.Apply(current, actor, lifecycle.AddComment{Text: req.Text})
		if err != nil {
			writeEngineError(w, logger, "AddComment", err)
			return
		}

		err = repo.UpdateRequest(ctx, updated)
		if err != nil {
			logger.Error("AddComment: failed to persist request", zap.Error(err), zap.String("request_id", requestID))
			writeError(w, logger, "failed to persist request", http.StatusInternalServerError)
			return
		}

		notify.CommentAdded(updated, updated.Comments[len(updated.Comments)-1])

		respondJSON(w, logger, http.StatusOK, map[string]domain.Request{"request": updated})
		logger.Info("AddComment: successfully added comment", zap.String("request_id", updated.ID))
	}
}
