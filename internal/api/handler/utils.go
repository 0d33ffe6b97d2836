package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository"
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, logger *zap.Logger, errMessage string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Status:  statusCode,
		Message: errMessage,
	}

	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		logger.Error("writeError: failed to encode response", zap.Error(err))
	}
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Error("respondJSON: failed to encode response", zap.Error(err))
	}
}

// writeEngineError maps the lifecycle error taxonomy onto the JSON error
// envelope.
func writeEngineError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthorizationError
		transitionErr *domain.InvalidTransitionError
		notFoundErr   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Warn(op+": validation failed", zap.Error(err))
		api.WriteApiError(w, logger, validationErr.Error(), api.CodeValidation, http.StatusBadRequest)
	case errors.As(err, &authErr):
		logger.Warn(op+": not permitted", zap.Error(err))
		api.WriteApiError(w, logger, authErr.Error(), api.CodeForbidden, http.StatusForbidden)
	case errors.As(err, &transitionErr):
		logger.Warn(op+": invalid transition", zap.Error(err))
		api.WriteApiError(w, logger, transitionErr.Error(), api.CodeInvalidTransition, http.StatusConflict)
	case errors.As(err, &notFoundErr):
		logger.Warn(op+": not found", zap.Error(err))
		api.WriteApiError(w, logger, notFoundErr.Error(), api.CodeNotFound, http.StatusNotFound)
	default:
		logger.Error(op+": unexpected error", zap.Error(err))
		writeError(w, logger, "internal error", http.StatusInternalServerError)
	}
}

type actionDeps struct {
	repo   repository.Repository
	engine *lifecycle.Engine
	notify *notifier.Notifier
	logger *zap.Logger
}

// applyAction is the shared load-apply-persist-notify path for every
// lifecycle action handler.
func applyAction(ctx context.Context, w http.ResponseWriter, d actionDeps, op, requestID, actorID string, action lifecycle.Action) {
	actor, err := d.repo.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			d.logger.Warn(op+": actor not found", zap.String("actor_id", actorID))
			api.WriteApiError(w, d.logger, "user "+actorID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
			return
		}
		d.logger.Error(op+": failed to resolve actor", zap.Error(err))
		writeError(w, d.logger, "failed to resolve actor", http.StatusInternalServerError)
		return
	}

	current, err := d.repo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			d.logger.Warn(op+": request not found", zap.String("request_id", requestID))
			api.WriteApiError(w, d.logger, "request "+requestID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
			return
		}
		d.logger.Error(op+": failed to get request", zap.Error(err))
		writeError(w, d.logger, "failed to get request", http.StatusInternalServerError)
		return
	}

	updated, ev, err := d.engine.Apply(current, actor, action)
	if err != nil {
		writeEngineError(w, d.logger, op, err)
		return
	}

	err = d.repo.UpdateRequest(ctx, updated)
	if err != nil {
		d.logger.Error(op+": failed to persist request", zap.Error(err), zap.String("request_id", requestID))
		writeError(w, d.logger, "failed to persist request", http.StatusInternalServerError)
		return
	}

	if ev != nil {
		d.notify.TransitionOccurred(*ev, updated)
	}

	respondJSON(w, d.logger, http.StatusOK, map[string]domain.Request{"request": updated})
	d.logger.Info(op+": successfully applied",
		zap.String("request_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
}
