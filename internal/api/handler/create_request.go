package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository"
)

func CreateRequest(repo repository.Repository, engine *lifecycle.Engine, notify *notifier.Notifier, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.CreateRequestPayload
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("CreateRequest: failed to decode body", zap.Error(err))
			writeError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		actor, err := repo.GetUser(ctx, req.ActorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logger.Warn("CreateRequest: actor not found", zap.String("actor_id", req.ActorID))
				api.WriteApiError(w, logger, "user "+req.ActorID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("CreateRequest: failed to resolve actor", zap.Error(err))
			writeError(w, logger, "failed to resolve actor", http.StatusInternalServerError)
			return
		}

		created, ev, err := engine.Create(actor, lifecycle.CreateRequest{
			Title:               req.Title,
			Description:         req.Description,
			Type:                domain.RequestType(req.Type),
			Priority:            domain.Priority(req.Priority),
			System:              req.System,
			ImplementationScope: req.ImplementationScope,
			Requestors:          req.Requestors,
			LineManager:         req.LineManager,
			DueDate:             req.DueDate,
		})
		if err != nil {
			writeEngineError(w, logger, "CreateRequest", err)
			return
		}

		err = repo.SaveRequest(ctx, created)
		if err != nil {
			if errors.Is(err, repository.ErrRequestAlreadyExists) {
				logger.Warn("CreateRequest: request already exists", zap.Error(err))
				api.WriteApiError(w, logger, "request id already exists", api.CodeRequestExists, http.StatusConflict)
				return
			}
			logger.Error("CreateRequest: failed to save request", zap.Error(err))
			writeError(w, logger, "failed to save request", http.StatusInternalServerError)
			return
		}

		notify.TransitionOccurred(*ev, created)

		respondJSON(w, logger, http.StatusCreated, map[string]domain.Request{"request": created})
		logger.Info("CreateRequest: successfully created request", zap.String("request_id", created.ID))
	}
}
