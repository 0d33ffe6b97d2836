package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"request-tracker/internal/api"
	"request-tracker/internal/domain"
	"request-tracker/internal/idgen"
	"request-tracker/internal/repository"
)

// AddAttachment links an uploaded file to the request. Attachments are
// metadata only and bypass the lifecycle engine; the stage is stamped
// from the request's current status.
func AddAttachment(repo repository.Repository, ids *idgen.Generator, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.AddAttachmentPayload
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("AddAttachment: failed to decode body", zap.Error(err))
			writeError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Filename) == "" {
			api.WriteApiError(w, logger, "filename is required", api.CodeValidation, http.StatusBadRequest)
			return
		}

		actor, err := repo.GetUser(ctx, req.ActorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logger.Warn("AddAttachment: actor not found", zap.String("actor_id", req.ActorID))
				api.WriteApiError(w, logger, "user "+req.ActorID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("AddAttachment: failed to resolve actor", zap.Error(err))
			writeError(w, logger, "failed to resolve actor", http.StatusInternalServerError)
			return
		}

		requestID := chi.URLParam(r, "id")
		current, err := repo.GetRequest(ctx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				logger.Warn("AddAttachment: request not found", zap.String("request_id", requestID))
				api.WriteApiError(w, logger, "request "+requestID+" "+api.ErrNotFound, api.CodeNotFound, http.StatusNotFound)
				return
			}
			logger.Error("AddAttachment: failed to get request", zap.Error(err))
			writeError(w, logger, "failed to get request", http.StatusInternalServerError)
			return
		}

		updated := current.Clone()
		now := time.Now().UTC()
		updated.Attachments = append(updated.Attachments, domain.Attachment{
			ID:             ids.AttachmentID(),
			Filename:       req.Filename,
			URL:            req.URL,
			UploadedBy:     actor.ID,
			UploadedByName: actor.Name,
			UploadedAt:     now,
			Stage:          updated.Status,
			Size:           req.Size,
		})
		updated.UpdatedAt = now

		err = repo.UpdateRequest(ctx, updated)
		if err != nil {
			logger.Error("AddAttachment: failed to persist request", zap.Error(err), zap.String("request_id", requestID))
			writeError(w, logger, "failed to persist request", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, map[string]domain.Request{"request": updated})
		logger.Info("AddAttachment: successfully added attachment", zap.String("request_id", updated.ID), zap.String("filename", req.Filename))
	}
}
