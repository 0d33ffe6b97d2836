package handler

import (
	"context"
	"encoding/json"
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

// CompleteSignoff grades the test cases in a single batch and, if the
// grading passes the engine's checks, closes the UAT phase.
func CompleteSignoff(repo repository.Repository, engine *lifecycle.Engine, notify *notifier.Notifier, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req api.CompleteSignoffPayload
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("CompleteSignoff: failed to decode body", zap.Error(err))
			writeError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		grades := make(map[string]lifecycle.TestCaseGrade, len(req.Grades))
		for id, g := range req.Grades {
			grades[id] = lifecycle.TestCaseGrade{
				Status:  domain.TestCaseStatus(g.Status),
				Comment: g.Comment,
			}
		}

		d := actionDeps{repo: repo, engine: engine, notify: notify, logger: logger}
		applyAction(ctx, w, d, "CompleteSignoff", chi.URLParam(r, "id"), req.ActorID, lifecycle.CompleteSignoff{
			Grades:        grades,
			Justification: req.Justification,
			Comment:       req.Comment,
		})
	}
}
