// Package notifier projects lifecycle transition events into per-user
// notifications. It is a one-way read model: the lifecycle engine never
// sees it, and delivery failures are logged, not surfaced.
package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
)

type Store interface {
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error
}

type IDSource interface {
	NotificationID() string
}

type Notifier struct {
	store   Store
	ids     IDSource
	logger  *zap.Logger
	timeout time.Duration
}

func New(store Store, ids IDSource, logger *zap.Logger, timeout time.Duration) *Notifier {
	return &Notifier{
		store:   store,
		ids:     ids,
		logger:  logger,
		timeout: timeout,
	}
}

// TransitionOccurred fans the event out asynchronously. Callers fire and
// forget.
func (n *Notifier) TransitionOccurred(ev lifecycle.TransitionEvent, req domain.Request) {
	notifications := n.Project(ev, req)
	if len(notifications) == 0 {
		return
	}

	go n.save(notifications)
}

// CommentAdded notifies everyone involved with the request except the
// commenter. Comments change no state, so there is no transition event
// to project from.
func (n *Notifier) CommentAdded(req domain.Request, comment domain.Comment) {
	var notifications []domain.Notification
	for _, userID := range participants(req) {
		if userID == comment.UserID {
			continue
		}
		notifications = append(notifications, domain.Notification{
			ID:           n.ids.NotificationID(),
			Kind:         domain.NotificationComment,
			UserID:       userID,
			RequestID:    req.ID,
			RequestTitle: req.Title,
			Message:      comment.UserName + " commented on this request",
			CreatedAt:    comment.CreatedAt,
		})
	}
	if len(notifications) == 0 {
		return
	}

	go n.save(notifications)
}

// Project derives the notification batch for a single transition.
func (n *Notifier) Project(ev lifecycle.TransitionEvent, req domain.Request) []domain.Notification {
	build := func(kind domain.NotificationKind, userID, message string) domain.Notification {
		return domain.Notification{
			ID:           n.ids.NotificationID(),
			Kind:         kind,
			UserID:       userID,
			RequestID:    ev.RequestID,
			RequestTitle: ev.RequestTitle,
			Message:      message,
			CreatedAt:    ev.At,
		}
	}

	var out []domain.Notification
	switch {
	case ev.From == "":
		out = append(out, build(domain.NotificationApproval, req.LineManager, "New request awaiting your approval"))

	case ev.To == domain.StatusPendingUserApproval:
		for _, dev := range req.AssignedDevelopers {
			out = append(out, build(domain.NotificationAssignment, dev, "You have been assigned to this request"))
		}
		for _, userID := range req.Requestors {
			out = append(out, build(domain.NotificationApproval, userID, "Request awaiting your approval"))
		}

	case ev.To == domain.StatusUATSignoff:
		for _, userID := range req.Requestors {
			out = append(out, build(domain.NotificationApproval, userID, "Request is ready for UAT sign-off"))
		}

	default:
		for _, userID := range participants(req) {
			if userID == ev.ActorID {
				continue
			}
			out = append(out, build(domain.NotificationStatusUpdate, userID, "Request status changed to "+string(ev.To)))
		}
	}

	return out
}

func (n *Notifier) save(notifications []domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.store.SaveNotifications(ctx, notifications); err != nil {
		n.logger.Error("failed to save notifications", zap.Error(err), zap.Int("count", len(notifications)))
	}
}

// participants lists requestors, assigned developers and the line
// manager, deduplicated.
func participants(req domain.Request) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}

	for _, id := range req.Requestors {
		add(id)
	}
	for _, id := range req.AssignedDevelopers {
		add(id)
	}
	add(req.LineManager)

	return out
}
