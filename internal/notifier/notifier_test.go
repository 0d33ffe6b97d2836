package notifier

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/lifecycle"
)

type recordingStore struct {
	mu    sync.Mutex
	saved []domain.Notification
}

func (s *recordingStore) SaveNotifications(_ context.Context, notifications []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, notifications...)
	return nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type seqIDs struct {
	n int
}

func (g *seqIDs) NotificationID() string {
	g.n++
	return fmt.Sprintf("n-%d", g.n)
}

func fixture() domain.Request {
	return domain.Request{
		ID:                 "REQ-001",
		Title:              "Add export functionality",
		Status:             domain.StatusInDevelopment,
		Requestors:         []string{"u4", "u5"},
		AssignedDevelopers: []string{"u2"},
		LineManager:        "u1",
	}
}

func event(from, to domain.Status, actorID string) lifecycle.TransitionEvent {
	return lifecycle.TransitionEvent{
		RequestID:    "REQ-001",
		RequestTitle: "Add export functionality",
		From:         from,
		To:           to,
		ActorID:      actorID,
		At:           time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestNotifier(store Store) *Notifier {
	return New(store, &seqIDs{}, zap.NewNop(), time.Second)
}

func TestProjectCreation(t *testing.T) {
	n := newTestNotifier(&recordingStore{})

	got := n.Project(event("", domain.StatusPendingManagerApproval, "u4"), fixture())
	require.Len(t, got, 1)
	assert.Equal(t, domain.NotificationApproval, got[0].Kind)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, "New request awaiting your approval", got[0].Message)
	assert.Equal(t, "REQ-001", got[0].RequestID)
}

func TestProjectManagerApproval(t *testing.T) {
	n := newTestNotifier(&recordingStore{})

	got := n.Project(event(domain.StatusPendingManagerApproval, domain.StatusPendingUserApproval, "u1"), fixture())
	require.Len(t, got, 3)

	assert.Equal(t, domain.NotificationAssignment, got[0].Kind)
	assert.Equal(t, "u2", got[0].UserID)

	assert.Equal(t, domain.NotificationApproval, got[1].Kind)
	assert.Equal(t, "u4", got[1].UserID)
	assert.Equal(t, domain.NotificationApproval, got[2].Kind)
	assert.Equal(t, "u5", got[2].UserID)
}

func TestProjectUATSignoff(t *testing.T) {
	n := newTestNotifier(&recordingStore{})

	got := n.Project(event(domain.StatusUATRelease, domain.StatusUATSignoff, "u2"), fixture())
	require.Len(t, got, 2)
	for _, notification := range got {
		assert.Equal(t, domain.NotificationApproval, notification.Kind)
		assert.Equal(t, "Request is ready for UAT sign-off", notification.Message)
	}
	assert.Equal(t, "u4", got[0].UserID)
	assert.Equal(t, "u5", got[1].UserID)
}

// Plain status changes go to every participant except the actor.
func TestProjectStatusUpdateSkipsActor(t *testing.T) {
	n := newTestNotifier(&recordingStore{})

	got := n.Project(event(domain.StatusPendingDesignReview, domain.StatusInDevelopment, "u2"), fixture())
	require.Len(t, got, 3)
	for _, notification := range got {
		assert.Equal(t, domain.NotificationStatusUpdate, notification.Kind)
		assert.NotEqual(t, "u2", notification.UserID)
		assert.Contains(t, notification.Message, string(domain.StatusInDevelopment))
	}
}

func TestProjectDeduplicatesParticipants(t *testing.T) {
	n := newTestNotifier(&recordingStore{})

	req := fixture()
	// the line manager is also a requestor
	req.Requestors = []string{"u1", "u4"}

	got := n.Project(event(domain.StatusCABReview, domain.StatusProductionRelease, "u2"), req)
	seen := make(map[string]int)
	for _, notification := range got {
		seen[notification.UserID]++
	}
	assert.Equal(t, map[string]int{"u1": 1, "u4": 1}, seen)
}

func TestTransitionOccurredPersists(t *testing.T) {
	store := &recordingStore{}
	n := newTestNotifier(store)

	n.TransitionOccurred(event("", domain.StatusPendingManagerApproval, "u4"), fixture())

	assert.Eventually(t, func() bool { return store.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestCommentAddedNotifiesOthers(t *testing.T) {
	store := &recordingStore{}
	n := newTestNotifier(store)

	n.CommentAdded(fixture(), domain.Comment{
		ID:        "c-1",
		RequestID: "REQ-001",
		UserID:    "u2",
		UserName:  "Sarah Johnson",
		Content:   "Started on this",
		CreatedAt: time.Now(),
	})

	assert.Eventually(t, func() bool { return store.count() == 3 }, time.Second, 10*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, notification := range store.saved {
		assert.Equal(t, domain.NotificationComment, notification.Kind)
		assert.NotEqual(t, "u2", notification.UserID)
		assert.Equal(t, "Sarah Johnson commented on this request", notification.Message)
	}
}
