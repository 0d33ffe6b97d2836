package repository

import (
	"context"
	"errors"

	"request-tracker/internal/domain"
)

var (
	ErrRequestAlreadyExists = errors.New("request already exists")
	ErrRequestNotFound      = errors.New("request not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ListFilter narrows request listings at the storage layer. The zero
// value lists everything.
type ListFilter struct {
	System            string
	Statuses          []domain.Status
	AssignedDeveloper string
}

type Repository interface {
	SaveRequest(ctx context.Context, req domain.Request) error
	UpdateRequest(ctx context.Context, req domain.Request) error
	GetRequest(ctx context.Context, id string) (domain.Request, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]domain.Request, error)
	MaxRequestNumber(ctx context.Context) (uint64, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)

	ListScenarios(ctx context.Context, system string) ([]domain.SystemScenario, error)

	SaveNotifications(ctx context.Context, notifications []domain.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error)

	Close()
}
