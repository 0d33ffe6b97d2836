package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/repository"
)

func (c *Client) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		c.logger.Error("failed to start transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, n := range notifications {
		_, err = tx.Exec(ctx, queryInsertNotification,
			n.ID, n.Kind, n.UserID, n.RequestID, n.RequestTitle, n.Message, n.Read, n.CreatedAt)
		if err != nil {
			c.logger.Error("failed to insert notification", zap.Error(err), zap.String("notification_id", n.ID))
			return fmt.Errorf("failed to insert notification: %s: %w", n.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		c.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (c *Client) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.pool.Query(ctx, queryListNotifications, userID)
	if err != nil {
		c.logger.Error("failed to list notifications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		err = rows.Scan(&n.ID, &n.Kind, &n.UserID, &n.RequestID, &n.RequestTitle, &n.Message, &n.Read, &n.CreatedAt)
		if err != nil {
			c.logger.Error("failed to scan notification", zap.Error(err))
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		c.logger.Error("rows error", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var n domain.Notification
	err := c.pool.QueryRow(ctx, queryMarkNotificationRead, id).
		Scan(&n.ID, &n.Kind, &n.UserID, &n.RequestID, &n.RequestTitle, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrNotificationNotFound.Error(), zap.String("notification_id", id))
			return domain.Notification{}, fmt.Errorf("%w: %s", repository.ErrNotificationNotFound, id)
		}
		c.logger.Error("failed to mark notification read", zap.Error(err), zap.String("notification_id", id))
		return domain.Notification{}, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return n, nil
}
