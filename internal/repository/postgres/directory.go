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

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.pool.Query(ctx, queryListUsers)
	if err != nil {
		c.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Team); err != nil {
			c.logger.Error("failed to scan user", zap.Error(err))
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		c.logger.Error("rows error", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var u domain.User
	err := c.pool.QueryRow(ctx, queryGetUser, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Team)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrUserNotFound.Error(), zap.String("user_id", id))
			return domain.User{}, fmt.Errorf("%w: %s", repository.ErrUserNotFound, id)
		}
		c.logger.Error("failed to get user", zap.Error(err), zap.String("user_id", id))
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (c *Client) ListScenarios(ctx context.Context, system string) ([]domain.SystemScenario, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if system == "" {
		rows, err = c.pool.Query(ctx, queryListScenarios)
	} else {
		rows, err = c.pool.Query(ctx, queryListScenariosBySystem, system)
	}
	if err != nil {
		c.logger.Error("failed to list scenarios", zap.Error(err))
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := make([]domain.SystemScenario, 0)
	for rows.Next() {
		var s domain.SystemScenario
		if err = rows.Scan(&s.ID, &s.SystemName, &s.ScenarioName, &s.Description); err != nil {
			c.logger.Error("failed to scan scenario", zap.Error(err))
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	if err = rows.Err(); err != nil {
		c.logger.Error("rows error", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return scenarios, nil
}
