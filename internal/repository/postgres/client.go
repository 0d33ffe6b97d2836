package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"request-tracker/internal/domain"
	"request-tracker/internal/repository"
)

func New(ctx context.Context, config *Config, logger *zap.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	dsn := buildDSN(config)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Client{
		pool:    pool,
		logger:  logger,
		timeout: config.Timeout,
	}, nil
}

func (c *Client) SaveRequest(ctx context.Context, req domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	exists, err := c.requestExists(ctx, req.ID)
	if err != nil {
		return err
	}
	if exists {
		c.logger.Warn(repository.ErrRequestAlreadyExists.Error(), zap.String("request_id", req.ID))
		return fmt.Errorf("%w: %s", repository.ErrRequestAlreadyExists, req.ID)
	}

	testCases, releases, history, comments, attachments, err := encodeRequest(req)
	if err != nil {
		c.logger.Error("failed to encode request", zap.Error(err), zap.String("request_id", req.ID))
		return fmt.Errorf("failed to encode request: %w", err)
	}

	tag, err := c.pool.Exec(ctx, queryInsertRequest,
		req.ID, req.Title, req.Description, req.Type, req.Priority, req.System, req.Status,
		req.Requestors, req.RequestorNames, req.AssignedDevelopers, req.AssignedDeveloperNames,
		req.CreatedBy, req.CreatedByName, req.LineManager, req.LineManagerName,
		req.ImplementationScope, req.ImpactAnalysis, req.ArchitectureDesign, req.DesignReview,
		req.PostImplementationReview, req.ReleaseNotes, req.UserApprovalJustification,
		testCases, releases, history, comments, attachments,
		req.CreatedAt, req.UpdatedAt, req.DueDate,
	)
	if err != nil {
		c.logger.Error("failed to insert request", zap.Error(err), zap.String("request_id", req.ID))
		return fmt.Errorf("failed to insert request: %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		c.logger.Error("failed to insert request: no rows affected", zap.String("request_id", req.ID))
		return fmt.Errorf("failed to insert request: no rows affected: %s", req.ID)
	}

	c.logger.Info("successfully stored request", zap.String("request_id", req.ID))
	return nil
}

func (c *Client) UpdateRequest(ctx context.Context, req domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	testCases, releases, history, comments, attachments, err := encodeRequest(req)
	if err != nil {
		c.logger.Error("failed to encode request", zap.Error(err), zap.String("request_id", req.ID))
		return fmt.Errorf("failed to encode request: %w", err)
	}

	tag, err := c.pool.Exec(ctx, queryUpdateRequest,
		req.ID, req.Title, req.Description, req.Type, req.Priority, req.System, req.Status,
		req.Requestors, req.RequestorNames, req.AssignedDevelopers, req.AssignedDeveloperNames,
		req.CreatedBy, req.CreatedByName, req.LineManager, req.LineManagerName,
		req.ImplementationScope, req.ImpactAnalysis, req.ArchitectureDesign, req.DesignReview,
		req.PostImplementationReview, req.ReleaseNotes, req.UserApprovalJustification,
		testCases, releases, history, comments, attachments,
		req.CreatedAt, req.UpdatedAt, req.DueDate,
	)
	if err != nil {
		c.logger.Error("failed to update request", zap.Error(err), zap.String("request_id", req.ID))
		return fmt.Errorf("failed to update request: %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		c.logger.Warn(repository.ErrRequestNotFound.Error(), zap.String("request_id", req.ID))
		return fmt.Errorf("%w: %s", repository.ErrRequestNotFound, req.ID)
	}

	c.logger.Info("successfully updated request", zap.String("request_id", req.ID))
	return nil
}

func (c *Client) GetRequest(ctx context.Context, id string) (domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sqlText, args, err := sq.Select(requestColumns...).
		From("request_tracker.requests").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return domain.Request{}, fmt.Errorf("failed to build query: %w", err)
	}

	req, err := scanRequest(c.pool.QueryRow(ctx, sqlText, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrRequestNotFound.Error(), zap.String("request_id", id))
			return domain.Request{}, fmt.Errorf("%w: %s", repository.ErrRequestNotFound, id)
		}
		c.logger.Error("failed to get request", zap.Error(err), zap.String("request_id", id))
		return domain.Request{}, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

func (c *Client) ListRequests(ctx context.Context, filter repository.ListFilter) ([]domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	builder := sq.Select(requestColumns...).
		From("request_tracker.requests").
		OrderBy("created_at desc").
		PlaceholderFormat(sq.Dollar)

	if filter.System != "" {
		builder = builder.Where(sq.Eq{"system": filter.System})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.AssignedDeveloper != "" {
		builder = builder.Where("? = any(assigned_developers)", filter.AssignedDeveloper)
	}

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := c.pool.Query(ctx, sqlText, args...)
	if err != nil {
		c.logger.Error("failed to list requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			c.logger.Error("failed to scan request", zap.Error(err))
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		c.logger.Error("rows error", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return requests, nil
}

func (c *Client) MaxRequestNumber(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var max uint64
	err := c.pool.QueryRow(ctx, queryMaxRequestNumber).Scan(&max)
	if err != nil {
		c.logger.Error("failed to get max request number", zap.Error(err))
		return 0, fmt.Errorf("failed to get max request number: %w", err)
	}

	return max, nil
}

func (c *Client) Close() {
	c.pool.Close()
}

func (c *Client) requestExists(ctx context.Context, id string) (bool, error) {
	var exists bool

	err := c.pool.QueryRow(ctx, queryRequestExists, id).Scan(&exists)
	if err != nil {
		c.logger.Error("failed to check if request exists", zap.Error(err))
		return false, fmt.Errorf("failed to check if request exists: %w", err)
	}

	return exists, nil
}

func buildDSN(config *Config) string {
	dsn := fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s pool_max_conns=%d pool_min_conns=%d",
		config.User,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
		config.MaxConns,
		config.MinConns,
	)

	return dsn
}
