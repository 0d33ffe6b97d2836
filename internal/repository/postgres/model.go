package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"request-tracker/internal/domain"
)

type Config struct {
	Host     string        `env:"POSTGRES_HOST" env-required:"true"`
	Port     string        `env:"POSTGRES_PORT" env-required:"true"`
	User     string        `env:"POSTGRES_USER" env-required:"true"`
	Password string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database string        `env:"POSTGRES_DATABASE" env-required:"true"`
	Timeout  time.Duration `env:"POSTGRES_TIMEOUT" env-default:"5s"`
	MaxConns int           `env:"POSTGRES_MAX_CONNECTIONS" env-default:"10"`
	MinConns int           `env:"POSTGRES_MIN_CONNECTIONS" env-default:"2"`
}

type Client struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	timeout time.Duration
}

// requestColumns matches the order scanRequest reads in.
var requestColumns = []string{
	"id", "title", "description", "type", "priority", "system", "status",
	"requestors", "requestor_names", "assigned_developers", "assigned_developer_names",
	"created_by", "created_by_name", "line_manager", "line_manager_name",
	"implementation_scope", "impact_analysis", "architecture_design", "design_review",
	"post_implementation_review", "release_notes", "user_approval_justification",
	"test_cases", "releases", "status_history", "comments", "attachments",
	"created_at", "updated_at", "due_date",
}

func scanRequest(row pgx.Row) (domain.Request, error) {
	var (
		r           domain.Request
		testCases   []byte
		releases    []byte
		history     []byte
		comments    []byte
		attachments []byte
	)

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Type, &r.Priority, &r.System, &r.Status,
		&r.Requestors, &r.RequestorNames, &r.AssignedDevelopers, &r.AssignedDeveloperNames,
		&r.CreatedBy, &r.CreatedByName, &r.LineManager, &r.LineManagerName,
		&r.ImplementationScope, &r.ImpactAnalysis, &r.ArchitectureDesign, &r.DesignReview,
		&r.PostImplementationReview, &r.ReleaseNotes, &r.UserApprovalJustification,
		&testCases, &releases, &history, &comments, &attachments,
		&r.CreatedAt, &r.UpdatedAt, &r.DueDate,
	)
	if err != nil {
		return domain.Request{}, err
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{testCases, &r.TestCases},
		{releases, &r.Releases},
		{history, &r.StatusHistory},
		{comments, &r.Comments},
		{attachments, &r.Attachments},
	} {
		if err = json.Unmarshal(col.raw, col.dst); err != nil {
			return domain.Request{}, fmt.Errorf("failed to decode request column: %w", err)
		}
	}

	return r, nil
}

func encodeRequest(r domain.Request) (testCases, releases, history, comments, attachments []byte, err error) {
	if testCases, err = json.Marshal(r.TestCases); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if releases, err = json.Marshal(r.Releases); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if history, err = json.Marshal(r.StatusHistory); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if comments, err = json.Marshal(r.Comments); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if attachments, err = json.Marshal(r.Attachments); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	return testCases, releases, history, comments, attachments, nil
}
