package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/rules"
	"github.com/UnknownOlympus/aeolus/internal/site"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of a pgx pool the repository needs. Both
// *pgxpool.Pool and pgxmock pools satisfy it.
type Database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchSites(ctx context.Context) ([]site.Site, error)
	SaveSite(ctx context.Context, s site.Site) (site.Site, error)
	RecordDecision(
		ctx context.Context,
		siteID int64,
		key site.Key,
		wind models.WindObservation,
		fact rules.Fact,
		decision rules.Decision,
	) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
