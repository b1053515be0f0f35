package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the contract for trip plan persistence.
type Repository interface {
	SavePlan(ctx context.Context, ownerID, title string, plan models.TripPlan) (*models.SavedTripPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.SavedTripPlan, error)
	ListPlans(ctx context.Context, filter models.PlansFilter) ([]*models.SavedTripPlan, error)
	DeletePlan(ctx context.Context, ownerID string, id uuid.UUID) error
}

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RepositoryImpl struct {
	logger *zap.Logger
	pgpool PgxPool
}

func NewRepositoryImpl(pool PgxPool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pool,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// observeQuery feeds the DB instruments for one query.
func observeQuery(ctx context.Context, operation string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("operation", operation))
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DBQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

// SavePlan stores a finished plan as a JSON document and returns the
// stored row with its assigned identifier.
func (r *RepositoryImpl) SavePlan(ctx context.Context, ownerID, title string, plan models.TripPlan) (*models.SavedTripPlan, error) {
	ctx, span := otel.Tracer("PlansRepo").Start(ctx, "SavePlan", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "trip_plans"),
	))
	defer span.End()

	l := r.logger.With(zap.String("method", "SavePlan"), zap.String("ownerID", ownerID))

	document, err := json.Marshal(plan)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Plan encoding failed")
		return nil, fmt.Errorf("encoding trip plan: %w", err)
	}

	saved := models.SavedTripPlan{OwnerID: ownerID, Title: title, Plan: plan}
	query := `
        INSERT INTO trip_plans (owner_id, title, document, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	start := time.Now()
	err = r.pgpool.QueryRow(ctx, query, ownerID, title, document).Scan(
		&saved.ID,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	observeQuery(ctx, "insert_plan", start, err)
	if err != nil {
		l.Error("Failed to insert trip plan", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error saving trip plan: %w", err)
	}

	l.Info("Trip plan saved", zap.String("planID", saved.ID.String()))
	span.SetAttributes(attribute.String("db.plan.id", saved.ID.String()))
	span.SetStatus(codes.Ok, "Plan saved")
	return &saved, nil
}

func (r *RepositoryImpl) GetPlan(ctx context.Context, id uuid.UUID) (*models.SavedTripPlan, error) {
	ctx, span := otel.Tracer("PlansRepo").Start(ctx, "GetPlan", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "trip_plans"),
		attribute.String("db.plan.id", id.String()),
	))
	defer span.End()

	l := r.logger.With(zap.String("method", "GetPlan"), zap.String("planID", id.String()))

	query := `
        SELECT id, owner_id, title, document, created_at, updated_at
        FROM trip_plans
        WHERE id = $1`

	var saved models.SavedTripPlan
	var document []byte
	start := time.Now()
	err := r.pgpool.QueryRow(ctx, query, id).Scan(
		&saved.ID,
		&saved.OwnerID,
		&saved.Title,
		&document,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	observeQuery(ctx, "get_plan", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Plan not found")
			return nil, fmt.Errorf("trip plan %s: %w", id, models.ErrNotFound)
		}
		l.Error("Failed to fetch trip plan", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching trip plan: %w", err)
	}

	if err := json.Unmarshal(document, &saved.Plan); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Plan decoding failed")
		return nil, fmt.Errorf("decoding trip plan document: %w", err)
	}

	span.SetStatus(codes.Ok, "Plan fetched")
	return &saved, nil
}

// ListPlans returns the owner's saved plans, newest first by default.
func (r *RepositoryImpl) ListPlans(ctx context.Context, filter models.PlansFilter) ([]*models.SavedTripPlan, error) {
	ctx, span := otel.Tracer("PlansRepo").Start(ctx, "ListPlans", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "trip_plans"),
	))
	defer span.End()

	l := r.logger.With(zap.String("method", "ListPlans"), zap.String("ownerID", filter.OwnerID))

	builder := psql.
		Select("id", "owner_id", "title", "document", "created_at", "updated_at").
		From("trip_plans").
		Where(sq.Eq{"owner_id": filter.OwnerID})

	sortBy := "created_at"
	if filter.SortBy == "title" {
		sortBy = "title"
	}
	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}
	builder = builder.OrderBy(sortBy + " " + order)

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("building list query: %w", err)
	}

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	observeQuery(ctx, "list_plans", start, err)
	if err != nil {
		l.Error("Failed to list trip plans", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error listing trip plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.SavedTripPlan
	for rows.Next() {
		var saved models.SavedTripPlan
		var document []byte
		if err := rows.Scan(&saved.ID, &saved.OwnerID, &saved.Title, &document, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scanning trip plan row: %w", err)
		}
		if err := json.Unmarshal(document, &saved.Plan); err != nil {
			return nil, fmt.Errorf("decoding trip plan document: %w", err)
		}
		plans = append(plans, &saved)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterating trip plan rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.plans.count", len(plans)))
	span.SetStatus(codes.Ok, "Plans listed")
	return plans, nil
}

func (r *RepositoryImpl) DeletePlan(ctx context.Context, ownerID string, id uuid.UUID) error {
	ctx, span := otel.Tracer("PlansRepo").Start(ctx, "DeletePlan", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "trip_plans"),
		attribute.String("db.plan.id", id.String()),
	))
	defer span.End()

	l := r.logger.With(zap.String("method", "DeletePlan"), zap.String("planID", id.String()))

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM trip_plans WHERE id = $1 AND owner_id = $2`, id, ownerID)
	observeQuery(ctx, "delete_plan", start, err)
	if err != nil {
		l.Error("Failed to delete trip plan", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting trip plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Plan not found")
		return fmt.Errorf("trip plan %s: %w", id, models.ErrNotFound)
	}

	l.Info("Trip plan deleted")
	span.SetStatus(codes.Ok, "Plan deleted")
	return nil
}
