package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls query spans
type DBTracingConfig struct {
	DBSystem        string // postgresql or sqlite
	LogFullSQL      bool   // include bound variables; dev only
	SlowQueryThresh time.Duration
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm plus callbacks that flag slow queries on
// the span and in the log
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	st := &slowQueryTracker{thresh: cfg.SlowQueryThresh, logger: logger}
	if err := registerAround(db, "shop_timing", st.before, st.after); err != nil {
		return err
	}
	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

type slowQueryTracker struct {
	thresh time.Duration
	logger *zap.Logger
}

func (s *slowQueryTracker) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (s *slowQueryTracker) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	if elapsed <= s.thresh {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
	s.logger.Warn("Slow query",
		zap.String("table", db.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", db.Statement.RowsAffected),
		zap.String("trace_id", TraceID(ctx)),
	)
}

type registrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// registerAround hooks before/after callbacks around every GORM operation.
// The after hook runs before otelgorm ends its span.
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	hooks := []struct {
		r    registrar
		name string
		fn   func(*gorm.DB)
	}{
		{cb.Create().Before("gorm:create"), "before_create", before},
		{cb.Query().Before("gorm:query"), "before_query", before},
		{cb.Update().Before("gorm:update"), "before_update", before},
		{cb.Delete().Before("gorm:delete"), "before_delete", before},
		{cb.Row().Before("gorm:row"), "before_row", before},
		{cb.Raw().Before("gorm:raw"), "before_raw", before},
		{cb.Create().After("gorm:create").Before("otel:after:create"), "after_create", after},
		{cb.Query().After("gorm:query").Before("otel:after:query"), "after_query", after},
		{cb.Update().After("gorm:update").Before("otel:after:update"), "after_update", after},
		{cb.Delete().After("gorm:delete").Before("otel:after:delete"), "after_delete", after},
		{cb.Row().After("gorm:row").Before("otel:after:row"), "after_row", after},
		{cb.Raw().After("gorm:raw").Before("otel:after:raw"), "after_raw", after},
	}
	for _, h := range hooks {
		if err := h.r.Register(prefix+":"+h.name, h.fn); err != nil {
			return err
		}
	}
	return nil
}
