package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/solve-square/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module records every solved equation in SQLite and serves the history.
type Module struct {
	db      *gorm.DB
	repo    *Repository
	dbPath  string
	dbDebug bool
	logger  types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a history module backed by the SQLite file at dbPath.
func NewModule(dbPath string, dbDebug bool, logger types.Logger) *Module {
	return &Module{
		dbPath:  dbPath,
		dbDebug: dbDebug,
		logger:  logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "history"
}

// RegisterEventConsumers subscribes to EquationSolved events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.EquationSolvedV1, m.handleEquationSolved, m); err != nil {
		return fmt.Errorf("failed to register EquationSolved consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"EquationSolved.v1"})
	return nil
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.history.".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-solutions", json.Unmarshal, json.Marshal, m.listSolutions,
	); err != nil {
		return fmt.Errorf("failed to register list-solutions service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-solution", json.Unmarshal, json.Marshal, m.getSolution,
	); err != nil {
		return fmt.Errorf("failed to register get-solution service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "stats", json.Unmarshal, json.Marshal, m.stats,
	); err != nil {
		return fmt.Errorf("failed to register stats service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", []string{
			"services.history.list-solutions",
			"services.history.get-solution",
			"services.history.stats",
		})
	return nil
}

// Start opens the database and runs migrations.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if m.dbDebug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Info("History module started", "db_path", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("History module stopped")
	return nil
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// handleEquationSolved stores one record per event. Storage failures are
// returned so the event can be redelivered.
func (m *Module) handleEquationSolved(ctx context.Context, event events.EquationSolvedEvent, _ *mono.Msg) error {
	if m.repo == nil {
		return errors.New("history module not started")
	}

	rec := NewRecord(event)
	if err := m.repo.Create(ctx, rec); err != nil {
		m.logger.Error("Failed to record solution", "equation", event.Equation.String(), "error", err)
		return err
	}

	m.logger.Debug("Recorded solution",
		"id", rec.ID,
		"equation", event.Equation.String(),
		"kind", rec.Kind,
		"cached", rec.Cached)
	return nil
}

func (m *Module) listSolutions(ctx context.Context, req ListSolutionsRequest, _ *mono.Msg) (ListSolutionsResponse, error) {
	recs, err := m.repo.List(ctx, req.Limit)
	if err != nil {
		return ListSolutionsResponse{Error: err.Error()}, nil
	}

	infos := make([]SolutionInfo, 0, len(recs))
	for _, rec := range recs {
		info, err := toSolutionInfo(rec)
		if err != nil {
			m.logger.Warn("Skipping unreadable record", "id", rec.ID, "error", err)
			continue
		}
		infos = append(infos, info)
	}

	return ListSolutionsResponse{
		Solutions: infos,
		Count:     len(infos),
	}, nil
}

func (m *Module) getSolution(ctx context.Context, req GetSolutionRequest, _ *mono.Msg) (GetSolutionResponse, error) {
	if req.ID == "" {
		return GetSolutionResponse{Error: "id is required"}, nil
	}

	rec, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return GetSolutionResponse{Error: err.Error()}, nil
	}

	info, err := toSolutionInfo(rec)
	if err != nil {
		return GetSolutionResponse{Error: err.Error()}, nil
	}
	return GetSolutionResponse{Solution: &info}, nil
}

func (m *Module) stats(ctx context.Context, _ StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	stats, err := m.repo.Stats(ctx)
	if err != nil {
		return StatsResponse{Error: err.Error()}, nil
	}
	return StatsResponse{Stats: stats}, nil
}
