package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/events"
	"github.com/example/solve-square/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the equation solver as a request-reply service and
// announces every successful solve on the event bus.
type Module struct {
	solver      equation.Solver
	cachePlugin *cache.PluginModule
	service     *Service
	publish     func(events.EquationSolvedEvent) error
	logger      types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a solver module using the given solver.
func NewModule(solver equation.Solver, logger types.Logger) *Module {
	return &Module{
		solver: solver,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "solver"
}

// SetPlugin receives the optional cache plugin from the framework.
// The plugin has not started yet, so its port is resolved in Start.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "cache" {
		return
	}
	cachePlugin, ok := plugin.(*cache.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for cache",
			"alias", alias,
			"expected", "*cache.PluginModule")
		return
	}
	m.cachePlugin = cachePlugin
	m.logger.Info("Received cache plugin", "alias", alias)
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	if bus == nil {
		m.publish = nil
		return
	}
	m.publish = func(event events.EquationSolvedEvent) error {
		return events.EquationSolvedV1.Publish(bus, event, nil)
	}
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.EquationSolvedV1.ToBase(),
	}
}

// RegisterServices registers the solve service. The framework prefixes the
// name, so it is reachable as "services.solver.solve".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "solve", json.Unmarshal, json.Marshal, m.solve,
	); err != nil {
		return fmt.Errorf("failed to register solve service: %w", err)
	}

	m.logger.Info("Registered services", "services", []string{"services.solver.solve"})
	return nil
}

// Start creates the service, wiring in the cache when the plugin is present.
func (m *Module) Start(_ context.Context) error {
	var solutionCache SolutionCache
	if m.cachePlugin != nil {
		if port := m.cachePlugin.Port(); port != nil {
			solutionCache = port
		}
	}

	m.service = NewService(m.solver, solutionCache, m.logger)

	m.logger.Info("Solver module started",
		"tolerance", m.solver.Tolerance(),
		"cache", solutionCache != nil)
	return nil
}

// Stop gracefully stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Solver module stopped")
	return nil
}

// Service returns the solver service. It is nil before Start.
func (m *Module) Service() *Service {
	return m.service
}

// Health reports whether the module is ready to solve.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "solver not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"tolerance": m.solver.Tolerance(),
			"cache":     m.service.cache != nil,
		},
	}
}

// solve handles the solve request-reply service. Invalid coefficients are
// reported in the response so callers see a readable message.
func (m *Module) solve(ctx context.Context, req SolveRequest, _ *mono.Msg) (SolveResponse, error) {
	if m.service == nil {
		return SolveResponse{Error: ErrNotStarted.Error()}, nil
	}

	eq := equation.New(req.A, req.B, req.C)
	sol, cached, err := m.service.Solve(ctx, eq)
	if err != nil {
		m.logger.Warn("Rejected equation", "a", req.A, "b", req.B, "c", req.C, "error", err)
		return SolveResponse{Error: err.Error()}, nil
	}

	m.publishSolved(eq, sol, cached)

	return SolveResponse{
		Equation: eq.String(),
		Solution: &sol,
		Cached:   cached,
	}, nil
}

func (m *Module) publishSolved(eq equation.Equation, sol equation.Solution, cached bool) {
	if m.publish == nil {
		return
	}
	event := events.EquationSolvedEvent{
		Equation:  eq,
		Tolerance: m.service.Tolerance(),
		Solution:  sol,
		Cached:    cached,
		SolvedAt:  time.Now().UTC(),
	}
	if err := m.publish(event); err != nil {
		m.logger.Error("Failed to publish EquationSolved event", "error", err)
	}
}
