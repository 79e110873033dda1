package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/history"
	"github.com/example/solve-square/modules/solver"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")

	api.Post("/solve", m.solvePost)
	api.Get("/solve", m.solveQuery)

	// stats must be registered before :id
	api.Get("/history", m.listHistory)
	api.Get("/history/stats", m.historyStats)
	api.Get("/history/:id", m.getHistory)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// solvePost handles POST /api/v1/solve.
func (m *APIModule) solvePost(c *fiber.Ctx) error {
	var req SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if req.A == nil || req.B == nil || req.C == nil {
		return badRequest(c, "validation_error", "coefficients a, b and c are required")
	}

	return m.solve(c, equation.New(*req.A, *req.B, *req.C))
}

// solveQuery handles GET /api/v1/solve?a=&b=&c=.
func (m *APIModule) solveQuery(c *fiber.Ctx) error {
	var coef [3]float64
	for i, name := range []string{"a", "b", "c"} {
		raw := c.Query(name)
		if raw == "" {
			return badRequest(c, "validation_error", fmt.Sprintf("query parameter %s is required", name))
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "validation_error", fmt.Sprintf("query parameter %s: %q is not a number", name, raw))
		}
		coef[i] = v
	}

	return m.solve(c, equation.New(coef[0], coef[1], coef[2]))
}

// solve rejects non-finite input up front. Root overflow depends on the
// solver's tolerance and comes back from the service as ErrInvalidEquation.
func (m *APIModule) solve(c *fiber.Ctx, eq equation.Equation) error {
	if err := eq.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	resp, err := m.solver.Solve(c.UserContext(), eq.A, eq.B, eq.C)
	if err != nil {
		return m.serviceError(c, err)
	}

	return c.JSON(SolveResponse{
		Equation: resp.Equation,
		Solution: *resp.Solution,
		Cached:   resp.Cached,
	})
}

// listHistory handles GET /api/v1/history?limit=.
func (m *APIModule) listHistory(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return badRequest(c, "validation_error", "limit must be a non-negative integer")
		}
		limit = v
	}

	solutions, err := m.history.List(c.UserContext(), limit)
	if err != nil {
		return m.serviceError(c, err)
	}
	if solutions == nil {
		solutions = []history.SolutionInfo{}
	}

	return c.JSON(ListSolutionsResponse{
		Solutions: solutions,
		Total:     len(solutions),
	})
}

// historyStats handles GET /api/v1/history/stats.
func (m *APIModule) historyStats(c *fiber.Ctx) error {
	stats, err := m.history.Stats(c.UserContext())
	if err != nil {
		return m.serviceError(c, err)
	}
	return c.JSON(stats)
}

// getHistory handles GET /api/v1/history/:id.
func (m *APIModule) getHistory(c *fiber.Ctx) error {
	info, err := m.history.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.serviceError(c, err)
	}
	return c.JSON(info)
}

// serviceError maps adapter errors onto HTTP responses.
func (m *APIModule) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, solver.ErrInvalidEquation):
		return badRequest(c, "validation_error", err.Error())
	case errors.Is(err, history.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Solution not found",
		})
	default:
		m.logger.Error("Service call failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
