package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// HistoryPort is how other modules read the solution history.
type HistoryPort interface {
	List(ctx context.Context, limit int) ([]SolutionInfo, error)
	Get(ctx context.Context, id string) (*SolutionInfo, error)
	Stats(ctx context.Context) (*Stats, error)
}

// historyAdapter wraps the history ServiceContainer.
type historyAdapter struct {
	container mono.ServiceContainer
}

// NewHistoryAdapter creates an adapter for the history services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewHistoryAdapter(container mono.ServiceContainer) HistoryPort {
	if container == nil {
		panic("history adapter requires non-nil ServiceContainer")
	}
	return &historyAdapter{container: container}
}

// List calls the list-solutions service.
func (a *historyAdapter) List(ctx context.Context, limit int) ([]SolutionInfo, error) {
	req := ListSolutionsRequest{Limit: limit}
	var resp ListSolutionsResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-solutions", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-solutions service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, mapServiceError(resp.Error)
	}
	return resp.Solutions, nil
}

// Get calls the get-solution service.
func (a *historyAdapter) Get(ctx context.Context, id string) (*SolutionInfo, error) {
	req := GetSolutionRequest{ID: id}
	var resp GetSolutionResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-solution", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-solution service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, mapServiceError(resp.Error)
	}
	if resp.Solution == nil {
		return nil, ErrNotFound
	}
	return resp.Solution, nil
}

// Stats calls the stats service.
func (a *historyAdapter) Stats(ctx context.Context) (*Stats, error) {
	var req StatsRequest
	var resp StatsResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "stats", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("stats service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, mapServiceError(resp.Error)
	}
	return resp.Stats, nil
}

// mapServiceError converts error strings from the service back to sentinel
// errors, since error types do not survive the trip over NATS.
func mapServiceError(msg string) error {
	if strings.Contains(strings.ToLower(msg), ErrNotFound.Error()) {
		return ErrNotFound
	}
	return errors.New(msg)
}
