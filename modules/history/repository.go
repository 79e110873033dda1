package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a solution record is not found.
var ErrNotFound = errors.New("solution not found")

const (
	// DefaultListLimit is used when a list request gives no limit.
	DefaultListLimit = 20
	// MaxListLimit caps the number of records a single list returns.
	MaxListLimit = 100
)

// Stats summarises the stored history.
type Stats struct {
	Total  int64            `json:"total"`
	ByKind map[string]int64 `json:"by_kind"`
	Cached int64            `json:"cached"`
}

// Repository provides access to solution history storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the solutions table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&SolutionRecord{})
}

// Create saves a new record.
func (r *Repository) Create(ctx context.Context, rec *SolutionRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create solution record: %w", err)
	}
	return nil
}

// FindByID retrieves a record by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*SolutionRecord, error) {
	var rec SolutionRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find solution record: %w", err)
	}
	return &rec, nil
}

// List returns the most recent records first.
func (r *Repository) List(ctx context.Context, limit int) ([]*SolutionRecord, error) {
	var recs []*SolutionRecord
	err := r.db.WithContext(ctx).
		Order("solved_at DESC").
		Limit(NormalizeLimit(limit)).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list solution records: %w", err)
	}
	return recs, nil
}

// Stats counts records per solution kind and how many were served from cache.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	db := r.db.WithContext(ctx)

	if err := db.Model(&SolutionRecord{}).
		Select("kind, count(*) AS count").
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count solutions by kind: %w", err)
	}

	stats := &Stats{ByKind: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.ByKind[row.Kind] = row.Count
		stats.Total += row.Count
	}

	if err := db.Model(&SolutionRecord{}).
		Where("cached = ?", true).
		Count(&stats.Cached).Error; err != nil {
		return nil, fmt.Errorf("failed to count cached solutions: %w", err)
	}

	return stats, nil
}

// NormalizeLimit applies the default and the cap to a requested list size.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
