package mcp

import (
	"context"

	"github.com/EntireTwix/Progression/internal/models"
	"github.com/EntireTwix/Progression/internal/storage"
)

// PerformanceSource supplies the last logged working set of an exercise.
type PerformanceSource interface {
	LastPerformance(ctx context.Context, userID int, exercise string) (models.Performance, error)
}

// Compile-time check: *storage.DB satisfies PerformanceSource.
var _ PerformanceSource = (*storage.DB)(nil)
