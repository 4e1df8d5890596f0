package repository

import (
	"context"
	"errors"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/models"
)

// ErrNotFound is returned when a summary id is unknown or already expired.
var ErrNotFound = errors.New("summary not found")

// SummaryRepository stores generated summaries for later download and
// sharing. Implementations bound both lifetime and count: expired rows are
// swept out, and the oldest rows are evicted once Capacity is exceeded.
type SummaryRepository interface {
	Save(ctx context.Context, s *models.Summary) error
	Get(ctx context.Context, id string) (*models.Summary, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}
