package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	importStatusCreated  = "created"
	importStatusRejected = "rejected"
	importStatusFailed   = "failed"
)

type ImportResult struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	SeasonID   string `json:"seasonId,omitempty"`
	Players    int    `json:"players"`
	DurationMs int64  `json:"durationMs"`
	Message    string `json:"message,omitempty"`
}

type ImportBatchResult struct {
	WorkerCount   int            `json:"workerCount"`
	CreatedCount  int            `json:"createdCount"`
	RejectedCount int            `json:"rejectedCount"`
	FailedCount   int            `json:"failedCount"`
	Items         []ImportResult `json:"items"`
}

// ImportBatch creates one season per input on a worker pool. Each export is
// parsed independently; a bad export only marks its own item. Items keep
// input order.
func (s *SeasonService) ImportBatch(ctx context.Context, inputs []CreateSeasonInput) (ImportBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ImportBatch")
	defer span.End()

	if len(inputs) == 0 {
		return ImportBatchResult{}, fmt.Errorf("%w: nothing to import", ErrInvalidInput)
	}

	workerCount := min(s.cfg.ImportWorkers, len(inputs))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportBatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	items := make([]ImportResult, len(inputs))
	var created, rejected, failed atomic.Int32

	var workers sync.WaitGroup
	for i, input := range inputs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ImportResult{Index: i, Name: input.Name}
			item, err := s.Create(ctx, input)
			switch {
			case err == nil:
				row.Status = importStatusCreated
				row.SeasonID = item.ID
				row.Players = len(item.Players)
				created.Add(1)
			case isClientError(err):
				row.Status = importStatusRejected
				row.Message = err.Error()
				rejected.Add(1)
			default:
				row.Status = importStatusFailed
				row.Message = err.Error()
				failed.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			items[i] = row
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ImportBatchResult{}, fmt.Errorf("submit import to worker pool: %w", err)
		}
	}
	workers.Wait()

	return ImportBatchResult{
		WorkerCount:   workerCount,
		CreatedCount:  int(created.Load()),
		RejectedCount: int(rejected.Load()),
		FailedCount:   int(failed.Load()),
		Items:         items,
	}, nil
}
