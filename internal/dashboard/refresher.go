package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/config"
	"github.com/crisisdesk/disaster-response-api/internal/worker"
)

// Refresher keeps the dashboard snapshot warm by refreshing it on an
// interval through a worker pool, so requests rarely pay for an upstream
// fetch inline.
type Refresher struct {
	cfg     config.DashboardConfig
	service *Service
	pool    *worker.WorkerPool
	wg      sync.WaitGroup
}

func NewRefresher(cfg config.DashboardConfig, service *Service) *Refresher {
	return &Refresher{
		cfg:     cfg,
		service: service,
	}
}

func (r *Refresher) Start(ctx context.Context) {
	processor := func(ctx context.Context, job worker.Job) error {
		if err := r.service.Refresh(ctx); err != nil {
			slog.Error("snapshot refresh failed", "error", err)
			return err
		}
		slog.Debug("snapshot refreshed")
		return nil
	}

	r.pool = worker.NewWorkerPool(r.cfg.WorkerCount, r.cfg.WorkerBuffer, processor)
	r.pool.Start(ctx)

	r.wg.Add(1)
	go r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) {
	defer r.wg.Done()
	slog.Info("starting dashboard refresher", "interval", r.cfg.RefreshInterval)

	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()

	// Initial warm-up
	r.pool.Submit(struct{}{})

	for {
		select {
		case <-ctx.Done():
			slog.Info("dashboard refresher shutting down")
			return
		case <-ticker.C:
			r.pool.Submit(struct{}{})
		}
	}
}

func (r *Refresher) Stop() {
	r.wg.Wait()
	if r.pool == nil {
		return
	}
	r.pool.Stop()
	slog.Info("dashboard refresher stopped")
}
