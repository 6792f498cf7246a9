package background

import (
	"context"
	"log"
	"time"

	"fitops/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// OverviewRefresher keeps the cached admin subscription overview warm. It is
// read-only: trial and subscription expiry are computed at read time, so the
// refresher never mutates tenant state.
type OverviewRefresher struct {
	scheduler gocron.Scheduler
	lifecycle services.LifecycleService
}

func NewOverviewRefresher(lifecycle services.LifecycleService) (*OverviewRefresher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	r := &OverviewRefresher{
		scheduler: scheduler,
		lifecycle: lifecycle,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(r.refresh, context.Background()),
		gocron.WithName("admin-overview-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *OverviewRefresher) Start() {
	log.Printf("Starting background overview refresher")
	r.scheduler.Start()
}

func (r *OverviewRefresher) Stop() error {
	log.Printf("Stopping background overview refresher")
	return r.scheduler.Shutdown()
}

func (r *OverviewRefresher) refresh(ctx context.Context) {
	if err := r.lifecycle.RefreshOverview(ctx); err != nil {
		log.Printf("WARN: admin overview refresh failed: %v", err)
	}
}
