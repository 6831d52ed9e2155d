package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"ad-analyzer/shared/config"
	"ad-analyzer/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Metrics is the per-run summary an agent hands back to the scheduler.
type Metrics interface {
	// GetSummary returns a human-readable summary of the run
	GetSummary() string
}

// Agent defines the interface scheduled agents must implement.
type Agent interface {
	Name() string
	Initialize() error
	RunOnce(ctx context.Context) (Metrics, error)
}

// Scheduler runs an agent on a cron schedule, recording outcomes with
// the monitor and exposing them over the health endpoints.
type Scheduler struct {
	config  *config.Config
	monitor *monitoring.Monitor
	agent   Agent
	cron    *cron.Cron
}

func New(cfg *config.Config, agent Agent) *Scheduler {
	return &Scheduler{
		config:  cfg,
		monitor: monitoring.NewMonitor(),
		agent:   agent,
		// Prevent overlapping runs
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	healthServer := monitoring.NewHealthServer(s.monitor, s.config.Monitoring.HealthPort)
	healthServer.Start()

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.agent.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.agent.Name(), s.config.Schedule)
	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.agent.Name())
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	log.Printf("Starting %s run...", s.agent.Name())

	metrics, err := s.agent.RunOnce(ctx)
	duration := time.Since(startTime)
	if err != nil {
		s.monitor.RecordFailure(fmt.Errorf("%s failed: %w", s.agent.Name(), err), duration)
		return fmt.Errorf("%s run failed: %w", s.agent.Name(), err)
	}

	s.monitor.RecordSuccess(metrics.GetSummary(), duration)
	return nil
}
