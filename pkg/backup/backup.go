// Package backup copies stored projects into a secondary store on a cron schedule.
//
// When the scheduler tracks the event bus only the projects saved or deleted since the previous run are copied;
// otherwise, and on the first run, every project is copied.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/codeeasy/pkg/eventbus"
	"github.com/dukex/codeeasy/pkg/events"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/robfig/cron/v3"
)

// Report summarizes one backup run.
type Report struct {
	Copied  int
	Removed int
	Full    bool
}

// Scheduler periodically snapshots the source store into the target store.
type Scheduler struct {
	source   persistence.Persistence
	target   persistence.Persistence
	cronExpr string
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	tracking bool
	synced   bool
	changed  map[string]struct{}
	removed  map[string]struct{}
}

// NewScheduler validates cronExpr (standard five fields or a descriptor such as @hourly).
func NewScheduler(logger *slog.Logger, source, target persistence.Persistence, cronExpr string) (*Scheduler, error) {
	if cronExpr == "" {
		return nil, errors.New("backup cron expression is required")
	}

	if _, err := cron.ParseStandard(cronExpr); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &Scheduler{
		source:   source,
		target:   target,
		cronExpr: cronExpr,
		logger:   logger.With("module", "backup", "cron", cronExpr),
		changed:  make(map[string]struct{}),
		removed:  make(map[string]struct{}),
	}, nil
}

// Track registers handlers on the bus so later runs only copy what changed.
// The caller is responsible for calling Subscribe on the bus.
func (s *Scheduler) Track(ctx context.Context, bus eventbus.EventSubscriber) error {
	err := bus.Handle(ctx, events.ProjectSavedEvent, func(_ context.Context, event any) error {
		saved, ok := event.(*events.ProjectSaved)
		if !ok {
			return fmt.Errorf("unexpected event %T", event)
		}

		s.markChanged(saved.ProjectID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to track saved projects: %w", err)
	}

	err = bus.Handle(ctx, events.ProjectDeletedEvent, func(_ context.Context, event any) error {
		deleted, ok := event.(*events.ProjectDeleted)
		if !ok {
			return fmt.Errorf("unexpected event %T", event)
		}

		s.markRemoved(deleted.ProjectID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to track deleted projects: %w", err)
	}

	s.mu.Lock()
	s.tracking = true
	s.mu.Unlock()

	return nil
}

func (s *Scheduler) markChanged(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.removed, id)
	s.changed[id] = struct{}{}
}

func (s *Scheduler) markRemoved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.changed, id)
	s.removed[id] = struct{}{}
}

// Start schedules the backup job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting backup scheduler")

	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	id, err := s.cron.AddFunc(s.cronExpr, func() {
		report, err := s.RunOnce(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "Backup failed", "error", err)

			return
		}

		s.logger.InfoContext(ctx, "Backup completed", "copied", report.Copied, "removed", report.Removed, "full", report.Full)
	})
	if err != nil {
		return fmt.Errorf("failed to add backup job: %w", err)
	}

	s.logger.DebugContext(ctx, "Backup job added", "entry_id", id)
	s.cron.Start()

	return nil
}

// Stop stops the schedule and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}

	s.logger.InfoContext(ctx, "Stopping backup scheduler")

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs one backup run.
func (s *Scheduler) RunOnce(ctx context.Context) (Report, error) {
	s.mu.Lock()
	full := !s.tracking || !s.synced
	changed, removed := s.changed, s.removed
	s.changed = make(map[string]struct{})
	s.removed = make(map[string]struct{})
	s.mu.Unlock()

	var (
		report Report
		err    error
	)

	if full {
		report, err = s.copyAll(ctx)
	} else {
		report, err = s.copyChanges(ctx, changed, removed)
	}

	if err != nil {
		s.restore(changed, removed)

		return report, err
	}

	s.mu.Lock()
	s.synced = true
	s.mu.Unlock()

	return report, nil
}

// restore re-queues the changes of a failed run unless newer events superseded them.
func (s *Scheduler) restore(changed, removed map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range changed {
		if _, superseded := s.removed[id]; !superseded {
			s.changed[id] = struct{}{}
		}
	}

	for id := range removed {
		if _, superseded := s.changed[id]; !superseded {
			s.removed[id] = struct{}{}
		}
	}
}

func (s *Scheduler) copyAll(ctx context.Context) (Report, error) {
	report := Report{Full: true}

	projects, err := s.source.Projects(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list source projects: %w", err)
	}

	for _, project := range projects {
		if err := s.target.SaveProject(ctx, project); err != nil {
			return report, fmt.Errorf("failed to copy project %s: %w", project.ID, err)
		}

		report.Copied++
	}

	return report, nil
}

func (s *Scheduler) copyChanges(ctx context.Context, changed, removed map[string]struct{}) (Report, error) {
	var report Report

	for id := range changed {
		project, err := s.source.ProjectByID(ctx, id)
		if persistence.IsProjectNotFound(err) {
			removed[id] = struct{}{}

			continue
		}

		if err != nil {
			return report, fmt.Errorf("failed to read project %s: %w", id, err)
		}

		if err := s.target.SaveProject(ctx, project); err != nil {
			return report, fmt.Errorf("failed to copy project %s: %w", id, err)
		}

		report.Copied++
	}

	for id := range removed {
		err := s.target.DeleteProject(ctx, id)
		if err != nil && !persistence.IsProjectNotFound(err) {
			return report, fmt.Errorf("failed to remove project %s: %w", id, err)
		}

		report.Removed++
	}

	return report, nil
}
