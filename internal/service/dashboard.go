package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	"github.com/nmoreno/portfolio-ui/internal/ports"
	"golang.org/x/sync/errgroup"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Backend ports.BackendAPI
	Logger  *slog.Logger
}

// DashboardService aggregates the admin dashboard counters.
type DashboardService struct {
	backend ports.BackendAPI
	logger  *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Backend == nil {
		return nil, errors.New("BackendAPI is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dashboard_service")
	}
	return &DashboardService{backend: opts.Backend, logger: logger}, nil
}

// Summary fetches the three backend listings in parallel and derives
// the dashboard counters. Any listing failure fails the whole summary;
// the dashboard renders all counters or none.
//
// Each goroutine gets its own session clone so cookie capture on the
// responses cannot race on the shared cookie map.
func (s *DashboardService) Summary(ctx context.Context, sess *domainauth.Session) (model.DashboardSummary, error) {
	var (
		projects   []model.Project
		experience []model.ExperienceEntry
		messages   []model.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clone := sess.Clone()
		var err error
		projects, err = s.backend.ListProjects(gctx, &clone, true)
		return err
	})
	g.Go(func() error {
		clone := sess.Clone()
		var err error
		experience, err = s.backend.ListExperience(gctx, &clone)
		return err
	})
	g.Go(func() error {
		clone := sess.Clone()
		var err error
		messages, err = s.backend.ListMessages(gctx, &clone)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardSummary{}, err
	}

	return model.DashboardSummary{
		Projects:       len(projects),
		Experience:     len(experience),
		Messages:       len(messages),
		NewMessages:    model.CountByStatus(messages, model.MessageStatusNew),
		RecentMessages: recentMessages(messages, recentMessageLimit),
	}, nil
}

// recentMessageLimit caps the dashboard's inbox preview.
const recentMessageLimit = 5

// recentMessages returns the newest messages without reordering the
// caller's slice.
func recentMessages(messages []model.Message, limit int) []model.Message {
	sorted := make([]model.Message, len(messages))
	copy(sorted, messages)
	model.SortMessagesByNewest(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
