package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	"github.com/nmoreno/portfolio-ui/internal/ports"
)

// ProjectServiceOptions groups dependencies for ProjectService.
type ProjectServiceOptions struct {
	Backend ports.ProjectsAPI
	Logger  *slog.Logger
}

// ProjectService exposes the backend's project listings.
type ProjectService struct {
	backend ports.ProjectsAPI
	logger  *slog.Logger
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(opts ProjectServiceOptions) (*ProjectService, error) {
	if opts.Backend == nil {
		return nil, errors.New("ProjectsAPI is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "project_service")
	}
	return &ProjectService{backend: opts.Backend, logger: logger}, nil
}

// ListPublic returns published projects for the public site.
func (s *ProjectService) ListPublic(ctx context.Context, sess *domainauth.Session) ([]model.Project, error) {
	return s.backend.ListProjects(ctx, sess, false)
}

// ListAdmin returns all projects, including unpublished ones.
func (s *ProjectService) ListAdmin(ctx context.Context, sess *domainauth.Session) ([]model.Project, error) {
	return s.backend.ListProjects(ctx, sess, true)
}
