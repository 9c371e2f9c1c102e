package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	"github.com/nmoreno/portfolio-ui/internal/ports"
)

// ExperienceServiceOptions groups dependencies for ExperienceService.
type ExperienceServiceOptions struct {
	Backend ports.BackendAPI
	Auth    *AuthService
	Logger  *slog.Logger
}

// ExperienceService provides the admin experience timeline operations.
// Mutations prime the session's CSRF token first and persist any
// upstream cookie changes afterwards.
type ExperienceService struct {
	backend ports.BackendAPI
	auth    *AuthService
	logger  *slog.Logger
}

// NewExperienceService constructs a new ExperienceService.
func NewExperienceService(opts ExperienceServiceOptions) (*ExperienceService, error) {
	if opts.Backend == nil {
		return nil, errors.New("BackendAPI is required")
	}
	if opts.Auth == nil {
		return nil, errors.New("AuthService is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "experience_service")
	}
	return &ExperienceService{
		backend: opts.Backend,
		auth:    opts.Auth,
		logger:  logger,
	}, nil
}

// List returns all entries in presentation order: Order ascending with
// newer start dates first on ties.
func (s *ExperienceService) List(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error) {
	defer s.auth.PersistUpstreamState(ctx, sess)

	entries, err := s.backend.ListExperience(ctx, sess)
	if err != nil {
		return nil, err
	}
	model.SortExperience(entries)
	return entries, nil
}

// Create validates and submits a new entry.
func (s *ExperienceService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	if err := req.Validate(); err != nil {
		return model.ExperienceEntry{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return model.ExperienceEntry{}, err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	entry, err := s.backend.CreateExperience(ctx, sess, req)
	if err != nil {
		return model.ExperienceEntry{}, err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "experience entry created", "id", entry.ID)
	}
	return entry, nil
}

// Update validates and submits changes to an existing entry.
func (s *ExperienceService) Update(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	if id == "" {
		return model.ExperienceEntry{}, apperrors.Validation("entry id is required")
	}
	if err := req.Validate(); err != nil {
		return model.ExperienceEntry{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return model.ExperienceEntry{}, err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	entry, err := s.backend.UpdateExperience(ctx, sess, id, req)
	if err != nil {
		return model.ExperienceEntry{}, err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "experience entry updated", "id", entry.ID)
	}
	return entry, nil
}

// Delete removes an entry.
func (s *ExperienceService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	if id == "" {
		return apperrors.Validation("entry id is required")
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	if err := s.backend.DeleteExperience(ctx, sess, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "experience entry deleted", "id", id)
	}
	return nil
}
