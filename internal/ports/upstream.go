package ports

import (
	"context"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
)

// The upstream ports wrap the backend API. Every call runs on behalf
// of a session: the implementation sends the session's upstream
// cookies with the request and records any cookies the backend sets
// back onto the session. Callers that pass a mutated session are
// responsible for persisting it.

// AuthAPI covers the backend's /auth endpoints.
type AuthAPI interface {
	// FetchCSRF primes the session's CSRF token via GET /auth/csrf.
	FetchCSRF(ctx context.Context, sess *domainauth.Session) error

	// Login exchanges credentials for an authenticated backend cookie.
	Login(ctx context.Context, sess *domainauth.Session, email, password string) error

	// Me returns the identity behind the session's backend cookie.
	Me(ctx context.Context, sess *domainauth.Session) (domainauth.Identity, error)

	// Logout invalidates the backend cookie.
	Logout(ctx context.Context, sess *domainauth.Session) error
}

// ExperienceAPI covers the backend's /experience endpoints.
type ExperienceAPI interface {
	ListExperience(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error)
	CreateExperience(ctx context.Context, sess *domainauth.Session, req model.ExperienceRequest) (model.ExperienceEntry, error)
	UpdateExperience(ctx context.Context, sess *domainauth.Session, id string, req model.ExperienceRequest) (model.ExperienceEntry, error)
	DeleteExperience(ctx context.Context, sess *domainauth.Session, id string) error
}

// MessagesAPI covers the backend's /messages endpoints.
type MessagesAPI interface {
	ListMessages(ctx context.Context, sess *domainauth.Session) ([]model.Message, error)
	SubmitMessage(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error
	UpdateMessageStatus(ctx context.Context, sess *domainauth.Session, id string, status model.MessageStatus) (model.Message, error)
	DeleteMessage(ctx context.Context, sess *domainauth.Session, id string) error
}

// ProjectsAPI covers the backend's /projects endpoints.
type ProjectsAPI interface {
	// ListProjects returns projects; adminView includes unpublished entries.
	ListProjects(ctx context.Context, sess *domainauth.Session, adminView bool) ([]model.Project, error)
}

// BackendAPI is the full backend surface the app consumes.
type BackendAPI interface {
	AuthAPI
	ExperienceAPI
	MessagesAPI
	ProjectsAPI
}
