package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
)

// stubAuthService implements AuthServiceInterface with overridable funcs.
type stubAuthService struct {
	NewGuestSessionFn func(ctx context.Context) (domainauth.Session, error)
	EnsureCSRFFn      func(ctx context.Context, sess *domainauth.Session) error
	LoginFn           func(ctx context.Context, sess *domainauth.Session, email, password string) (domainauth.Session, error)
	GetSessionFn      func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	SaveSessionFn     func(ctx context.Context, sess domainauth.Session) error
	LogoutFn          func(ctx context.Context, sess *domainauth.Session) error
	DestroySessionFn  func(ctx context.Context, sessionID string) error

	destroyed []string
}

func (s *stubAuthService) NewGuestSession(ctx context.Context) (domainauth.Session, error) {
	if s.NewGuestSessionFn != nil {
		return s.NewGuestSessionFn(ctx)
	}
	return guestSessionFixture(), nil
}

func (s *stubAuthService) EnsureCSRF(ctx context.Context, sess *domainauth.Session) error {
	if s.EnsureCSRFFn != nil {
		return s.EnsureCSRFFn(ctx, sess)
	}
	return nil
}

func (s *stubAuthService) Login(
	ctx context.Context,
	sess *domainauth.Session,
	email, password string,
) (domainauth.Session, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, sess, email, password)
	}
	return adminSessionFixture(), nil
}

func (s *stubAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if s.GetSessionFn != nil {
		return s.GetSessionFn(ctx, sessionID)
	}
	return nil, nil
}

func (s *stubAuthService) SaveSession(ctx context.Context, sess domainauth.Session) error {
	if s.SaveSessionFn != nil {
		return s.SaveSessionFn(ctx, sess)
	}
	return nil
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domainauth.Session) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, sess)
	}
	return nil
}

func (s *stubAuthService) DestroySession(ctx context.Context, sessionID string) error {
	s.destroyed = append(s.destroyed, sessionID)
	if s.DestroySessionFn != nil {
		return s.DestroySessionFn(ctx, sessionID)
	}
	return nil
}

type stubExperienceService struct {
	ListFn   func(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error)
	CreateFn func(ctx context.Context, sess *domainauth.Session, req model.ExperienceRequest) (model.ExperienceEntry, error)
	UpdateFn func(ctx context.Context, sess *domainauth.Session, id string, req model.ExperienceRequest) (model.ExperienceEntry, error)
	DeleteFn func(ctx context.Context, sess *domainauth.Session, id string) error
}

func (s *stubExperienceService) List(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sess)
	}
	return nil, nil
}

func (s *stubExperienceService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sess, req)
	}
	return model.ExperienceEntry{}, nil
}

func (s *stubExperienceService) Update(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, sess, id, req)
	}
	return model.ExperienceEntry{}, nil
}

func (s *stubExperienceService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, sess, id)
	}
	return nil
}

type stubMessageService struct {
	ListFn         func(ctx context.Context, sess *domainauth.Session, filter model.MessagesFilter) ([]model.Message, error)
	InboxFn        func(ctx context.Context, sess *domainauth.Session, filter model.MessagesFilter) ([]model.Message, model.MessageStats, error)
	GetFn          func(ctx context.Context, sess *domainauth.Session, id string) (model.Message, error)
	MarkOpenedFn   func(ctx context.Context, sess *domainauth.Session, msg model.Message) model.Message
	UpdateStatusFn func(ctx context.Context, sess *domainauth.Session, id string, status model.MessageStatus) (model.Message, error)
	DeleteFn       func(ctx context.Context, sess *domainauth.Session, id string) error
	SubmitFn       func(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error
}

func (s *stubMessageService) List(
	ctx context.Context,
	sess *domainauth.Session,
	filter model.MessagesFilter,
) ([]model.Message, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sess, filter)
	}
	return nil, nil
}

// Inbox defaults to wrapping ListFn so older stubs keep working.
func (s *stubMessageService) Inbox(
	ctx context.Context,
	sess *domainauth.Session,
	filter model.MessagesFilter,
) ([]model.Message, model.MessageStats, error) {
	if s.InboxFn != nil {
		return s.InboxFn(ctx, sess, filter)
	}
	messages, err := s.List(ctx, sess, filter)
	return messages, model.CountMessages(messages), err
}

func (s *stubMessageService) Get(ctx context.Context, sess *domainauth.Session, id string) (model.Message, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, sess, id)
	}
	return model.Message{}, nil
}

func (s *stubMessageService) MarkOpened(
	ctx context.Context,
	sess *domainauth.Session,
	msg model.Message,
) model.Message {
	if s.MarkOpenedFn != nil {
		return s.MarkOpenedFn(ctx, sess, msg)
	}
	return msg
}

func (s *stubMessageService) UpdateStatus(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	status model.MessageStatus,
) (model.Message, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, sess, id, status)
	}
	return model.Message{}, nil
}

func (s *stubMessageService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, sess, id)
	}
	return nil
}

func (s *stubMessageService) Submit(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sess, req)
	}
	return nil
}

type stubProjectService struct {
	ListPublicFn func(ctx context.Context, sess *domainauth.Session) ([]model.Project, error)
	ListAdminFn  func(ctx context.Context, sess *domainauth.Session) ([]model.Project, error)
}

func (s *stubProjectService) ListPublic(ctx context.Context, sess *domainauth.Session) ([]model.Project, error) {
	if s.ListPublicFn != nil {
		return s.ListPublicFn(ctx, sess)
	}
	return nil, nil
}

func (s *stubProjectService) ListAdmin(ctx context.Context, sess *domainauth.Session) ([]model.Project, error) {
	if s.ListAdminFn != nil {
		return s.ListAdminFn(ctx, sess)
	}
	return nil, nil
}

type stubDashboardService struct {
	SummaryFn func(ctx context.Context, sess *domainauth.Session) (model.DashboardSummary, error)
}

func (s *stubDashboardService) Summary(ctx context.Context, sess *domainauth.Session) (model.DashboardSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, sess)
	}
	return model.DashboardSummary{}, nil
}

func adminSessionFixture() domainauth.Session {
	return domainauth.Session{
		ID:         "sess-admin",
		UserID:     "user-1",
		Name:       "Nicolás",
		Email:      "admin@example.com",
		Role:       domainauth.RoleAdmin,
		CSRFToken:  "upstream-token",
		CSRFPrimed: true,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func guestSessionFixture() domainauth.Session {
	return domainauth.Session{
		ID:        "sess-guest",
		Role:      domainauth.RoleGuest,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(TemplateRendererConfig{
		FS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Fatalf("create renderer: %v", err)
	}
	return r
}

func newTestUIHandlers(t *testing.T) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:             newTestRenderer(t),
		Auth:          &stubAuthService{},
		ExperienceSvc: &stubExperienceService{},
		MessageSvc:    &stubMessageService{},
		ProjectSvc:    &stubProjectService{},
		DashboardSvc:  &stubDashboardService{},
	}
}

// requestWithSession returns a browser-flavored request carrying the session and a CSRF token.
func requestWithSession(method, target string, sess *domainauth.Session) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Accept", "text/html")
	ctx := setCSRFTokenInContext(r.Context(), "test-csrf-token")
	if sess != nil {
		ctx = SetSessionInContext(ctx, sess)
	}
	return r.WithContext(ctx)
}
