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

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Backend ports.BackendAPI
	Auth    *AuthService
	Logger  *slog.Logger
}

// MessageService provides the contact inbox operations: the admin
// list/detail flows and the public contact-form submission.
type MessageService struct {
	backend ports.BackendAPI
	auth    *AuthService
	logger  *slog.Logger
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) (*MessageService, error) {
	if opts.Backend == nil {
		return nil, errors.New("BackendAPI is required")
	}
	if opts.Auth == nil {
		return nil, errors.New("AuthService is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "message_service")
	}
	return &MessageService{
		backend: opts.Backend,
		auth:    opts.Auth,
		logger:  logger,
	}, nil
}

// List returns the inbox filtered and ordered newest-first.
func (s *MessageService) List(
	ctx context.Context,
	sess *domainauth.Session,
	filter model.MessagesFilter,
) ([]model.Message, error) {
	messages, _, err := s.Inbox(ctx, sess, filter)
	return messages, err
}

// Inbox returns the filtered inbox together with counts over the whole
// unfiltered list, so the badge numbers stay correct under any filter.
func (s *MessageService) Inbox(
	ctx context.Context,
	sess *domainauth.Session,
	filter model.MessagesFilter,
) ([]model.Message, model.MessageStats, error) {
	defer s.auth.PersistUpstreamState(ctx, sess)

	messages, err := s.backend.ListMessages(ctx, sess)
	if err != nil {
		return nil, model.MessageStats{}, err
	}
	stats := model.CountMessages(messages)
	messages = model.FilterMessages(messages, filter)
	model.SortMessagesByNewest(messages)
	return messages, stats, nil
}

// Get returns a single message by ID.
func (s *MessageService) Get(ctx context.Context, sess *domainauth.Session, id string) (model.Message, error) {
	if id == "" {
		return model.Message{}, apperrors.Validation("message id is required")
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	messages, err := s.backend.ListMessages(ctx, sess)
	if err != nil {
		return model.Message{}, err
	}
	for _, m := range messages {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Message{}, apperrors.NotFoundf("message %s not found", id)
}

// MarkOpened transitions a new message to read when the admin opens it.
// The transition is best-effort: a failure is logged and the original
// message returned unchanged, never surfaced to the admin.
func (s *MessageService) MarkOpened(ctx context.Context, sess *domainauth.Session, msg model.Message) model.Message {
	if msg.Status != model.MessageStatusNew {
		return msg
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		s.logBestEffortFailure(ctx, msg.ID, err)
		return msg
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	updated, err := s.backend.UpdateMessageStatus(ctx, sess, msg.ID, model.MessageStatusRead)
	if err != nil {
		s.logBestEffortFailure(ctx, msg.ID, err)
		return msg
	}
	return updated
}

func (s *MessageService) logBestEffortFailure(ctx context.Context, id string, err error) {
	if s.logger != nil {
		s.logger.DebugContext(ctx, "auto mark-read failed", "id", id, "error", err)
	}
}

// UpdateStatus transitions a message to the given status.
func (s *MessageService) UpdateStatus(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	status model.MessageStatus,
) (model.Message, error) {
	if id == "" {
		return model.Message{}, apperrors.Validation("message id is required")
	}
	if !status.Valid() {
		return model.Message{}, apperrors.Validationf("invalid message status: %s", status)
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return model.Message{}, err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	msg, err := s.backend.UpdateMessageStatus(ctx, sess, id, status)
	if err != nil {
		return model.Message{}, err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "message status updated", "id", id, "status", status.String())
	}
	return msg, nil
}

// Delete removes a message.
func (s *MessageService) Delete(ctx context.Context, sess *domainauth.Session, id string) error {
	if id == "" {
		return apperrors.Validation("message id is required")
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	if err := s.backend.DeleteMessage(ctx, sess, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "message deleted", "id", id)
	}
	return nil
}

// Submit validates and forwards a public contact-form submission on
// behalf of the visitor's session.
func (s *MessageService) Submit(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error {
	if err := req.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if err := s.auth.EnsureCSRF(ctx, sess); err != nil {
		return err
	}
	defer s.auth.PersistUpstreamState(ctx, sess)

	return s.backend.SubmitMessage(ctx, sess, req)
}
