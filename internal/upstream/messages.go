package upstream

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
)

type messageStatusRequest struct {
	Status model.MessageStatus `json:"status"`
}

// ListMessages returns the full inbox; filtering and ordering happen
// client-side.
func (c *Client) ListMessages(ctx context.Context, sess *domainauth.Session) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, sess, http.MethodGet, "/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SubmitMessage sends a visitor contact-form submission via POST /messages.
func (c *Client) SubmitMessage(ctx context.Context, sess *domainauth.Session, req model.ContactRequest) error {
	return c.do(ctx, sess, http.MethodPost, "/messages", req, nil)
}

// UpdateMessageStatus transitions a message via PUT /messages/{id}/status.
func (c *Client) UpdateMessageStatus(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	status model.MessageStatus,
) (model.Message, error) {
	var msg model.Message
	path := "/messages/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, sess, http.MethodPut, path, messageStatusRequest{Status: status}, &msg); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// DeleteMessage removes a message via DELETE /messages/{id}.
func (c *Client) DeleteMessage(ctx context.Context, sess *domainauth.Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/messages/"+url.PathEscape(id), nil, nil)
}
