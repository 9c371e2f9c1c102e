package upstream

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
)

// ListExperience returns every experience entry, unsorted; presentation
// ordering is the caller's concern.
func (c *Client) ListExperience(ctx context.Context, sess *domainauth.Session) ([]model.ExperienceEntry, error) {
	var entries []model.ExperienceEntry
	if err := c.do(ctx, sess, http.MethodGet, "/experience", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateExperience creates an entry via POST /experience.
func (c *Client) CreateExperience(
	ctx context.Context,
	sess *domainauth.Session,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	var entry model.ExperienceEntry
	if err := c.do(ctx, sess, http.MethodPost, "/experience", req, &entry); err != nil {
		return model.ExperienceEntry{}, err
	}
	return entry, nil
}

// UpdateExperience updates an entry via PUT /experience/{id}.
func (c *Client) UpdateExperience(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.ExperienceRequest,
) (model.ExperienceEntry, error) {
	var entry model.ExperienceEntry
	if err := c.do(ctx, sess, http.MethodPut, "/experience/"+url.PathEscape(id), req, &entry); err != nil {
		return model.ExperienceEntry{}, err
	}
	return entry, nil
}

// DeleteExperience removes an entry via DELETE /experience/{id}.
func (c *Client) DeleteExperience(ctx context.Context, sess *domainauth.Session, id string) error {
	return c.do(ctx, sess, http.MethodDelete, "/experience/"+url.PathEscape(id), nil, nil)
}
