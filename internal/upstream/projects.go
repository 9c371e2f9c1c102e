package upstream

import (
	"context"
	"net/http"

	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
)

// ListProjects returns projects via GET /projects. With adminView the
// backend includes unpublished entries; that variant requires an
// authenticated session.
func (c *Client) ListProjects(ctx context.Context, sess *domainauth.Session, adminView bool) ([]model.Project, error) {
	path := "/projects"
	if adminView {
		path += "?admin=true"
	}
	var projects []model.Project
	if err := c.do(ctx, sess, http.MethodGet, path, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
