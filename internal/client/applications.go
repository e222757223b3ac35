package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

func applicationPath(id int64) string {
	return "/applications/" + strconv.FormatInt(id, 10)
}

// ListApplications fetches every application of the logged-in user.
func (c *Client) ListApplications(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := c.do(ctx, call{
		op:     "failed to fetch applications",
		method: http.MethodGet,
		path:   "/applications",
		authed: true,
		out:    &apps,
	})
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// CreateApplication stores a new application and returns it with its id.
func (c *Client) CreateApplication(ctx context.Context, app model.NewApplication) (model.Application, error) {
	var created model.Application
	err := c.do(ctx, call{
		op:     "failed to create application",
		method: http.MethodPost,
		path:   "/applications",
		authed: true,
		body:   app,
		out:    &created,
	})
	if err != nil {
		return model.Application{}, err
	}
	return created, nil
}

// UpdateStatus changes the status of one application.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status) (model.Application, error) {
	var updated model.Application
	err := c.do(ctx, call{
		op:     "failed to update status",
		method: http.MethodPatch,
		path:   applicationPath(id),
		authed: true,
		body:   model.StatusUpdate{Status: status},
		out:    &updated,
	})
	if err != nil {
		return model.Application{}, err
	}
	return updated, nil
}

// DeleteApplication removes one application. The response body is ignored.
func (c *Client) DeleteApplication(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op:     "failed to delete application",
		method: http.MethodDelete,
		path:   applicationPath(id),
		authed: true,
	})
}
