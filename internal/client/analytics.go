package client

import (
	"context"
	"net/http"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

// Summary fetches the server-computed status counts.
func (c *Client) Summary(ctx context.Context) (model.Summary, error) {
	var summary model.Summary
	err := c.do(ctx, call{
		op:     "failed to fetch summary",
		method: http.MethodGet,
		path:   "/analytics/summary",
		authed: true,
		out:    &summary,
	})
	if err != nil {
		return model.Summary{}, err
	}
	return summary, nil
}
