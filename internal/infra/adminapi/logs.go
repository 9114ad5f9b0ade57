package adminapi

import (
	"context"
	"net/url"
	"strconv"

	"wunderadmin/internal/domain"
)

type logsResponse struct {
	Entries []domain.LogEntry `json:"entries"`
}

// FetchLogs retrieves the most recent server log entries for the log viewer
// panel. tail caps the number of entries; zero or negative uses the server
// default window.
func (c *Client) FetchLogs(ctx context.Context, tail int) ([]domain.LogEntry, error) {
	query := url.Values{}
	if tail > 0 {
		query.Set("tail", strconv.Itoa(tail))
	}
	var resp logsResponse
	if err := c.getJSON(ctx, "adminapi.FetchLogs", "/logs", query, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}
