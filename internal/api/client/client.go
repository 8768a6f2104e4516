package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"campus-notify/internal/api"
	"campus-notify/internal/event"
	"campus-notify/internal/session"
)

// Identity performs the authenticated identity lookup.
func (c *implClient) Identity(ctx context.Context) (session.Identity, error) {
	var out identityResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", &out); err != nil {
		return session.Identity{}, err
	}
	if !out.Success || out.User.ID == "" {
		return session.Identity{}, fmt.Errorf("%w: identity lookup returned no user", api.ErrServer)
	}
	return out.User, nil
}

// UnreadCounts fetches the authoritative unread totals.
func (c *implClient) UnreadCounts(ctx context.Context) (event.Counts, error) {
	var out countsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications/unread-count", &out); err != nil {
		return event.Counts{}, err
	}
	if !out.Success {
		return event.Counts{}, fmt.Errorf("%w: %s", api.ErrServer, out.Message)
	}
	return event.Counts{Total: out.Total, ByType: out.Counts}, nil
}

// Notifications fetches one page of notifications.
func (c *implClient) Notifications(ctx context.Context, limit, offset int) (api.Page, error) {
	limit = api.ClampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out pageResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications?"+q.Encode(), &out); err != nil {
		return api.Page{}, err
	}
	if !out.Success {
		return api.Page{}, fmt.Errorf("%w: %s", api.ErrServer, out.Message)
	}
	return api.Page{Events: out.Notifications, Total: out.Total}, nil
}

// MarkRead marks a single notification read by id.
func (c *implClient) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", api.ErrNotFound)
	}
	var out statusResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/notifications/"+url.PathEscape(id)+"/read", &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("%w: mark read %s: %s", api.ErrServer, id, out.Message)
	}
	return nil
}

// MarkAllRead marks every notification read.
func (c *implClient) MarkAllRead(ctx context.Context) error {
	var out statusResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/notifications/read-all", &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("%w: mark all read: %s", api.ErrServer, out.Message)
	}
	return nil
}

// do performs one authenticated request and decodes the response body.
// On 401/403 it clears the whole credential chain before returning.
func (c *implClient) do(ctx context.Context, method, path string, out interface{}) error {
	token, err := c.creds.Token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Errorf(ctx, "failed to clear credentials after %d: %v", resp.StatusCode, clearErr)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return api.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return api.ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: status %d on %s %s", api.ErrServer, resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", api.ErrServer, method, path, err)
	}
	return nil
}
