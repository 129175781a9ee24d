package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the server rejects the configured token.
var ErrUnauthorized = errors.New("plex: invalid or missing token")

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to one Plex Media Server.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// NewClient constructs a client for the server at host:port. A nil doer
// falls back to a default http.Client with a 30 second timeout.
func NewClient(host string, port int, token string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", strings.TrimSpace(host), port),
		token:   strings.TrimSpace(token),
		client:  doer,
	}
}

// Sections lists the server's libraries as a title-to-section-key map.
func (c *Client) Sections(ctx context.Context) (map[string]string, error) {
	var container sectionContainer
	if err := c.doJSONRequest(ctx, "/library/sections", &container); err != nil {
		return nil, err
	}

	sections := make(map[string]string, len(container.MediaContainer.Directory))
	for _, directory := range container.MediaContainer.Directory {
		sections[directory.Title] = directory.Key
	}
	return sections, nil
}

// Videos lists the video items in a section, including the file paths
// reported for each item's media parts.
func (c *Client) Videos(ctx context.Context, sectionKey string) ([]VideoSummary, error) {
	path := fmt.Sprintf("/library/sections/%s/all", url.PathEscape(sectionKey))
	var container videoContainer
	if err := c.doJSONRequest(ctx, path, &container); err != nil {
		return nil, err
	}

	videos := make([]VideoSummary, 0, len(container.MediaContainer.Metadata))
	for _, metadata := range container.MediaContainer.Metadata {
		summary := VideoSummary{
			RatingKey: metadata.RatingKey,
			Title:     metadata.Title,
			ViewCount: metadata.ViewCount,
		}
		for _, media := range metadata.Media {
			for _, part := range media.Part {
				if file := strings.TrimSpace(part.File); file != "" {
					summary.Files = append(summary.Files, file)
				}
			}
		}
		videos = append(videos, summary)
	}
	return videos, nil
}

// VideoDetail fetches the detailed metadata for one video item.
func (c *Client) VideoDetail(ctx context.Context, ratingKey string) (VideoDetail, error) {
	path := fmt.Sprintf("/library/metadata/%s", url.PathEscape(ratingKey))
	var container detailContainer
	if err := c.doJSONRequest(ctx, path, &container); err != nil {
		return VideoDetail{}, err
	}
	if len(container.MediaContainer.Metadata) == 0 {
		return VideoDetail{}, fmt.Errorf("plex: no metadata returned for rating key %s", ratingKey)
	}
	return VideoDetail{UserRating: container.MediaContainer.Metadata[0].UserRating}, nil
}

func (c *Client) doJSONRequest(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Plex-Token", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("plex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("plex GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
