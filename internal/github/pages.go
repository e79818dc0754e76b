package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// Candidate source branches tried in order when enabling the publish target.
// The first branch the remote accepts wins.
var sourceBranches = []string{"main", "master"}

// GetPublishTargetStatus reports the static-site hosting configuration,
// failing with ErrNotFound when the publish target has not been enabled.
func (c *Client) GetPublishTargetStatus(ctx context.Context) (interfaces.PublishTarget, error) {
	if c.owner == "" {
		return interfaces.PublishTarget{}, ErrNotConfigured
	}

	var payload pagesResponse
	if err := c.do(ctx, http.MethodGet, c.repoPath("/pages"), nil, &payload, "pages.status"); err != nil {
		return interfaces.PublishTarget{}, err
	}
	return interfaces.PublishTarget{
		URL:    payload.URL,
		Branch: payload.Source.Branch,
		Status: payload.Status,
	}, nil
}

// EnablePublishTarget idempotently ensures the publish target exists. When
// absent it is created from the first candidate source branch the remote
// accepts; an already-enabled target is returned as-is.
func (c *Client) EnablePublishTarget(ctx context.Context) (interfaces.PublishTarget, error) {
	if c.owner == "" {
		return interfaces.PublishTarget{}, ErrNotConfigured
	}

	existing, err := c.GetPublishTargetStatus(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return interfaces.PublishTarget{}, err
	}

	var lastErr error
	for _, branch := range sourceBranches {
		body := pagesCreateRequest{Source: pagesSource{Branch: branch, Path: "/"}}
		var payload pagesResponse
		createErr := c.do(ctx, http.MethodPost, c.repoPath("/pages"), body, &payload, "pages.enable")
		if createErr == nil {
			c.logger.Info("github.pages.enabled", "branch", branch)
			return interfaces.PublishTarget{
				URL:    payload.URL,
				Branch: branch,
				Status: payload.Status,
			}, nil
		}
		var apiErr *APIError
		if errors.As(createErr, &apiErr) && apiErr.Status == http.StatusConflict {
			// Another caller enabled it between our check and create.
			return c.GetPublishTargetStatus(ctx)
		}
		// Anything else, including a rejected source branch, moves on to
		// the next candidate.
		lastErr = createErr
	}
	return interfaces.PublishTarget{}, lastErr
}

// ListRecentBuilds returns build records ordered newest first.
func (c *Client) ListRecentBuilds(ctx context.Context) ([]interfaces.Build, error) {
	if c.owner == "" {
		return nil, ErrNotConfigured
	}

	var payload []buildResponse
	if err := c.do(ctx, http.MethodGet, c.repoPath("/pages/builds"), nil, &payload, "pages.builds"); err != nil {
		return nil, err
	}

	builds := make([]interfaces.Build, 0, len(payload))
	for _, entry := range payload {
		build := interfaces.Build{Status: entry.Status}
		if started, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
			build.StartedAt = started
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// TriggerBuild requests a fresh build of the publish target, failing with
// ErrNotFound when the target is not enabled.
func (c *Client) TriggerBuild(ctx context.Context) error {
	if c.owner == "" {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodPost, c.repoPath("/pages/builds"), nil, nil, "pages.trigger")
}
