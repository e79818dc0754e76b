package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-pages-sync/internal/logging"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// Well-known remote paths for a Jekyll site repository.
const (
	ConfigPath   = "_config.yml"
	HomepagePath = "index.md"
	ReadmePath   = "README.md"
	PostsDir     = "_posts"
)

const defaultBaseURL = "https://api.github.com"

// Committer is the fixed identity attached to every write commit.
type Committer struct {
	Name  string
	Email string
}

var defaultCommitter = Committer{
	Name:  "pages-sync",
	Email: "pages-sync@users.noreply.github.com",
}

// Client is the single authenticated channel to the repository contents API
// and the static-site publish API. Every outbound call passes through a
// FIFO queue with inter-request pacing, so at most one request is on the
// wire at a time regardless of how many logical callers submit requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	token      string
	committer  Committer
	queue      *requestQueue
	logger     interfaces.Logger
}

// ClientOption mutates the client before it is finalised.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the API base URL. Used by tests and enterprise
// deployments.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithPacing overrides the minimum inter-request spacing.
func WithPacing(spacing time.Duration) ClientOption {
	return func(c *Client) {
		if spacing > 0 {
			c.queue = newRequestQueue(spacing)
		}
	}
}

// WithCommitter overrides the commit identity attached to writes.
func WithCommitter(committer Committer) ClientOption {
	return func(c *Client) {
		if committer.Name != "" && committer.Email != "" {
			c.committer = committer
		}
	}
}

// WithLogger injects the client logger.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds an unconfigured client. Call Configure before issuing
// requests.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		committer:  defaultCommitter,
		queue:      newRequestQueue(defaultSpacing),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.RepoClient = (*Client)(nil)

// Configure parses the owner/repository pair out of a repository URL and
// stores the credential for subsequent calls. It fails with
// ErrInvalidLocation when the URL does not match the host/owner/repo shape.
func (c *Client) Configure(repoURL, token string) error {
	owner, repo, err := parseRepoURL(repoURL)
	if err != nil {
		return err
	}
	c.owner = owner
	c.repo = repo
	c.token = strings.TrimSpace(token)
	c.logger.Debug("github.configured", "owner", owner, "repo", repo)
	return nil
}

// Close stops the request queue. The client must not be used afterwards.
func (c *Client) Close() {
	c.queue.Close()
}

func parseRepoURL(repoURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSpace(repoURL)
	if trimmed == "" {
		return "", "", ErrInvalidLocation
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, parseErr := url.Parse(trimmed)
	if parseErr != nil || parsed.Host == "" {
		return "", "", ErrInvalidLocation
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", ErrInvalidLocation
	}
	return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
}

// VerifyReachable issues a lightweight existence check against the
// repository, failing with ErrUnauthorized, ErrNotFound, or ErrUnreachable
// so callers can render distinct guidance.
func (c *Client) VerifyReachable(ctx context.Context) error {
	if c.owner == "" {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodGet, c.repoPath(""), nil, nil, "verify")
}

// ReadFile fetches one file, failing with ErrNotFound when absent.
func (c *Client) ReadFile(ctx context.Context, filePath string) (interfaces.RemoteFile, error) {
	if c.owner == "" {
		return interfaces.RemoteFile{}, ErrNotConfigured
	}

	var payload contentResponse
	if err := c.do(ctx, http.MethodGet, c.contentPath(filePath), nil, &payload, "read"); err != nil {
		return interfaces.RemoteFile{}, err
	}

	content, err := decodePayload(payload.Content)
	if err != nil {
		return interfaces.RemoteFile{}, apiError("read", filePath, 0, ErrEncoding)
	}
	return interfaces.RemoteFile{Path: payload.Path, Content: content, SHA: payload.SHA}, nil
}

// WriteFile creates the file when sha is empty, otherwise updates it with
// the sha as an optimistic-concurrency precondition. It fails with
// ErrConflict when the precondition no longer matches and ErrAlreadyExists
// on a create collision.
func (c *Client) WriteFile(ctx context.Context, filePath, content, sha string) (interfaces.RemoteFile, error) {
	if c.owner == "" {
		return interfaces.RemoteFile{}, ErrNotConfigured
	}

	encoded, err := encodePayload(content)
	if err != nil {
		return interfaces.RemoteFile{}, err
	}

	action := "Update"
	if sha == "" {
		action = "Create"
	}
	body := writeRequest{
		Message: fmt.Sprintf("%s %s", action, filePath),
		Content: encoded,
		SHA:     sha,
		Committer: committerPayload{
			Name:  c.committer.Name,
			Email: c.committer.Email,
		},
	}

	var payload writeResponse
	if err := c.do(ctx, http.MethodPut, c.contentPath(filePath), body, &payload, "write"); err != nil {
		return interfaces.RemoteFile{}, err
	}
	return interfaces.RemoteFile{Path: filePath, Content: content, SHA: payload.Content.SHA}, nil
}

// DeleteFile removes one file using sha as the precondition.
func (c *Client) DeleteFile(ctx context.Context, filePath, sha string) error {
	if c.owner == "" {
		return ErrNotConfigured
	}

	body := deleteRequest{
		Message: fmt.Sprintf("Delete %s", filePath),
		SHA:     sha,
		Committer: committerPayload{
			Name:  c.committer.Name,
			Email: c.committer.Email,
		},
	}
	return c.do(ctx, http.MethodDelete, c.contentPath(filePath), body, nil, "delete")
}

// ListPosts lists the post files under the posts directory, filtered to the
// post extension. A missing directory surfaces as ErrNotFound, which callers
// treat as a user-actionable setup problem rather than a crash.
func (c *Client) ListPosts(ctx context.Context) ([]interfaces.RemoteFile, error) {
	if c.owner == "" {
		return nil, ErrNotConfigured
	}

	var entries []contentResponse
	if err := c.do(ctx, http.MethodGet, c.contentPath(PostsDir), nil, &entries, "list"); err != nil {
		return nil, err
	}

	files := make([]interfaces.RemoteFile, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != "file" || !strings.HasSuffix(entry.Name, ".md") {
			continue
		}
		files = append(files, interfaces.RemoteFile{Path: entry.Path, SHA: entry.SHA})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (c *Client) repoPath(suffix string) string {
	base := fmt.Sprintf("/repos/%s/%s", c.owner, c.repo)
	if suffix == "" {
		return base
	}
	return base + suffix
}

func (c *Client) contentPath(filePath string) string {
	return c.repoPath("/contents/" + strings.TrimPrefix(path.Clean(filePath), "/"))
}

// do serializes the request through the queue, applies authentication, and
// maps response statuses onto the semantic error kinds.
func (c *Client) do(ctx context.Context, method, requestPath string, body, out any, op string) error {
	return c.queue.Do(ctx, func() error {
		var reader io.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return err
			}
			reader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return apiError(op, requestPath, 0, ErrUnreachable)
		}
		defer resp.Body.Close()

		if kind := classifyStatus(resp.StatusCode, method, body); kind != nil {
			c.logger.Debug("github.request.failed",
				"op", op,
				"path", requestPath,
				"status", resp.StatusCode,
			)
			return apiError(op, requestPath, resp.StatusCode, kind)
		}

		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// classifyStatus maps an HTTP status onto a semantic error kind, or nil for
// success. Write conflicts need the request shape to distinguish a stale
// precondition from a create collision.
func classifyStatus(status int, method string, body any) error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		if method == http.MethodPut {
			if write, ok := body.(writeRequest); ok && write.SHA == "" {
				return ErrAlreadyExists
			}
			return ErrConflict
		}
		return ErrConflict
	default:
		return ErrUnreachable
	}
}
