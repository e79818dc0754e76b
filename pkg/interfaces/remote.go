package interfaces

import (
	"context"
	"time"
)

// RemoteFile is a read projection of one file in the remote content store.
// An empty SHA signals the file does not exist yet and the next write must
// be a create.
type RemoteFile struct {
	Path    string
	Content string
	SHA     string
}

// Build is one entry in the remote static-site build history, ordered
// newest first when listed.
type Build struct {
	Status    string
	StartedAt time.Time
}

// PublishTarget describes the static-site hosting configuration attached to
// the repository.
type PublishTarget struct {
	URL    string
	Branch string
	Status string
}

// RepoClient is the authenticated channel to the remote file store and its
// static-site publish API. Implementations serialize requests and apply
// inter-request pacing; callers may submit concurrently.
type RepoClient interface {
	Configure(repoURL, token string) error
	VerifyReachable(ctx context.Context) error

	ReadFile(ctx context.Context, path string) (RemoteFile, error)
	WriteFile(ctx context.Context, path, content, sha string) (RemoteFile, error)
	DeleteFile(ctx context.Context, path, sha string) error
	ListPosts(ctx context.Context) ([]RemoteFile, error)

	GetPublishTargetStatus(ctx context.Context) (PublishTarget, error)
	EnablePublishTarget(ctx context.Context) (PublishTarget, error)
	ListRecentBuilds(ctx context.Context) ([]Build, error)
	TriggerBuild(ctx context.Context) error
}
