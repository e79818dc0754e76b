package publisher

import (
	"time"

	"github.com/google/uuid"
)

// Decline reports why a publish attempt performed no work.
type Decline string

const (
	// DeclineNone means the run executed.
	DeclineNone Decline = ""
	// DeclineCooldown means the global cooldown window had not elapsed.
	DeclineCooldown Decline = "cooldown-active"
	// DeclineInProgress means another attempt held the in-flight lock.
	DeclineInProgress Decline = "in-progress"
)

// Artifact names used to tag per-item errors and progress events.
const (
	ArtifactSiteConfig = "site-config"
	ArtifactHomepage   = "homepage"
	ArtifactReadme     = "readme"
	ArtifactPosts      = "posts"
	ArtifactTarget     = "publish-target"
	ArtifactBuild      = "build"
)

// Run is the transient record of one synchronization attempt. It is returned
// to the caller and then discarded.
type Run struct {
	ID               uuid.UUID
	StartedAt        time.Time
	Succeeded        int
	Errors           []string
	SiteURL          string
	Declined         Decline
	RemainingSeconds int
}

// Executed reports whether the attempt got past the gate. Declined runs
// perform zero writes.
func (r *Run) Executed() bool {
	return r.Declined == DeclineNone
}

// PartialFailure reports whether the run completed with one or more
// per-artifact errors recorded. It is distinct from a gate decline: something
// happened, and some of it failed.
func (r *Run) PartialFailure() bool {
	return r.Declined == DeclineNone && len(r.Errors) > 0
}
