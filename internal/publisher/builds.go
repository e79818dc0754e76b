package publisher

import (
	"time"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// Build statuses reported by the publish target API.
const (
	BuildStatusBuilt    = "built"
	BuildStatusBuilding = "building"
	BuildStatusQueued   = "queued"
)

// buildRecencyWindow is how far back an in-flight or freshly completed build
// still covers the latest content.
const buildRecencyWindow = 2 * time.Minute

// ShouldTrigger decides whether requesting a fresh build is necessary given
// the build history, newest first. The publish flow writes many files in
// sequence; a build that is running or just finished inside the recency
// window already covers the latest content, so triggering another would only
// burn CI minutes.
func ShouldTrigger(builds []interfaces.Build, now time.Time) bool {
	if len(builds) == 0 {
		return true
	}

	latest := builds[0]
	switch latest.Status {
	case BuildStatusBuilding, BuildStatusQueued, BuildStatusBuilt:
		if now.Sub(latest.StartedAt) < buildRecencyWindow {
			return false
		}
	}
	return true
}
