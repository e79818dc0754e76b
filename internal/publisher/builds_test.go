package publisher

import (
	"testing"
	"time"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

func TestShouldTrigger(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		builds []interfaces.Build
		want   bool
	}{
		{
			name:   "no build history",
			builds: nil,
			want:   true,
		},
		{
			name: "build started seconds ago",
			builds: []interfaces.Build{
				{Status: BuildStatusBuilding, StartedAt: now.Add(-30 * time.Second)},
			},
			want: false,
		},
		{
			name: "build queued inside window",
			builds: []interfaces.Build{
				{Status: BuildStatusQueued, StartedAt: now.Add(-time.Minute)},
			},
			want: false,
		},
		{
			name: "completed build inside window",
			builds: []interfaces.Build{
				{Status: BuildStatusBuilt, StartedAt: now.Add(-90 * time.Second)},
			},
			want: false,
		},
		{
			name: "latest build outside window",
			builds: []interfaces.Build{
				{Status: BuildStatusBuilt, StartedAt: now.Add(-3 * time.Minute)},
				{Status: BuildStatusBuilt, StartedAt: now.Add(-10 * time.Minute)},
			},
			want: true,
		},
		{
			name: "errored build does not suppress",
			builds: []interfaces.Build{
				{Status: "errored", StartedAt: now.Add(-10 * time.Second)},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldTrigger(tt.builds, now); got != tt.want {
				t.Fatalf("ShouldTrigger() = %v, want %v", got, tt.want)
			}
		})
	}
}
