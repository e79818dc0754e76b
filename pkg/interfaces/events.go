package interfaces

// PublishPhase identifies where in the publish pipeline an event occurred.
type PublishPhase string

const (
	PhaseRead    PublishPhase = "read"
	PhaseWrite   PublishPhase = "write"
	PhaseEnable  PublishPhase = "enable"
	PhaseTrigger PublishPhase = "trigger"
)

// PublishOutcome reports how a single publish step ended.
type PublishOutcome string

const (
	OutcomeCreated PublishOutcome = "created"
	OutcomeUpdated PublishOutcome = "updated"
	OutcomeSkipped PublishOutcome = "skipped"
	OutcomeFailed  PublishOutcome = "failed"
)

// PublishEvents receives structured progress notifications from the
// synchronizer so host applications can render progress without the core
// depending on any presentation mechanism. Implementations must be safe for
// calls from the publishing goroutine and should return quickly.
type PublishEvents interface {
	OnArtifact(artifact string, phase PublishPhase, outcome PublishOutcome, err error)
}

// PublishEventsFunc adapts a plain function to the PublishEvents contract.
type PublishEventsFunc func(artifact string, phase PublishPhase, outcome PublishOutcome, err error)

// OnArtifact satisfies PublishEvents.
func (f PublishEventsFunc) OnArtifact(artifact string, phase PublishPhase, outcome PublishOutcome, err error) {
	f(artifact, phase, outcome, err)
}
