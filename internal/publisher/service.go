package publisher

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pages-sync/internal/gate"
	"github.com/goliatone/go-pages-sync/internal/github"
	"github.com/goliatone/go-pages-sync/internal/logging"
	"github.com/goliatone/go-pages-sync/internal/post"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

var (
	// ErrStoreRequired indicates the service was built without local storage.
	ErrStoreRequired = errors.New("publisher: store is required")
	// ErrClientRequired indicates the service was built without a repo client.
	ErrClientRequired = errors.New("publisher: repo client is required")
	// ErrGateRequired indicates the service was built without a publish gate.
	ErrGateRequired = errors.New("publisher: publish gate is required")
)

// defaultPostDelay spaces successive post writes to stay under remote
// abuse-detection thresholds on large collections. It is distinct from the
// transport-level pacing applied by the client queue.
const defaultPostDelay = 300 * time.Millisecond

// PacingPolicy parameterizes the delay inserted between successive post
// writes during a bulk publish.
type PacingPolicy struct {
	PostDelay time.Duration
	Sleep     func(time.Duration)
}

func (p PacingPolicy) pause() {
	if p.PostDelay > 0 && p.Sleep != nil {
		p.Sleep(p.PostDelay)
	}
}

// Service exposes the publish and synchronization use cases.
type Service interface {
	PublishAndRefresh(ctx context.Context) (*Run, error)
	SyncSiteConfig(ctx context.Context) error
	SyncHomepage(ctx context.Context) error
	ImportPosts(ctx context.Context) (int, error)
}

// Config encapsulates the dependencies required by the synchronizer.
type Config struct {
	Store  interfaces.Store
	Client interfaces.RepoClient
	Gate   *gate.Gate
	Codec  *post.Codec
	Events interfaces.PublishEvents
	Logger interfaces.Logger
	Pacing *PacingPolicy
	Clock  func() time.Time
}

type service struct {
	store  interfaces.Store
	client interfaces.RepoClient
	gate   *gate.Gate
	codec  *post.Codec
	events interfaces.PublishEvents
	logger interfaces.Logger
	pacing PacingPolicy
	now    func() time.Time
}

// NewService builds the synchronizer from the supplied configuration.
func NewService(cfg Config) (Service, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Client == nil {
		return nil, ErrClientRequired
	}
	if cfg.Gate == nil {
		return nil, ErrGateRequired
	}

	s := &service{
		store:  cfg.Store,
		client: cfg.Client,
		gate:   cfg.Gate,
		codec:  cfg.Codec,
		events: cfg.Events,
		logger: cfg.Logger,
		pacing: PacingPolicy{PostDelay: defaultPostDelay, Sleep: time.Sleep},
		now:    time.Now,
	}
	if s.codec == nil {
		s.codec = post.NewCodec()
	}
	if s.events == nil {
		s.events = interfaces.PublishEventsFunc(func(string, interfaces.PublishPhase, interfaces.PublishOutcome, error) {})
	}
	if s.logger == nil {
		s.logger = logging.NoOp()
	}
	if cfg.Pacing != nil {
		s.pacing = *cfg.Pacing
		if s.pacing.Sleep == nil {
			s.pacing.Sleep = time.Sleep
		}
	}
	if cfg.Clock != nil {
		s.now = cfg.Clock
	}
	return s, nil
}

// localState is the fan-in result of the concurrent local reads.
type localState struct {
	config    interfaces.SiteConfig
	homepage  string
	posts     []interfaces.Post
	configErr error
	homeErr   error
	postsErr  error
}

// remoteState is the fan-in result of the concurrent remote reads. A missing
// file is represented by an empty SHA so the subsequent write creates it.
type remoteState struct {
	config   interfaces.RemoteFile
	homepage interfaces.RemoteFile
	readme   interfaces.RemoteFile
	errs     []error
}

// PublishAndRefresh runs the full publish algorithm. Gate denials return a
// declined run without attempting any work; otherwise the run proceeds to
// completion, tolerating per-artifact failures, and always releases the
// in-flight lock.
func (s *service) PublishAndRefresh(ctx context.Context) (*Run, error) {
	run := &Run{ID: uuid.New(), StartedAt: s.now()}

	if !s.gate.CanProceed() {
		run.Declined = DeclineCooldown
		run.RemainingSeconds = s.gate.RemainingSeconds()
		s.logger.Info("publish.declined", "reason", run.Declined, "remaining_seconds", run.RemainingSeconds)
		return run, nil
	}
	if err := s.gate.TryAcquire(); err != nil {
		run.Declined = DeclineInProgress
		s.logger.Info("publish.declined", "reason", run.Declined)
		return run, nil
	}

	defer func() {
		// Step 7: the trigger time and bookkeeping are recorded regardless
		// of outcome so rapid retries stay behind the cooldown.
		s.gate.RecordTriggered()
		s.persistLastSync(ctx)
		s.gate.Release()
	}()

	local := s.loadLocal(ctx)
	remote, err := s.readRemote(ctx)
	if err != nil {
		// Nothing downstream can succeed without valid credentials.
		return run, err
	}

	s.writeArtifacts(ctx, run, local, remote)
	s.writePosts(ctx, run, local)

	contentErrors := len(run.Errors)

	target, err := s.client.EnablePublishTarget(ctx)
	if err != nil {
		s.recordError(run, ArtifactTarget, err)
		s.events.OnArtifact(ArtifactTarget, interfaces.PhaseEnable, interfaces.OutcomeFailed, err)
	} else {
		run.SiteURL = target.URL
		s.events.OnArtifact(ArtifactTarget, interfaces.PhaseEnable, interfaces.OutcomeUpdated, nil)
	}

	if contentErrors == 0 && err == nil {
		s.maybeTriggerBuild(ctx, run)
	} else {
		// A build of an incompletely synced tree would publish stale or
		// partial content.
		s.events.OnArtifact(ArtifactBuild, interfaces.PhaseTrigger, interfaces.OutcomeSkipped, nil)
	}

	s.logger.Info("publish.finished",
		"run_id", run.ID.String(),
		"succeeded", run.Succeeded,
		"errors", len(run.Errors),
	)
	return run, nil
}

// loadLocal fans out the independent local reads and joins them.
func (s *service) loadLocal(ctx context.Context) localState {
	var state localState
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		state.config, state.configErr = s.store.GetSiteConfig(ctx)
	}()
	go func() {
		defer wg.Done()
		state.homepage, state.homeErr = s.store.GetHomepage(ctx)
	}()
	go func() {
		defer wg.Done()
		state.posts, state.postsErr = s.store.ListPosts(ctx)
	}()
	wg.Wait()

	return state
}

// readRemote fans out the reads of the three well-known files. A NotFound
// becomes a synthetic empty RemoteFile so a first publish to a fresh
// repository succeeds; an authorization failure aborts the whole run.
func (s *service) readRemote(ctx context.Context) (remoteState, error) {
	var state remoteState
	var mu sync.Mutex
	var wg sync.WaitGroup

	read := func(filePath string, into *interfaces.RemoteFile) {
		defer wg.Done()
		file, err := s.client.ReadFile(ctx, filePath)
		if err != nil {
			if errors.Is(err, github.ErrNotFound) {
				*into = interfaces.RemoteFile{Path: filePath}
				return
			}
			mu.Lock()
			state.errs = append(state.errs, err)
			mu.Unlock()
			*into = interfaces.RemoteFile{Path: filePath}
			return
		}
		*into = file
	}

	wg.Add(3)
	go read(github.ConfigPath, &state.config)
	go read(github.HomepagePath, &state.homepage)
	go read(github.ReadmePath, &state.readme)
	wg.Wait()

	for _, err := range state.errs {
		if errors.Is(err, github.ErrUnauthorized) ||
			errors.Is(err, github.ErrNotConfigured) ||
			errors.Is(err, github.ErrInvalidLocation) {
			return state, err
		}
	}
	return state, nil
}

// writeArtifacts performs the ordered best-effort writes of the site
// configuration, homepage, and README. Each write is attempted
// independently; a failure is recorded and does not stop the rest.
func (s *service) writeArtifacts(ctx context.Context, run *Run, local localState, remote remoteState) {
	if local.configErr != nil {
		s.recordError(run, ArtifactSiteConfig, local.configErr)
	} else if body, err := RenderSiteConfig(local.config); err != nil {
		s.recordError(run, ArtifactSiteConfig, err)
	} else {
		s.writeOne(ctx, run, ArtifactSiteConfig, github.ConfigPath, body, remote.config.SHA)
	}

	if local.homeErr != nil {
		s.recordError(run, ArtifactHomepage, local.homeErr)
	} else {
		s.writeOne(ctx, run, ArtifactHomepage, github.HomepagePath, local.homepage, remote.homepage.SHA)
	}

	readme := RenderReadme(local.config, local.config.BaseURL)
	s.writeOne(ctx, run, ArtifactReadme, github.ReadmePath, readme, remote.readme.SHA)
}

func (s *service) writeOne(ctx context.Context, run *Run, artifact, filePath, body, sha string) {
	outcome := interfaces.OutcomeUpdated
	if sha == "" {
		outcome = interfaces.OutcomeCreated
	}

	if _, err := s.client.WriteFile(ctx, filePath, body, sha); err != nil {
		s.recordError(run, artifact, err)
		s.events.OnArtifact(artifact, interfaces.PhaseWrite, interfaces.OutcomeFailed, err)
		return
	}
	run.Succeeded++
	s.events.OnArtifact(artifact, interfaces.PhaseWrite, outcome, nil)
}

// writePosts lists remote posts once to build a filename-to-revision lookup,
// then writes each local post in collection order with an inter-item delay.
// Post failures are isolated: this is a partial-failure-tolerant bulk
// operation, not all-or-nothing.
func (s *service) writePosts(ctx context.Context, run *Run, local localState) {
	if local.postsErr != nil {
		s.recordError(run, ArtifactPosts, local.postsErr)
		return
	}
	if len(local.posts) == 0 {
		return
	}

	revisions := map[string]string{}
	remotePosts, err := s.client.ListPosts(ctx)
	if err != nil && !errors.Is(err, github.ErrNotFound) {
		s.recordError(run, ArtifactPosts, err)
		return
	}
	for _, remote := range remotePosts {
		revisions[path.Base(remote.Path)] = remote.SHA
	}

	for i, p := range local.posts {
		if i > 0 {
			s.pacing.pause()
		}

		body := s.codec.Encode(p)
		sha := revisions[p.Filename]
		outcome := interfaces.OutcomeUpdated
		if sha == "" {
			outcome = interfaces.OutcomeCreated
		}

		written, err := s.client.WriteFile(ctx, path.Join(github.PostsDir, p.Filename), body, sha)
		if err != nil {
			s.recordError(run, p.Filename, err)
			s.events.OnArtifact(p.Filename, interfaces.PhaseWrite, interfaces.OutcomeFailed, err)
			continue
		}

		run.Succeeded++
		s.events.OnArtifact(p.Filename, interfaces.PhaseWrite, outcome, nil)

		// Keep the local revision current so the next publish updates
		// instead of colliding.
		p.SHA = written.SHA
		if err := s.store.SavePost(ctx, p); err != nil {
			s.logger.Warn("publish.post.revision_not_saved", "filename", p.Filename, "error", err)
		}
	}
}

func (s *service) maybeTriggerBuild(ctx context.Context, run *Run) {
	builds, err := s.client.ListRecentBuilds(ctx)
	if err != nil {
		s.recordError(run, ArtifactBuild, err)
		s.events.OnArtifact(ArtifactBuild, interfaces.PhaseTrigger, interfaces.OutcomeFailed, err)
		return
	}

	if !ShouldTrigger(builds, s.now()) {
		s.logger.Debug("publish.build.skipped", "reason", "recent build covers content")
		s.events.OnArtifact(ArtifactBuild, interfaces.PhaseTrigger, interfaces.OutcomeSkipped, nil)
		return
	}

	if err := s.client.TriggerBuild(ctx); err != nil {
		s.recordError(run, ArtifactBuild, err)
		s.events.OnArtifact(ArtifactBuild, interfaces.PhaseTrigger, interfaces.OutcomeFailed, err)
		return
	}
	s.events.OnArtifact(ArtifactBuild, interfaces.PhaseTrigger, interfaces.OutcomeUpdated, nil)
}

func (s *service) persistLastSync(ctx context.Context) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		settings = interfaces.Settings{SyncEnabled: true}
	}
	settings.LastSync = s.now()
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		s.logger.Warn("publish.settings_not_saved", "error", err)
	}
}

func (s *service) recordError(run *Run, artifact string, err error) {
	run.Errors = append(run.Errors, fmt.Sprintf("%s: %v", artifact, err))
	s.logger.Error("publish.artifact.failed", "artifact", artifact, "error", err)
}

// SyncSiteConfig pushes only the site configuration file, outside the gate.
// It follows the same read-existing, render, write-with-precondition pattern
// as the bulk publish.
func (s *service) SyncSiteConfig(ctx context.Context) error {
	config, err := s.store.GetSiteConfig(ctx)
	if err != nil {
		return err
	}
	body, err := RenderSiteConfig(config)
	if err != nil {
		return err
	}

	remote, err := s.readOrEmpty(ctx, github.ConfigPath)
	if err != nil {
		return err
	}
	_, err = s.client.WriteFile(ctx, github.ConfigPath, body, remote.SHA)
	return err
}

// SyncHomepage pushes only the homepage document, outside the gate.
func (s *service) SyncHomepage(ctx context.Context) error {
	homepage, err := s.store.GetHomepage(ctx)
	if err != nil {
		return err
	}

	remote, err := s.readOrEmpty(ctx, github.HomepagePath)
	if err != nil {
		return err
	}
	_, err = s.client.WriteFile(ctx, github.HomepagePath, homepage, remote.SHA)
	return err
}

// ImportPosts replaces the local post collection with the remote one. Each
// remote file is fetched, decoded, and saved with its revision so future
// publishes update rather than collide. Returns the number of imported
// posts.
func (s *service) ImportPosts(ctx context.Context) (int, error) {
	remotePosts, err := s.client.ListPosts(ctx)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.ListPosts(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range existing {
		if err := s.store.DeletePost(ctx, p.Filename); err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, remote := range remotePosts {
		file, err := s.client.ReadFile(ctx, remote.Path)
		if err != nil {
			return imported, err
		}

		decoded := s.codec.Decode(path.Base(remote.Path), file.Content)
		decoded.SHA = file.SHA
		if err := s.store.SavePost(ctx, decoded); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (s *service) readOrEmpty(ctx context.Context, filePath string) (interfaces.RemoteFile, error) {
	file, err := s.client.ReadFile(ctx, filePath)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return interfaces.RemoteFile{Path: filePath}, nil
		}
		return interfaces.RemoteFile{}, err
	}
	return file, nil
}
