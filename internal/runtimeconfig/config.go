package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrRepoURLRequired indicates the remote repository location is missing.
	ErrRepoURLRequired = errors.New("pages-sync config: remote repository URL is required")
	// ErrTokenRequired indicates the remote credential is missing.
	ErrTokenRequired = errors.New("pages-sync config: remote access token is required")
	// ErrStorageProviderUnknown indicates an unsupported storage provider name.
	ErrStorageProviderUnknown = errors.New("pages-sync config: storage provider is invalid")
	// ErrStorageDSNRequired indicates a database-backed provider without a DSN.
	ErrStorageDSNRequired = errors.New("pages-sync config: storage DSN is required for the bun provider")
	// ErrLoggingProviderUnknown indicates an unsupported logging provider name.
	ErrLoggingProviderUnknown = errors.New("pages-sync config: logging provider is invalid")
	// ErrLoggingLevelInvalid indicates an unsupported logging level.
	ErrLoggingLevelInvalid = errors.New("pages-sync config: logging level is invalid")
	// ErrLoggingFormatInvalid indicates an unsupported logging output format.
	ErrLoggingFormatInvalid = errors.New("pages-sync config: logging format is invalid")
	// ErrPacingNegative indicates a negative delay value.
	ErrPacingNegative = errors.New("pages-sync config: pacing delays must be zero or positive")
	// ErrCooldownNegative indicates a negative cooldown window.
	ErrCooldownNegative = errors.New("pages-sync config: publish cooldown must be zero or positive")
)

// Config aggregates runtime settings for the synchronizer. Fields use simple
// types so host applications can populate them from flags or environment.
type Config struct {
	Remote   RemoteConfig
	Publish  PublishConfig
	Storage  StorageConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// RemoteConfig locates and authenticates the target repository.
type RemoteConfig struct {
	RepoURL string
	Token   string
	// BaseURL overrides the API endpoint, mainly for tests and enterprise
	// deployments. Empty uses the public endpoint.
	BaseURL string
	// RequestSpacing is the minimum delay between consecutive API requests.
	RequestSpacing time.Duration
	Committer      CommitterConfig
}

// CommitterConfig names the author recorded on generated commits.
type CommitterConfig struct {
	Name  string
	Email string
}

// PublishConfig tunes the publish gate and bulk-write pacing.
type PublishConfig struct {
	Cooldown     time.Duration
	StaleTimeout time.Duration
	PostDelay    time.Duration
}

// StorageConfig selects the local persistence backend.
type StorageConfig struct {
	Provider string
	DSN      string
}

// MarkdownConfig configures the preview renderer.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults. Remote credentials always come
// from the host.
func DefaultConfig() Config {
	return Config{
		Remote: RemoteConfig{
			RequestSpacing: 200 * time.Millisecond,
			Committer: CommitterConfig{
				Name:  "pages-sync",
				Email: "pages-sync@users.noreply.github.com",
			},
		},
		Publish: PublishConfig{
			Cooldown:     time.Minute,
			StaleTimeout: 5 * time.Minute,
			PostDelay:    300 * time.Millisecond,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Markdown: MarkdownConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Remote.RepoURL) == "" {
		return ErrRepoURLRequired
	}
	if strings.TrimSpace(cfg.Remote.Token) == "" {
		return ErrTokenRequired
	}
	if cfg.Remote.RequestSpacing < 0 || cfg.Publish.PostDelay < 0 {
		return ErrPacingNegative
	}
	if cfg.Publish.Cooldown < 0 || cfg.Publish.StaleTimeout < 0 {
		return ErrCooldownNegative
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
	case "bun", "sqlite":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedLoggingProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
