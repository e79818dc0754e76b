package pagessync

import "github.com/goliatone/go-pages-sync/internal/runtimeconfig"

var (
	ErrRepoURLRequired        = runtimeconfig.ErrRepoURLRequired
	ErrTokenRequired          = runtimeconfig.ErrTokenRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrPacingNegative         = runtimeconfig.ErrPacingNegative
	ErrCooldownNegative       = runtimeconfig.ErrCooldownNegative
)

type (
	Config          = runtimeconfig.Config
	RemoteConfig    = runtimeconfig.RemoteConfig
	CommitterConfig = runtimeconfig.CommitterConfig
	PublishConfig   = runtimeconfig.PublishConfig
	StorageConfig   = runtimeconfig.StorageConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
