package storage

import "errors"

var (
	// ErrPostNotFound indicates no post exists for the given filename.
	ErrPostNotFound = errors.New("storage: post not found")
	// ErrSettingsNotFound indicates sync settings have not been saved yet.
	ErrSettingsNotFound = errors.New("storage: settings not found")
	// ErrSiteConfigNotFound indicates the site configuration slot is empty.
	ErrSiteConfigNotFound = errors.New("storage: site config not found")
	// ErrHomepageNotFound indicates the homepage slot is empty.
	ErrHomepageNotFound = errors.New("storage: homepage not found")
	// ErrFilenameRequired indicates a post was saved without its unique key.
	ErrFilenameRequired = errors.New("storage: post filename is required")
)

// Singleton document slots.
const (
	slotSettings   = "settings"
	slotSiteConfig = "site_config"
	slotHomepage   = "homepage"
)
