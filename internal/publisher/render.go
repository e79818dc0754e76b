package publisher

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// siteConfigDocument fixes the field order of the generated site
// configuration file so the output is deterministic and diff-friendly.
type siteConfigDocument struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	BaseURL     string   `yaml:"baseurl"`
	Author      string   `yaml:"author,omitempty"`
	Email       string   `yaml:"email,omitempty"`
	Theme       string   `yaml:"theme,omitempty"`
	Plugins     []string `yaml:"plugins,omitempty"`
}

// RenderSiteConfig generates the site configuration file body from the local
// site settings. Plugin identifiers are de-duplicated preserving first
// occurrence order.
func RenderSiteConfig(config interfaces.SiteConfig) (string, error) {
	doc := siteConfigDocument{
		Title:       config.Title,
		Description: config.Description,
		BaseURL:     config.BaseURL,
		Author:      config.Author,
		Email:       config.Email,
		Theme:       config.Theme,
		Plugins:     dedupePlugins(config.Plugins),
	}

	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("render site config: %w", err)
	}
	return string(encoded), nil
}

func dedupePlugins(plugins []string) []string {
	if len(plugins) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(plugins))
	out := make([]string, 0, len(plugins))
	for _, plugin := range plugins {
		plugin = strings.TrimSpace(plugin)
		if plugin == "" || seen[plugin] {
			continue
		}
		seen[plugin] = true
		out = append(out, plugin)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RenderReadme regenerates the repository README. The document is derived
// from the site settings and is not user editable; every publish overwrites
// it.
func RenderReadme(config interfaces.SiteConfig, siteURL string) string {
	var b strings.Builder

	title := strings.TrimSpace(config.Title)
	if title == "" {
		title = "My Blog"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if description := strings.TrimSpace(config.Description); description != "" {
		fmt.Fprintf(&b, "%s\n\n", description)
	}
	if url := strings.TrimSpace(siteURL); url != "" {
		fmt.Fprintf(&b, "Live site: %s\n\n", url)
	}

	b.WriteString("This repository is managed by a blog editor. ")
	b.WriteString("Posts live under `_posts/` and are overwritten on every publish; edit them through the editor rather than directly.\n")
	return b.String()
}
