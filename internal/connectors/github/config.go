package github

import (
	"strings"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// DefaultBranch is the branch scanned when none is configured. Published
// rustdoc trees conventionally live on gh-pages.
const DefaultBranch = "gh-pages"

// Config holds the parsed configuration for a GitHub docs source.
type Config struct {
	// Owner is the repository owner (user or organisation).
	Owner string

	// Repo is the repository name.
	Repo string

	// Branch is the branch holding the published documentation tree.
	Branch string

	// Root restricts the scan to a subdirectory of the tree, e.g. "doc".
	// Empty means the whole tree.
	Root string
}

// ParseConfig parses a source's config map into a Config struct.
// Owner and repo are required; branch defaults to gh-pages.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		Owner:  strings.TrimSpace(source.Config["owner"]),
		Repo:   strings.TrimSpace(source.Config["repo"]),
		Branch: strings.TrimSpace(source.Config["branch"]),
		Root:   strings.Trim(strings.TrimSpace(source.Config["root"]), "/"),
	}

	if cfg.Owner == "" {
		return nil, ErrConfigMissingOwner
	}
	if cfg.Repo == "" {
		return nil, ErrConfigMissingRepo
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}

	return cfg, nil
}

// InRoot reports whether a tree path falls under the configured root.
func (c *Config) InRoot(path string) bool {
	if c.Root == "" {
		return true
	}
	return path == c.Root || strings.HasPrefix(path, c.Root+"/")
}
