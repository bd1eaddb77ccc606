package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/traitdex/internal/core/domain"
)

// maxFragmentSize caps fetched blob sizes. Registry fragments are small;
// anything above this is not one.
const maxFragmentSize = 1 << 20

// jsonSuffix is the filename suffix for registry interchange files.
const jsonSuffix = ".traitdex.json"

// FetchFragments retrieves every registry fragment in the documentation
// tree at ref and converts them to RawFragments. SourceID is left for the
// connector to fill in.
func FetchFragments(ctx context.Context, client *Client, cfg *Config, ref string) ([]domain.RawFragment, error) {
	tree, err := client.Tree(ctx, cfg.Owner, cfg.Repo, ref)
	if err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}

	var frags []domain.RawFragment
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}

		treePath := entry.GetPath()
		if !cfg.InRoot(treePath) || !isRegistryPath(treePath) {
			continue
		}
		if entry.GetSize() > maxFragmentSize {
			continue
		}

		select {
		case <-ctx.Done():
			return frags, ctx.Err()
		default:
		}

		content, err := client.Blob(ctx, cfg.Owner, cfg.Repo, entry.GetSHA())
		if err != nil {
			// Unreadable blobs are skipped; the rest of the tree still scans.
			continue
		}

		frags = append(frags, domain.RawFragment{
			URI:       buildFragmentURI(cfg.Owner, cfg.Repo, cfg.Branch, treePath),
			TraitPath: domain.TraitPathFromURI(treePath),
			Content:   content,
			Metadata: map[string]any{
				"owner":  cfg.Owner,
				"repo":   cfg.Repo,
				"branch": cfg.Branch,
				"path":   treePath,
				"sha":    entry.GetSHA(),
				"size":   entry.GetSize(),
				"html_url": fmt.Sprintf(
					"https://github.com/%s/%s/blob/%s/%s",
					cfg.Owner, cfg.Repo, cfg.Branch, treePath,
				),
			},
		})
	}

	return frags, nil
}

// buildFragmentURI creates a URI for a fragment in a docs tree.
func buildFragmentURI(owner, repo, branch, treePath string) string {
	return fmt.Sprintf("github://%s/%s/blob/%s/%s", owner, repo, branch, treePath)
}

// isRegistryPath reports whether a tree path names an implementor registry
// fragment or a traitdex interchange file. Hidden segments and rustdoc
// static assets are excluded.
func isRegistryPath(treePath string) bool {
	segs := strings.Split(treePath, "/")
	inRegistry := false
	for _, seg := range segs {
		if strings.HasPrefix(seg, ".") || seg == "static.files" {
			return false
		}
		if seg == domain.LegacyRegistryDir || seg == domain.ModernRegistryDir {
			inRegistry = true
		}
	}

	name := segs[len(segs)-1]
	if strings.HasSuffix(name, jsonSuffix) {
		return true
	}
	return inRegistry && strings.HasSuffix(name, ".js")
}
