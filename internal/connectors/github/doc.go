// Package github implements a connector for published rustdoc trees hosted
// on GitHub, typically a gh-pages branch produced by a docs CI job.
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.Connector].
// It comprises the following components:
//
//   - Connector: orchestrates scan operations and manages lifecycle
//   - Client: handles GitHub API communication with rate limiting
//   - Config: parses and validates source configuration
//
// # Configuration
//
// Source configuration accepts the following keys:
//
//   - owner: repository owner (required)
//   - repo: repository name (required)
//   - branch: branch holding the documentation tree. Default: gh-pages.
//   - root: subdirectory of the tree to scan, e.g. "doc". Default: whole tree.
//   - token: personal access token. Optional for public repositories, but
//     anonymous clients are limited to 60 requests per hour.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach: a token
// bucket paces requests proactively, and the X-RateLimit response headers
// are tracked so the client sleeps through quota exhaustion instead of
// failing.
//
// # Scan Operations
//
// A full scan resolves the branch head, fetches the recursive tree, and
// downloads every blob that looks like an implementor registry fragment
// (implementors/**/*.js, trait.impl/**/*.js, *.traitdex.json).
//
// The branch head commit SHA doubles as the incremental cursor: when the
// head has not moved since the previous scan, the tree fetch is skipped
// entirely.
//
// # Fragment URIs
//
// Fragments are emitted with the URI pattern
//
//	github://{owner}/{repo}/blob/{branch}/{path}
//
// and metadata carrying the owner, repo, branch, tree path, blob SHA, and a
// browsable html_url.
package github
