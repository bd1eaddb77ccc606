package github

import "strings"

// ResolveWebURL converts a GitHub fragment URI to a web URL. A pre-stored
// html_url in the metadata wins over URI rewriting.
// github://owner/repo/blob/branch/path -> https://github.com/owner/repo/blob/branch/path
func ResolveWebURL(uri string, metadata map[string]any) string {
	if htmlURL, ok := metadata["html_url"].(string); ok && htmlURL != "" {
		return htmlURL
	}
	if strings.HasPrefix(uri, "github://") {
		return "https://github.com/" + strings.TrimPrefix(uri, "github://")
	}
	return ""
}
