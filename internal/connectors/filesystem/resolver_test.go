package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWebURL(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		metadata map[string]any
		want     string
	}{
		{
			name:     "file:// URI is converted to local path",
			uri:      "file:///docs/implementors/core/marker/trait.Send.js",
			metadata: nil,
			want:     "/docs/implementors/core/marker/trait.Send.js",
		},
		{
			name:     "file:// URI with spaces",
			uri:      "file:///docs/my crate/trait.impl/core/marker/trait.Sync.js",
			metadata: nil,
			want:     "/docs/my crate/trait.impl/core/marker/trait.Sync.js",
		},
		{
			name:     "bare path passes through unchanged",
			uri:      "/docs/implementors/core/marker/trait.Send.js",
			metadata: nil,
			want:     "/docs/implementors/core/marker/trait.Send.js",
		},
		{
			name:     "relative path passes through unchanged",
			uri:      "implementors/core/marker/trait.Send.js",
			metadata: nil,
			want:     "implementors/core/marker/trait.Send.js",
		},
		{
			name:     "empty string passes through",
			uri:      "",
			metadata: nil,
			want:     "",
		},
		{
			name:     "metadata is ignored",
			uri:      "file:///docs/trait.Send.js",
			metadata: map[string]any{"some_key": "some_value"},
			want:     "/docs/trait.Send.js",
		},
		{
			name:     "file:// prefix only",
			uri:      "file://",
			metadata: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWebURL(tt.uri, tt.metadata)
			assert.Equal(t, tt.want, got)
		})
	}
}
