package extract

import (
	"testing"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		url  string
		want types.ContentType
	}{
		{"https://twitter.com/user/status/123456", types.CONTENT_TYPE_TWEET},
		{"https://x.com/user/status/123456", types.CONTENT_TYPE_TWEET},
		{"https://mobile.twitter.com/user/status/123", types.CONTENT_TYPE_TWEET},
		{"https://www.youtube.com/watch?v=abc123", types.CONTENT_TYPE_VIDEO},
		{"https://youtu.be/abc123", types.CONTENT_TYPE_VIDEO},
		{"https://m.youtube.com/watch?v=abc123", types.CONTENT_TYPE_VIDEO},
		{"https://medium.com/@writer/some-story", types.CONTENT_TYPE_ARTICLE},
		{"https://dev.to/writer/some-post", types.CONTENT_TYPE_ARTICLE},
		{"https://writer.hashnode.dev/a-title", types.CONTENT_TYPE_ARTICLE},
		{"https://newsletter.substack.com/p/issue-1", types.CONTENT_TYPE_ARTICLE},
		{"https://example.com/blog/2024/release-notes", types.CONTENT_TYPE_ARTICLE},
		{"https://example.com/article/breaking-news", types.CONTENT_TYPE_ARTICLE},
		{"https://example.com/post/hello-world", types.CONTENT_TYPE_ARTICLE},
		{"https://example.com", types.CONTENT_TYPE_WEBPAGE},
		{"https://github.com/golang/go", types.CONTENT_TYPE_WEBPAGE},
		{"https://notx.com/user/status/1", types.CONTENT_TYPE_WEBPAGE},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := DetectContentType(tt.url); got != tt.want {
				t.Errorf("DetectContentType(%q) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}
