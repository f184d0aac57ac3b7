package extract

import (
	"net/url"
	"strings"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

var articleHosts = []string{
	"medium.com",
	"dev.to",
	"hashnode.",
	"substack.com",
}

var articlePathHints = []string{
	"/blog",
	"/article",
	"/post",
}

// DetectContentType classifies a URL by hostname / path patterns.
func DetectContentType(pageURL string) types.ContentType {
	u, err := url.Parse(pageURL)
	if err != nil {
		return types.CONTENT_TYPE_WEBPAGE
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	path := strings.ToLower(u.Path)

	switch {
	case host == "twitter.com" || host == "x.com" ||
		strings.HasSuffix(host, ".twitter.com") || strings.HasSuffix(host, ".x.com"):
		return types.CONTENT_TYPE_TWEET
	case host == "youtube.com" || host == "youtu.be" ||
		strings.HasSuffix(host, ".youtube.com"):
		return types.CONTENT_TYPE_VIDEO
	}

	for _, h := range articleHosts {
		if strings.Contains(host, h) {
			return types.CONTENT_TYPE_ARTICLE
		}
	}
	for _, hint := range articlePathHints {
		if strings.Contains(path, hint) {
			return types.CONTENT_TYPE_ARTICLE
		}
	}

	return types.CONTENT_TYPE_WEBPAGE
}
