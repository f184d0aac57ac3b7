package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Fallback Title</title>
	<meta property="og:title" content="Understanding Database Indexes">
	<meta property="og:description" content="A practical guide to index design.">
	<meta property="og:image" content="/images/cover.png">
	<meta property="og:site_name" content="Example Engineering">
	<meta name="author" content="Jane Smith">
	<link rel="icon" href="/static/favicon.png">
</head>
<body>
	<nav>Home | About | Contact</nav>
	<article>
		<h1>Understanding Database Indexes</h1>
		<p>Indexes are the single most effective tool for speeding up read-heavy workloads in a relational database system.</p>
		<p>A well designed index turns a full table scan into a handful of page reads, often improving query latency by several orders of magnitude.</p>
		<p>The trade-off is write amplification: every insert and update must also maintain the index structures.</p>
	</article>
	<footer>Copyright 2024</footer>
	<script>console.log("analytics")</script>
</body>
</html>`

func TestExtractArticle(t *testing.T) {
	e := NewExtractor()
	result := e.Extract(articleHTML, "https://example.com/blog/database-indexes")

	if result.Metadata.Title != "Understanding Database Indexes" {
		t.Errorf("title = %q", result.Metadata.Title)
	}
	if result.Metadata.Description != "A practical guide to index design." {
		t.Errorf("description = %q", result.Metadata.Description)
	}
	if result.Metadata.SiteName != "Example Engineering" {
		t.Errorf("site name = %q", result.Metadata.SiteName)
	}
	if result.Metadata.Image != "https://example.com/images/cover.png" {
		t.Errorf("image must be resolved to absolute, got %q", result.Metadata.Image)
	}
	if result.Favicon != "https://example.com/static/favicon.png" {
		t.Errorf("favicon must be resolved to absolute, got %q", result.Favicon)
	}

	if result.FullContent == nil {
		t.Fatal("expected full content for an article page")
	}
	if result.FullContent.ContentType != types.CONTENT_TYPE_ARTICLE {
		t.Errorf("content type = %s, want article", result.FullContent.ContentType)
	}
	if !strings.Contains(result.FullContent.FullText, "full table scan") {
		t.Errorf("article body missing from full text: %q", result.FullContent.FullText)
	}
	if strings.Contains(result.FullContent.FullText, "analytics") {
		t.Error("script content leaked into full text")
	}
	if strings.Contains(result.FullContent.FullText, "Home | About") {
		t.Error("navigation boilerplate leaked into full text")
	}
	if result.FullContent.Author != "Jane Smith" {
		t.Errorf("author = %q", result.FullContent.Author)
	}
	if result.FullContent.WordCount == 0 {
		t.Error("word count not populated")
	}
	if result.FullContent.Language == "" {
		t.Error("language should be detected for a long english text")
	}
}

func TestExtractEmptyHTMLFallsBack(t *testing.T) {
	e := NewExtractor()

	for _, html := range []string{"", "   ", "<<<<not html"} {
		result := e.Extract(html, "https://example.com/page")

		if result.Metadata.Title == "" {
			t.Errorf("input %q: fallback title must not be empty", html)
		}
		if result.Metadata.Description != "Website content could not be fetched." {
			t.Errorf("input %q: description = %q", html, result.Metadata.Description)
		}
		if result.Metadata.Favicon != "https://example.com/favicon.ico" {
			t.Errorf("input %q: favicon = %q", html, result.Metadata.Favicon)
		}
	}
}

func TestExtractNoMetaTags(t *testing.T) {
	e := NewExtractor()
	result := e.Extract("<html><body><p>Just a tiny page without any meta tags at all.</p></body></html>", "https://bare.example.org/x")

	// hostname stands in for the missing title
	if result.Metadata.Title != "bare.example.org" {
		t.Errorf("title = %q, want hostname fallback", result.Metadata.Title)
	}
	if result.FullContent == nil || !strings.Contains(result.FullContent.FullText, "tiny page") {
		t.Error("body text should still be extracted")
	}
}

func TestExtractMetadataTitlePriority(t *testing.T) {
	html := `<html><head>
		<title>Document Title</title>
		<meta name="twitter:title" content="Twitter Title">
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	md := extractMetadata(doc, "https://example.com")
	if md.Title != "Twitter Title" {
		t.Errorf("twitter:title should beat <title>, got %q", md.Title)
	}
}

func TestExtractVideoDescription(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="How to Solder">
		<meta property="og:description" content="A short walkthrough of basic soldering technique for beginners.">
	</head><body></body></html>`

	e := NewExtractor()
	result := e.Extract(html, "https://www.youtube.com/watch?v=abc")

	if result.FullContent == nil {
		t.Fatal("expected full content")
	}
	if result.FullContent.ContentType != types.CONTENT_TYPE_VIDEO {
		t.Errorf("content type = %s, want video", result.FullContent.ContentType)
	}
	if !strings.Contains(result.FullContent.FullText, "How to Solder") {
		t.Errorf("video title missing from full text: %q", result.FullContent.FullText)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://example.com/a/b", "/favicon.ico", "https://example.com/favicon.ico"},
		{"https://example.com/a/b", "img.png", "https://example.com/a/img.png"},
		{"https://example.com", "https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"https://example.com", "", ""},
	}

	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestExtractMetadataOnly(t *testing.T) {
	e := NewExtractor()
	result := e.ExtractMetadata(articleHTML, "https://example.com/blog/database-indexes")

	if result.Metadata.Title == "" {
		t.Error("expected metadata title")
	}
	if result.Favicon != "https://example.com/static/favicon.png" {
		t.Errorf("favicon = %q", result.Favicon)
	}
	if result.FullContent != nil {
		t.Error("metadata-only extraction must not produce full content")
	}
}

func TestExtractMetadataOnlyEmptyHTML(t *testing.T) {
	e := NewExtractor()
	result := e.ExtractMetadata("", "https://example.com/page")

	if result.Metadata.Title != "example.com" {
		t.Errorf("title = %q, want hostname fallback", result.Metadata.Title)
	}
	if result.FullContent != nil {
		t.Error("expected no full content")
	}
}
