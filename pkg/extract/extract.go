// Package extract derives structured metadata and a content-type specific
// full-text representation from raw HTML. Every lookup is best-effort: a
// missing or malformed field yields an empty string, never an error.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type Extractor struct {
	oembed *OEmbedClient
}

func NewExtractor() *Extractor {
	return &Extractor{
		oembed: NewOEmbedClient(),
	}
}

// Extract parses html and returns metadata plus the per-content-type full
// text. It never fails; with unparseable input the result falls back to
// hostname-derived defaults.
func (e *Extractor) Extract(html, pageURL string) types.ExtractResult {
	contentType := DetectContentType(pageURL)

	result := types.ExtractResult{
		Metadata: defaultMetadata(pageURL),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil || strings.TrimSpace(html) == "" {
		return result
	}

	result.Metadata = extractMetadata(doc, pageURL)
	result.Favicon = result.Metadata.Favicon

	fullText := ""
	author := ""
	switch contentType {
	case types.CONTENT_TYPE_TWEET:
		fullText = e.extractTweet(doc, pageURL)
	case types.CONTENT_TYPE_VIDEO:
		fullText = extractVideo(doc)
	case types.CONTENT_TYPE_ARTICLE:
		fullText = extractArticle(doc)
	default:
		fullText = extractWebpage(doc)
	}
	author = extractAuthor(doc)

	fullText = NormalizeWhitespace(fullText)
	if fullText != "" {
		fc := &types.FullContent{
			FullText:    fullText,
			ContentType: contentType,
			Author:      author,
			WordCount:   WordCount(fullText),
		}
		if fc.WordCount >= 10 {
			fc.Language = utils.WhatLang(fullText)
		}
		result.FullContent = fc
	}

	if result.Metadata.Content == "" {
		result.Metadata.Content = fullText
	}

	return result
}

// ExtractMetadata parses only the metadata surface of html and skips the
// per-content-type full text pass.
func (e *Extractor) ExtractMetadata(html, pageURL string) types.ExtractResult {
	result := types.ExtractResult{
		Metadata: defaultMetadata(pageURL),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil || strings.TrimSpace(html) == "" {
		return result
	}

	result.Metadata = extractMetadata(doc, pageURL)
	result.Favicon = result.Metadata.Favicon
	return result
}

func hostnameOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// resolveURL turns relative resource paths into absolute ones against base.
func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
