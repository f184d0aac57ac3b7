package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplate elements removed before any article text search
var boilerplateSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"nav", "header", "footer", "aside", "form",
	".sidebar", "#sidebar", ".ads", ".ad", ".advertisement",
	".comments", "#comments", ".related", ".share", ".social",
	".newsletter", ".cookie", ".popup", ".menu", ".navigation",
}

// content containers tried in order, common CMS class names included
var containerSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".post-body",
	".story-body",
	".markdown-body",
	"#content",
	".content",
}

const (
	minContainerLength = 200
	minFragmentLength  = 10
)

var fragmentSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"

// extractArticle strips boilerplate from a cloned document, picks the first
// container whose text exceeds minContainerLength and joins its meaningful
// fragments. Falls back to the flattened body text.
func extractArticle(doc *goquery.Document) string {
	cloned := doc.Selection.Clone()
	for _, sel := range boilerplateSelectors {
		cloned.Find(sel).Remove()
	}

	for _, sel := range containerSelectors {
		container := cloned.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(container.Text())) <= minContainerLength {
			continue
		}
		if text := collectFragments(container); text != "" {
			return text
		}
	}

	body := cloned.Find("body").First()
	if body.Length() == 0 {
		body = cloned
	}
	if text := collectFragments(body); text != "" {
		return text
	}
	return strings.TrimSpace(body.Text())
}

func collectFragments(container *goquery.Selection) string {
	var parts []string
	container.Find(fragmentSelector).Each(func(_ int, s *goquery.Selection) {
		// nested hits (li inside blockquote etc.) are deduplicated by the
		// fragment length check plus whitespace normalization downstream
		if s.Children().Is(fragmentSelector) {
			return
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > minFragmentLength {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// extractWebpage is the generic fallback: boilerplate-stripped body text.
func extractWebpage(doc *goquery.Document) string {
	cloned := doc.Selection.Clone()
	for _, sel := range boilerplateSelectors {
		cloned.Find(sel).Remove()
	}

	body := cloned.Find("body").First()
	if body.Length() == 0 {
		body = cloned
	}

	if text := collectFragments(body); text != "" {
		return text
	}
	return strings.TrimSpace(body.Text())
}
