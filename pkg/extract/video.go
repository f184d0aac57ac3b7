package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// expanded in-page description elements, richer than the truncated
// og:description when present
var videoDescriptionSelectors = []string{
	"#description",
	"#description-inline-expander",
	".watch-description",
	".video-description",
	`[itemprop="description"]`,
}

func extractVideo(doc *goquery.Document) string {
	title := findFirst(doc, titleRules)

	description := ""
	for _, sel := range videoDescriptionSelectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); len(text) > 0 {
				description = text
				break
			}
		}
	}
	if description == "" {
		description = findFirst(doc, descriptionRules)
	}

	switch {
	case title != "" && description != "":
		return title + "\n\n" + description
	case title != "":
		return title
	default:
		return description
	}
}
