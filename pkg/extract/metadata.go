package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

// rule is one candidate lookup: selector plus the attribute carrying the
// value ("" means element text). Candidates are tried in order, first
// non-empty match wins and a broken selector just yields "".
type rule struct {
	selector string
	attr     string
}

func findFirst(doc *goquery.Document, rules []rule) string {
	for _, r := range rules {
		sel := doc.Find(r.selector).First()
		if sel.Length() == 0 {
			continue
		}

		var v string
		if r.attr == "" {
			v = sel.Text()
		} else {
			v, _ = sel.Attr(r.attr)
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

var titleRules = []rule{
	{`meta[property="og:title"]`, "content"},
	{`meta[name="twitter:title"]`, "content"},
	{"title", ""},
	{"h1", ""},
}

var descriptionRules = []rule{
	{`meta[property="og:description"]`, "content"},
	{`meta[name="twitter:description"]`, "content"},
	{`meta[name="description"]`, "content"},
}

var imageRules = []rule{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`meta[property="og:image:url"]`, "content"},
}

var siteNameRules = []rule{
	{`meta[property="og:site_name"]`, "content"},
}

var faviconRules = []rule{
	{`link[rel="icon"][sizes]`, "href"},
	{`link[rel="icon"]`, "href"},
	{`link[rel="shortcut icon"]`, "href"},
	{`link[rel="apple-touch-icon"]`, "href"},
}

var authorRules = []rule{
	{`[rel="author"]`, ""},
	{".author-name", ""},
	{".post-author", ""},
	{`[itemprop="author"]`, ""},
	{".byline", ""},
	{`meta[name="author"]`, "content"},
}

func defaultMetadata(pageURL string) types.Metadata {
	return types.Metadata{
		Title:       hostnameOf(pageURL),
		Description: "Website content could not be fetched.",
		Favicon:     resolveURL(pageURL, "/favicon.ico"),
	}
}

func extractMetadata(doc *goquery.Document, pageURL string) types.Metadata {
	md := types.Metadata{
		Title:       findFirst(doc, titleRules),
		Description: findFirst(doc, descriptionRules),
		Image:       findFirst(doc, imageRules),
		SiteName:    findFirst(doc, siteNameRules),
		Favicon:     findFirst(doc, faviconRules),
	}

	if md.Title == "" {
		md.Title = hostnameOf(pageURL)
	}
	if md.Favicon == "" {
		md.Favicon = "/favicon.ico"
	}
	md.Favicon = resolveURL(pageURL, md.Favicon)
	md.Image = resolveURL(pageURL, md.Image)

	return md
}

func extractAuthor(doc *goquery.Document) string {
	author := findFirst(doc, authorRules)
	// byline noise like "By Jane Doe" is common enough to strip
	author = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(author), "By "))
	if len(author) > 120 {
		return ""
	}
	return author
}
