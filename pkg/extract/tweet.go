package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	oembedEndpoint = "https://publish.twitter.com/oembed"
	oembedTimeout  = 10 * time.Second

	// fallback candidates shorter than this are considered junk
	minTweetTextLength = 20
)

// OEmbedClient fetches the embeddable representation of a tweet, which is
// far more reliable than scraping the heavily scripted page itself.
type OEmbedClient struct {
	client *http.Client
}

func NewOEmbedClient() *OEmbedClient {
	return &OEmbedClient{
		client: &http.Client{Timeout: oembedTimeout},
	}
}

type oembedResponse struct {
	HTML       string `json:"html"`
	AuthorName string `json:"author_name"`
}

var (
	picLinkPattern = regexp.MustCompile(`pic\.twitter\.com/\S+`)
	// "Author on X: "tweet text"" shape of og:title / <title>
	titleTweetPattern = regexp.MustCompile(`.+ on (?:X|Twitter): [“"](.+)[”"]`)
)

func (c *OEmbedClient) TweetText(ctx context.Context, tweetURL string) (string, error) {
	endpoint := oembedEndpoint + "?url=" + url.QueryEscape(tweetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request tweet oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to request tweet oembed, status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result oembedResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal oembed response, %w", err)
	}

	text := parseOEmbedHTML(result.HTML)
	if text == "" {
		return "", fmt.Errorf("oembed returned no paragraph text")
	}
	return text, nil
}

// parseOEmbedHTML pulls the paragraph text out of the blockquote fragment,
// unescapes entities and strips author attribution plus pic.twitter.com
// link remnants.
func parseOEmbedHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	text := html.UnescapeString(strings.Join(parts, "\n"))
	// attribution tail: "&mdash; Author (@handle) date"
	if idx := strings.Index(text, "—"); idx > 0 {
		text = text[:idx]
	}
	text = picLinkPattern.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// extractTweet prefers the oEmbed API and falls back to scraping the page's
// meta tags in strict priority order, each candidate gated by a minimum
// length so a short/truncated value never beats a fuller one.
func (e *Extractor) extractTweet(doc *goquery.Document, pageURL string) string {
	ctx, cancel := context.WithTimeout(context.Background(), oembedTimeout)
	defer cancel()

	if text, err := e.oembed.TweetText(ctx, pageURL); err == nil {
		return text
	}

	candidates := []string{
		findFirst(doc, []rule{{`meta[property="og:description"]`, "content"}}),
		tweetFromTitle(findFirst(doc, []rule{{`meta[property="og:title"]`, "content"}})),
		findFirst(doc, []rule{{`meta[name="twitter:description"]`, "content"}}),
		findFirst(doc, []rule{{"title", ""}}),
	}

	best := ""
	for _, candidate := range candidates {
		candidate = strings.Trim(html.UnescapeString(strings.TrimSpace(candidate)), `“”"`)
		if len(candidate) >= minTweetTextLength {
			return candidate
		}
		if best == "" {
			best = candidate
		}
	}
	return best
}

func tweetFromTitle(title string) string {
	if m := titleTweetPattern.FindStringSubmatch(html.UnescapeString(title)); len(m) == 2 {
		return m[1]
	}
	return ""
}
