package extract

import "testing"

func TestParseOEmbedHTML(t *testing.T) {
	fragment := `<blockquote class="twitter-tweet">
		<p lang="en" dir="ltr">Shipping the new release today. Huge thanks to everyone who filed bugs! pic.twitter.com/aBcD123</p>
		&mdash; Example Dev (@exampledev) <a href="https://twitter.com/exampledev/status/1">March 1, 2024</a>
	</blockquote>`

	got := parseOEmbedHTML(fragment)

	if got != "Shipping the new release today. Huge thanks to everyone who filed bugs!" {
		t.Errorf("parseOEmbedHTML = %q", got)
	}
}

func TestParseOEmbedHTMLEntities(t *testing.T) {
	fragment := `<blockquote><p>Ship it &amp; move on</p></blockquote>`
	if got := parseOEmbedHTML(fragment); got != "Ship it & move on" {
		t.Errorf("entities not unescaped: %q", got)
	}
}

func TestParseOEmbedHTMLEmpty(t *testing.T) {
	if got := parseOEmbedHTML("<div>no paragraphs here</div>"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestTweetFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			"X style",
			`Example Dev on X: "Shipping the new release today"`,
			"Shipping the new release today",
		},
		{
			"Twitter style",
			`Example Dev on Twitter: "Shipping the new release today"`,
			"Shipping the new release today",
		},
		{
			"curly quotes",
			`Example Dev on X: “Shipping the new release today”`,
			"Shipping the new release today",
		},
		{
			"unrelated title",
			"Just a normal page title",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tweetFromTitle(tt.title); got != tt.want {
				t.Errorf("tweetFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
