package extract

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space runs collapse", "hello    world", "hello world"},
		{"tabs collapse", "hello\t\tworld", "hello world"},
		{"lines trimmed", "  hello  \n  world  ", "hello\nworld"},
		{"blank lines capped at two", "a\n\n\n\n\nb", "a\n\nb"},
		{"windows line endings", "a\r\nb", "a\nb"},
		{"surrounding whitespace trimmed", "\n\n  text  \n\n", "text"},
		{"empty input", "   \n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.in); got != tt.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two three", 3},
		{"  spaced   out\nwords\t here ", 4},
	}

	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
