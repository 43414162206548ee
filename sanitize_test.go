package main

import (
	"strings"
	"testing"
)

func TestUnescapeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"&lt;b&gt;", "<b>"},
		{"&amp;amp;", "&amp;"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"", ""},
	}

	for _, tc := range tests {
		if got := unescapeEntities(tc.in); got != tc.want {
			t.Errorf("unescapeEntities(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestVisibleLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"plain", 5},
		{"<b>ab</b>c", 3},
		{`<a href="https://example.com">y</a>`, 1},
		{"привет", 6},
		{"<b><i>xy</i></b>z", 3},
	}

	for _, tc := range tests {
		if got := visibleLen(tc.in); got != tc.want {
			t.Errorf("visibleLen(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// Inputs already within the budget must come back byte-for-byte unchanged.
func TestTruncateHTMLUnderCap(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"<b>bold</b> and <i>italic</i>",
		`<a href="https://example.com">link</a>`,
		"много <b>русского</b> текста",
	}

	for _, in := range inputs {
		if got := truncateHTML(in, 100); got != in {
			t.Errorf("truncateHTML(%q, 100) = %q, want input unchanged", in, got)
		}
	}
}

func TestTruncateHTMLOverCap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
	}{
		{"plain", strings.Repeat("a", 50), 10},
		{"tag left open by the cut", "<b>" + strings.Repeat("a", 50) + "</b>", 10},
		{"cut lands inside a tag", strings.Repeat("a", 10) + `<a href="https://example.com/very/long/path">tail</a>`, 12},
		{"nested markup", "<b><i>" + strings.Repeat("x", 60) + "</i></b>", 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := truncateHTML(tc.in, tc.limit)

			if got := visibleLen(out); got > tc.limit {
				t.Errorf("visible length %d exceeds limit %d, output %q", got, tc.limit, out)
			}
			// A well-formed fragment survives a parse/render round trip
			// unchanged.
			if reparsed := renderFragment(out); reparsed != out {
				t.Errorf("output is not well-formed: %q reparses to %q", out, reparsed)
			}
		})
	}
}

func TestTruncateHTMLClosesOpenTag(t *testing.T) {
	in := "<b>" + strings.Repeat("a", 30) + "</b>"

	got := truncateHTML(in, 10)
	want := "<b>aaaaaaa</b>"
	if got != want {
		t.Errorf("truncateHTML(%q, 10) = %q, want %q", in, got, want)
	}
}

func TestTruncateHTMLDropsPartialTag(t *testing.T) {
	in := strings.Repeat("a", 10) + `<a href="https://example.com/long">tail</a>`

	// The raw cut at 12 runes lands inside the opening <a> tag; the partial
	// tag must not leak into the output.
	got := truncateHTML(in, 12)
	if strings.Contains(got, "<a") {
		t.Errorf("partial tag leaked into output: %q", got)
	}
	if !strings.HasPrefix(got, "aaaaaaaaaa") {
		t.Errorf("visible prefix lost: %q", got)
	}
}
