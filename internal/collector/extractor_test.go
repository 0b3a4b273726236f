package collector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/LJTian/NewsPulse/internal/config"
)

var testSelectors = config.Selectors{
	Container: "div.story",
	Title:     "h2",
	Body:      "p.desc",
	Link:      "h2 a",
}

func storyHTML(n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<div class="story"><h2><a href="/india/story-%d">Headline %d</a></h2><p class="desc">Body text %d</p></div>`, i, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestExtractCapsContainersPerSource(t *testing.T) {
	out, err := Extract([]byte(storyHTML(5)), testSelectors, "https://example.com", 2)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	if out[0].Title != "Headline 0" || out[1].Title != "Headline 1" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if out[0].Body != "Body text 0" {
		t.Fatalf("unexpected body: %q", out[0].Body)
	}
	if out[0].URL != "https://example.com/india/story-0" {
		t.Fatalf("unexpected url: %q", out[0].URL)
	}
}

func TestExtractWithoutLimitReturnsAll(t *testing.T) {
	out, err := Extract([]byte(storyHTML(4)), testSelectors, "", 0)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(out))
	}
	// 没有 baseURL 时相对链接无法解析
	if out[0].URL != "" {
		t.Fatalf("expected empty url without base, got %q", out[0].URL)
	}
}

func TestExtractSkipsEmptyContainers(t *testing.T) {
	html := `
	<div class="story"><span>ad slot</span></div>
	<div class="story"><h2>   </h2><p class="desc"></p></div>
	<div class="story"><p class="desc">Only a body here</p></div>
	<div class="story"><h2>Only a title</h2></div>`

	out, err := Extract([]byte(html), testSelectors, "", 10)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 usable candidates, got %d: %+v", len(out), out)
	}
	if out[0].Title != "" || out[0].Body != "Only a body here" {
		t.Fatalf("unexpected first candidate: %+v", out[0])
	}
	if out[1].Title != "Only a title" || out[1].Body != "" {
		t.Fatalf("unexpected second candidate: %+v", out[1])
	}
}

func TestExtractCapCountsSkippedContainers(t *testing.T) {
	html := `
	<div class="story"></div>
	<div class="story"><h2>Second</h2></div>
	<div class="story"><h2>Third</h2></div>`

	out, err := Extract([]byte(html), testSelectors, "", 2)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 1 || out[0].Title != "Second" {
		t.Fatalf("expected only the second container, got %+v", out)
	}
}

func TestExtractSelectorMismatchYieldsNothing(t *testing.T) {
	out, err := Extract([]byte(storyHTML(3)), config.Selectors{Container: ".nope", Title: "h2", Body: "p"}, "", 2)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no candidates, got %d", len(out))
	}
}

func TestExtractCollapsesWhitespace(t *testing.T) {
	html := `<div class="story"><h2>
		Rain   lashes
		Mumbai </h2><p class="desc">a</p><p class="desc">b</p></div>`

	out, err := Extract([]byte(html), testSelectors, "", 2)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}
	if out[0].Title != "Rain lashes Mumbai" {
		t.Fatalf("unexpected title: %q", out[0].Title)
	}
	if out[0].Body != "ab" {
		t.Fatalf("unexpected body: %q", out[0].Body)
	}
}

func TestResolveLink(t *testing.T) {
	cases := []struct {
		base string
		href string
		want string
	}{
		{"https://www.indiatoday.in", "/india/story/x", "https://www.indiatoday.in/india/story/x"},
		{"https://www.indiatoday.in/", "india/story/x", "https://www.indiatoday.in/india/story/x"},
		{"https://www.indiatoday.in", "https://other.example/a", "https://other.example/a"},
		{"https://www.thehindu.com", "//cdn.thehindu.com/a", "https://cdn.thehindu.com/a"},
		{"", "/relative", ""},
		{"https://a.example", "", ""},
		{"https://a.example", "#top", ""},
		{"https://a.example", "javascript:void(0)", ""},
	}
	for _, c := range cases {
		if got := ResolveLink(c.base, c.href); got != c.want {
			t.Fatalf("ResolveLink(%q, %q) = %q, want %q", c.base, c.href, got, c.want)
		}
	}
}
