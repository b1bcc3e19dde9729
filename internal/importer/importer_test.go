package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/techimbue/website/internal/config"
	"github.com/techimbue/website/internal/post"
)

const samplePost = `---
slug: launch-day
title: Launch Day
author: Sam Carter
date: 2024-06-01
excerpt: We shipped.
tags: [news, product]
linkedin_url: https://www.linkedin.com/posts/launch
---

# Ignored Heading Title

We shipped the *new* site
today.

## What changed

- Faster pages
- A **new** blog

> Ship early,
> ship often.

![Team photo](https://cdn.example.com/team.jpg "The team")

[video: Launch walkthrough](https://www.linkedin.com/posts/video-1)

` + "```go\nfmt.Println(\"skipped\")\n```\n"

func TestParsePost(t *testing.T) {
	p, draft, err := ParsePost([]byte(samplePost), "2024/launch.md")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if draft {
		t.Error("post should not be a draft")
	}

	if p.Slug != "launch-day" || p.Title != "Launch Day" || p.Author != "Sam Carter" {
		t.Errorf("unexpected header: %+v", p)
	}
	if p.Date != "2024-06-01" {
		t.Errorf("date = %q", p.Date)
	}
	if p.Excerpt != "We shipped." {
		t.Errorf("excerpt = %q", p.Excerpt)
	}
	if !reflect.DeepEqual(p.Tags, []string{"news", "product"}) {
		t.Errorf("tags = %v", p.Tags)
	}
	if p.LinkedInURL != "https://www.linkedin.com/posts/launch" {
		t.Errorf("linkedin = %q", p.LinkedInURL)
	}

	want := []post.ContentBlock{
		{Type: post.BlockParagraph, Text: "We shipped the new site today."},
		{Type: post.BlockHeading, Text: "What changed"},
		{Type: post.BlockList, Items: []string{"Faster pages", "A new blog"}},
		{Type: post.BlockQuote, Text: "Ship early, ship often."},
		{Type: post.BlockImage, URL: "https://cdn.example.com/team.jpg", Alt: "Team photo", Caption: "The team"},
		{Type: post.BlockVideo, URL: "https://www.linkedin.com/posts/video-1", Caption: "Launch walkthrough"},
	}
	if !reflect.DeepEqual(p.Content, want) {
		t.Errorf("content mismatch\n got: %+v\nwant: %+v", p.Content, want)
	}
}

func TestParsePostFallbacks(t *testing.T) {
	src := "# Hello There\n\nFirst paragraph of the post.\n"
	p, _, err := ParsePost([]byte(src), "2023-11-05-hello_there.md")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if p.Slug != "hello-there" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Title != "Hello There" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Date != "2023-11-05" {
		t.Errorf("date = %q", p.Date)
	}
	if p.Excerpt != "First paragraph of the post." {
		t.Errorf("excerpt = %q", p.Excerpt)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("tags = %#v, want empty slice", p.Tags)
	}
	if len(p.Content) != 1 {
		t.Errorf("the title heading should not become a block: %+v", p.Content)
	}
}

func TestParsePostTitleFromFileName(t *testing.T) {
	p, _, err := ParsePost([]byte("Just text.\n"), "notes/quarterly_update.md")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if p.Title != "Quarterly Update" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Slug != "quarterly-update" {
		t.Errorf("slug = %q", p.Slug)
	}
}

func TestParsePostDraft(t *testing.T) {
	_, draft, err := ParsePost([]byte("---\ndraft: true\n---\nbody\n"), "wip.md")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if !draft {
		t.Error("expected draft")
	}
}

func TestParsePostBadFrontMatter(t *testing.T) {
	tests := map[string]string{
		"unclosed":     "---\ntitle: x\nbody",
		"invalid yaml": "---\ntitle: [unterminated\n---\nbody",
	}
	for name, src := range tests {
		if _, _, err := ParsePost([]byte(src), name+".md"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestVideoCaption(t *testing.T) {
	tests := []struct {
		label   string
		caption string
		ok      bool
	}{
		{"video: Demo", "Demo", true},
		{"Video", "", true},
		{"VIDEO walkthrough", "walkthrough", true},
		{"videography tips", "", false},
		{"vid", "", false},
		{"watch the video", "", false},
	}
	for _, tt := range tests {
		caption, ok := videoCaption(tt.label)
		if caption != tt.caption || ok != tt.ok {
			t.Errorf("videoCaption(%q) = %q, %v; want %q, %v", tt.label, caption, ok, tt.caption, tt.ok)
		}
	}
}

func TestOrdinaryLinkStaysParagraph(t *testing.T) {
	p, _, err := ParsePost([]byte("[Read the docs](https://example.com)\n"), "links.md")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if len(p.Content) != 1 || p.Content[0].Type != post.BlockParagraph || p.Content[0].Text != "Read the docs" {
		t.Errorf("unexpected content: %+v", p.Content)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":     "hello-world",
		"  spaced  out ":  "spaced-out",
		"Q3 -- Results!!": "q3-results",
		"already-a-slug":  "already-a-slug",
		"!!!":             "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeriveExcerpt(t *testing.T) {
	long := strings.Repeat("word ", 60)
	got := deriveExcerpt([]post.ContentBlock{
		{Type: post.BlockHeading, Text: "Heading"},
		{Type: post.BlockParagraph, Text: strings.TrimSpace(long)},
	})
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if len([]rune(got)) > excerptLength+1 {
		t.Errorf("excerpt too long: %d runes", len([]rune(got)))
	}
	if deriveExcerpt(nil) != "" {
		t.Error("no paragraphs should give an empty excerpt")
	}
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestImport(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"old.md":        "---\ndate: 2023-01-01\ntags: [a]\n---\nOld post.\n",
		"new.md":        "---\ndate: 2024-01-01\ntags: [a, b]\n---\nNew post.\n",
		"draft.md":      "---\ndraft: true\n---\nNot yet.\n",
		"drafts/wip.md": "Excluded by glob.\n",
		"README.md":     "Excluded by glob.\n",
		"cover.png":     "not markdown",
	})

	im := New(dir, []string{"**/*.md"}, []string{"drafts/**", "README.md"})
	posts, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	if got := strings.Join(slugs, ","); got != "new,old" {
		t.Errorf("slugs = %s, want new,old", got)
	}

	summary := Summary(posts)
	if len(summary) != 2 || summary[0] != (TagCount{Tag: "a", Posts: 2}) {
		t.Errorf("summary = %+v", summary)
	}
	if got := Latest(posts).Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("latest = %s", got)
	}
}

func TestImportMissingDateUsesModTime(t *testing.T) {
	dir := writeSources(t, map[string]string{"undated.md": "Body.\n"})
	posts, err := New(dir, nil, nil).Import(context.Background())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d", len(posts))
	}
	if _, ok := post.ParseDate(posts[0].Date); !ok {
		t.Errorf("date %q should be parseable", posts[0].Date)
	}
}

func TestImportDuplicateSlug(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"a.md": "---\nslug: same\n---\nA\n",
		"b.md": "---\nslug: same\n---\nB\n",
	})
	_, err := New(dir, nil, nil).Import(context.Background())
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestWriteFeed(t *testing.T) {
	out := filepath.Join(t.TempDir(), "blog", "posts.json")
	posts := []post.Post{{Slug: "x", Title: "X", Date: "2024-01-01", Tags: []string{}, Content: []post.ContentBlock{}}}

	if err := WriteFeed(out, posts); err != nil {
		t.Fatalf("WriteFeed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := post.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != 1 || back[0].Slug != "x" {
		t.Errorf("unexpected feed: %+v", back)
	}

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestImportMatchesCheckedInFeed(t *testing.T) {
	cfg := config.DefaultConfig()
	im := New(filepath.Join("..", "..", "testdata", "content"), cfg.Include, cfg.Exclude)

	posts, err := im.Import(context.Background())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	golden, err := os.ReadFile(filepath.Join("..", "..", "testdata", "posts.json"))
	if err != nil {
		t.Fatalf("reading golden feed: %v", err)
	}
	want, err := post.Decode(bytes.NewReader(golden))
	if err != nil {
		t.Fatalf("decoding golden feed: %v", err)
	}
	if !reflect.DeepEqual(posts, want) {
		t.Fatalf("imported posts differ from testdata/posts.json\n got: %+v\nwant: %+v", posts, want)
	}

	var buf bytes.Buffer
	if err := post.Encode(&buf, posts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), golden) {
		t.Errorf("encoded feed differs from testdata/posts.json:\n%s", buf.String())
	}
}
