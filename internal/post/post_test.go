package post

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	doc := `[
  {
    "slug": "hello",
    "title": "Hello",
    "author": "Sam",
    "date": "2024-06-01",
    "excerpt": "First post",
    "tags": ["go", "web"],
    "content": [
      {"type": "paragraph", "text": "Hi"},
      {"type": "list", "items": ["a", "b"]},
      {"type": "image", "url": "/a.png", "alt": "A"},
      {"type": "carousel", "frames": 3}
    ],
    "linkedinUrl": "https://www.linkedin.com/posts/hello"
  }
]`
	posts, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	p := posts[0]
	if p.Slug != "hello" || p.Author != "Sam" || p.LinkedInURL == "" {
		t.Errorf("unexpected post: %+v", p)
	}
	if len(p.Tags) != 2 || p.Tags[1] != "web" {
		t.Errorf("tags = %v", p.Tags)
	}
	if len(p.Content) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(p.Content))
	}
	if p.Content[1].Type != BlockList || len(p.Content[1].Items) != 2 {
		t.Errorf("list block = %+v", p.Content[1])
	}
	if p.Content[3].Type != "carousel" {
		t.Errorf("unknown block type should survive decoding, got %q", p.Content[3].Type)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	posts, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", posts)
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	for _, doc := range []string{`null`, `{"slug":"a"}`, `not json`, ``} {
		if _, err := Decode(strings.NewReader(doc)); err == nil {
			t.Errorf("Decode(%q): expected error", doc)
		}
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	for _, doc := range []string{`[] {"broken"`, `[{"slug":"a"}] []`, `[] x`} {
		if _, err := Decode(strings.NewReader(doc)); err == nil {
			t.Errorf("Decode(%q): expected error", doc)
		}
	}
	posts, err := Decode(strings.NewReader("[{\"slug\":\"a\"}]\n\n"))
	if err != nil {
		t.Fatalf("trailing whitespace: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("len = %d, want 1", len(posts))
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-06-01", "June 1, 2024"},
		{"2024-01-15T10:30:00Z", "January 15, 2024"},
		{"2023-12-31T23:00:00", "December 31, 2023"},
		{" 2022-03-09 ", "March 9, 2022"},
		{"yesterday", InvalidDate},
		{"", InvalidDate},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasVideo(t *testing.T) {
	tests := []struct {
		name    string
		content []ContentBlock
		want    bool
	}{
		{"empty", nil, false},
		{"text only", []ContentBlock{{Type: BlockParagraph, Text: "x"}, {Type: BlockQuote, Text: "y"}}, false},
		{"video last", []ContentBlock{{Type: BlockParagraph}, {Type: BlockVideo, URL: "https://v"}}, true},
		{"video without url", []ContentBlock{{Type: BlockVideo}}, true},
		{"similar name", []ContentBlock{{Type: "videos"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Post{Content: tt.content}).HasVideo(); got != tt.want {
				t.Errorf("HasVideo = %v, want %v", got, tt.want)
			}
		})
	}
}

func slugs(posts []Post) string {
	var s []string
	for _, p := range posts {
		s = append(s, p.Slug)
	}
	return strings.Join(s, ",")
}

func TestSortByDateNewestFirst(t *testing.T) {
	posts := []Post{
		{Slug: "a", Date: "2024-01-01"},
		{Slug: "b", Date: "2024-06-01"},
	}
	sorted := SortByDate(posts)
	if got := slugs(sorted); got != "b,a" {
		t.Errorf("order = %s, want b,a", got)
	}
	if got := slugs(posts); got != "a,b" {
		t.Errorf("input was reordered: %s", got)
	}
}

func TestSortByDateStable(t *testing.T) {
	posts := []Post{
		{Slug: "p1", Date: "2024-03-01"},
		{Slug: "p2", Date: "2024-05-01"},
		{Slug: "p3", Date: "2024-03-01"},
		{Slug: "p4", Date: "2024-05-01T00:00:00Z"},
		{Slug: "p5", Date: "2024-03-01"},
	}
	if got := slugs(SortByDate(posts)); got != "p2,p4,p1,p3,p5" {
		t.Errorf("order = %s, want p2,p4,p1,p3,p5", got)
	}
}

func TestSortByDateNonIncreasing(t *testing.T) {
	posts := []Post{
		{Slug: "a", Date: "2021-07-04"},
		{Slug: "b", Date: "2023-02-11"},
		{Slug: "c", Date: "2019-12-25"},
		{Slug: "d", Date: "2023-02-11T08:00:00Z"},
		{Slug: "e", Date: "2020-01-01"},
	}
	sorted := SortByDate(posts)
	for i := 1; i < len(sorted); i++ {
		prev, _ := sorted[i-1].Time()
		cur, _ := sorted[i].Time()
		if cur.After(prev) {
			t.Errorf("%s (%s) sorted after older %s (%s)", sorted[i].Slug, cur, sorted[i-1].Slug, prev)
		}
	}
}

func TestSortByDateInvalidLast(t *testing.T) {
	posts := []Post{
		{Slug: "bad1", Date: "soon"},
		{Slug: "old", Date: "2020-01-01"},
		{Slug: "bad2", Date: ""},
		{Slug: "new", Date: "2024-01-01"},
	}
	if got := slugs(SortByDate(posts)); got != "new,old,bad1,bad2" {
		t.Errorf("order = %s, want new,old,bad1,bad2", got)
	}
}

func TestSortByDateEmpty(t *testing.T) {
	if got := SortByDate(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d posts", len(got))
	}
}

func TestFind(t *testing.T) {
	posts := []Post{{Slug: "a", Title: "first"}, {Slug: "b"}, {Slug: "a", Title: "second"}}

	p, err := Find(posts, "a")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Title != "first" {
		t.Errorf("expected first match, got %q", p.Title)
	}

	_, err = Find(posts, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := Find(nil, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty collection, got %v", err)
	}
}

func TestDuplicateSlugs(t *testing.T) {
	posts := []Post{{Slug: "a"}, {Slug: "b"}, {Slug: "a"}, {Slug: "c"}, {Slug: "b"}, {Slug: "a"}}
	got := DuplicateSlugs(posts)
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("DuplicateSlugs = %v, want [a b]", got)
	}
	if DuplicateSlugs([]Post{{Slug: "x"}}) != nil {
		t.Error("expected no duplicates")
	}
}

func TestEncode(t *testing.T) {
	posts := []Post{{
		Slug:        "q-and-a",
		Title:       "Q&A <live>",
		Date:        "2024-06-01",
		Tags:        []string{"events"},
		Content:     []ContentBlock{{Type: BlockVideo, URL: "https://www.linkedin.com/posts/x"}},
		LinkedInURL: "https://www.linkedin.com/posts/x",
	}}

	var buf bytes.Buffer
	if err := Encode(&buf, posts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"title": "Q&A <live>"`) {
		t.Errorf("expected unescaped, indented title, got:\n%s", out)
	}
	if !strings.Contains(out, `"linkedinUrl"`) {
		t.Error("expected linkedinUrl key")
	}

	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != 1 || back[0].Content[0].Type != BlockVideo {
		t.Errorf("unexpected decode: %+v", back)
	}
}

func TestEncodeNil(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}
