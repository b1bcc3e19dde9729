package render

import (
	"strings"
	"testing"

	"github.com/techimbue/website/internal/post"
)

func TestRenderBlock(t *testing.T) {
	tests := []struct {
		name  string
		block post.ContentBlock
		want  []string
	}{
		{"paragraph", post.ContentBlock{Type: post.BlockParagraph, Text: "Hello"}, []string{"<p>Hello</p>"}},
		{"heading", post.ContentBlock{Type: post.BlockHeading, Text: "Section"}, []string{"<h2>Section</h2>"}},
		{"list", post.ContentBlock{Type: post.BlockList, Items: []string{"one", "two"}}, []string{"<ul><li>one</li><li>two</li></ul>"}},
		{"quote", post.ContentBlock{Type: post.BlockQuote, Text: "Wise words"}, []string{"<blockquote>Wise words</blockquote>"}},
		{"video", post.ContentBlock{Type: post.BlockVideo, URL: "https://www.linkedin.com/v/1", Caption: "Launch"}, []string{
			`class="video-embed"`,
			`href="https://www.linkedin.com/v/1"`,
			"Watch Video on LinkedIn",
			`<p class="video-caption">Launch</p>`,
			"Video hosted on LinkedIn",
		}},
		{"image", post.ContentBlock{Type: post.BlockImage, URL: "/img/team.png", Alt: "Team", Caption: "Offsite"}, []string{
			`<figure class="post-image">`,
			`src="/img/team.png"`,
			`alt="Team"`,
			`loading="lazy"`,
			"<figcaption>Offsite</figcaption>",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(RenderBlock(tt.block))
			if got == "" {
				t.Fatal("expected markup, got empty string")
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("markup missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderBlockOptionalFields(t *testing.T) {
	video := string(RenderBlock(post.ContentBlock{Type: post.BlockVideo, URL: "https://v"}))
	if strings.Contains(video, "video-caption") {
		t.Error("video without caption should not render a caption")
	}

	image := string(RenderBlock(post.ContentBlock{Type: post.BlockImage, URL: "/a.png"}))
	if !strings.Contains(image, `alt=""`) {
		t.Errorf("image without alt should render an empty alt: %s", image)
	}
	if strings.Contains(image, "figcaption") {
		t.Error("image without caption should not render figcaption")
	}
}

func TestRenderBlockUnknown(t *testing.T) {
	for _, typ := range []post.BlockType{"", "unknown", "Paragraph", "code", "embed"} {
		if got := RenderBlock(post.ContentBlock{Type: typ, Text: "ignored", URL: "https://x"}); got != "" {
			t.Errorf("type %q: expected empty output, got %q", typ, got)
		}
	}
}

func TestRenderBlockEscapesText(t *testing.T) {
	got := string(RenderBlock(post.ContentBlock{Type: post.BlockParagraph, Text: "<script>alert(1)</script>"}))
	if strings.Contains(got, "<script>") {
		t.Errorf("paragraph text must be escaped: %s", got)
	}
	img := string(RenderBlock(post.ContentBlock{Type: post.BlockImage, URL: "javascript:alert(1)"}))
	if strings.Contains(img, "javascript:") {
		t.Errorf("unsafe image URL must be filtered: %s", img)
	}
}

func TestRenderBody(t *testing.T) {
	body := RenderBody([]post.ContentBlock{
		{Type: post.BlockHeading, Text: "First"},
		{Type: "mystery"},
		{Type: post.BlockParagraph, Text: "Second"},
	})
	if string(body) != "<h2>First</h2><p>Second</p>" {
		t.Errorf("body = %q", body)
	}
	if RenderBody(nil) != "" {
		t.Error("empty content should render nothing")
	}
}
