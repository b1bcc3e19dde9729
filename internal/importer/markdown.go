package importer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/techimbue/website/internal/post"
)

// videoPrefix marks a link-only paragraph as an embedded video, as in
// "[video: Product demo](https://www.linkedin.com/posts/...)".
const videoPrefix = "video"

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// document is the result of converting a Markdown body.
type document struct {
	Title   string // text of a leading level-one heading, if any
	Blocks  []post.ContentBlock
	Skipped int // top-level nodes with no block equivalent (code, tables, HTML)
}

// convert maps the top-level Markdown nodes onto content blocks.
func convert(src []byte) document {
	var doc document
	root := md.Parser().Parse(text.NewReader(src))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			t := plainText(node, src)
			if node.Level == 1 && doc.Title == "" && len(doc.Blocks) == 0 {
				doc.Title = t
				continue
			}
			doc.Blocks = append(doc.Blocks, post.ContentBlock{Type: post.BlockHeading, Text: t})

		case *ast.Paragraph:
			doc.Blocks = append(doc.Blocks, paragraphBlock(node, src))

		case *ast.List:
			var items []string
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				items = append(items, plainText(item, src))
			}
			doc.Blocks = append(doc.Blocks, post.ContentBlock{Type: post.BlockList, Items: items})

		case *ast.Blockquote:
			var parts []string
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t := plainText(c, src); t != "" {
					parts = append(parts, t)
				}
			}
			doc.Blocks = append(doc.Blocks, post.ContentBlock{Type: post.BlockQuote, Text: strings.Join(parts, " ")})

		default:
			doc.Skipped++
		}
	}
	return doc
}

// paragraphBlock turns a paragraph into an image, video or text block.
func paragraphBlock(p *ast.Paragraph, src []byte) post.ContentBlock {
	if only := soleChild(p); only != nil {
		switch n := only.(type) {
		case *ast.Image:
			return post.ContentBlock{
				Type:    post.BlockImage,
				URL:     string(n.Destination),
				Alt:     plainText(n, src),
				Caption: string(n.Title),
			}
		case *ast.Link:
			if caption, ok := videoCaption(plainText(n, src)); ok {
				return post.ContentBlock{
					Type:    post.BlockVideo,
					URL:     string(n.Destination),
					Caption: caption,
				}
			}
		}
	}
	return post.ContentBlock{Type: post.BlockParagraph, Text: plainText(p, src)}
}

// videoCaption reports whether a link label marks a video and returns the
// caption that follows the marker.
func videoCaption(label string) (string, bool) {
	if len(label) < len(videoPrefix) || !strings.EqualFold(label[:len(videoPrefix)], videoPrefix) {
		return "", false
	}
	rest := label[len(videoPrefix):]
	if rest != "" && rest[0] != ':' && rest[0] != ' ' {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":")), true
}

// soleChild returns the only child of n, or nil when there are several.
func soleChild(n ast.Node) ast.Node {
	if n.ChildCount() != 1 {
		return nil
	}
	return n.FirstChild()
}

// plainText concatenates the text under n. Soft line breaks become spaces.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.URL(src))
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock, *ast.Paragraph:
			// Separate the paragraphs of loose list items.
			if b.Len() > 0 && c != n {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
