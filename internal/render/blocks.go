package render

import (
	"bytes"
	"html/template"

	"github.com/techimbue/website/internal/post"
)

// blockTemplates is the closed dispatch table from block type to markup.
var blockTemplates = map[post.BlockType]*template.Template{
	post.BlockParagraph: template.Must(template.New("paragraph").Parse(paragraphBlock)),
	post.BlockHeading:   template.Must(template.New("heading").Parse(headingBlock)),
	post.BlockList:      template.Must(template.New("list").Parse(listBlock)),
	post.BlockVideo:     template.Must(template.New("video").Parse(videoBlock)),
	post.BlockImage:     template.Must(template.New("image").Parse(imageBlock)),
	post.BlockQuote:     template.Must(template.New("quote").Parse(quoteBlock)),
}

// RenderBlock returns the markup for a single content block. Unknown block
// types yield an empty fragment.
func RenderBlock(b post.ContentBlock) template.HTML {
	tmpl, ok := blockTemplates[b.Type]
	if !ok {
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, b); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

// RenderBody renders every block of content in order and concatenates the
// results.
func RenderBody(content []post.ContentBlock) template.HTML {
	var buf bytes.Buffer
	for _, b := range content {
		buf.WriteString(string(RenderBlock(b)))
	}
	return template.HTML(buf.String())
}
