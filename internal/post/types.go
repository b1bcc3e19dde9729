package post

// BlockType discriminates the variants of a ContentBlock.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockList      BlockType = "list"
	BlockVideo     BlockType = "video"
	BlockImage     BlockType = "image"
	BlockQuote     BlockType = "quote"
)

// ContentBlock is one typed unit of a post body. Which fields are
// meaningful depends on Type:
//
//	paragraph, heading, quote: Text
//	list:                      Items
//	video:                     URL, Caption
//	image:                     URL, Alt, Caption
//
// Blocks with any other Type are carried through decoding untouched and
// render as nothing.
type ContentBlock struct {
	Type    BlockType `json:"type" yaml:"type"`
	Text    string    `json:"text,omitempty" yaml:"text,omitempty"`
	Items   []string  `json:"items,omitempty" yaml:"items,omitempty"`
	URL     string    `json:"url,omitempty" yaml:"url,omitempty"`
	Alt     string    `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption string    `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Post is one blog entry as published in posts.json.
type Post struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Date        string         `json:"date"`
	Excerpt     string         `json:"excerpt"`
	Tags        []string       `json:"tags"`
	Content     []ContentBlock `json:"content"`
	LinkedInURL string         `json:"linkedinUrl,omitempty"`
}
