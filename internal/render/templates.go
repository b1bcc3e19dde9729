package render

// Block fragments, one per content block type.
const (
	paragraphBlock = `<p>{{.Text}}</p>`
	headingBlock   = `<h2>{{.Text}}</h2>`
	listBlock      = `<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>`
	quoteBlock     = `<blockquote>{{.Text}}</blockquote>`

	videoBlock = `
<div class="video-embed">
  <div class="video-placeholder">
    <a href="{{.URL}}" target="_blank" rel="noopener" class="video-link">
      <svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <polygon points="5 3 19 12 5 21 5 3"></polygon>
      </svg>
      <p><strong>Watch Video on LinkedIn</strong></p>
      {{if .Caption}}<p class="video-caption">{{.Caption}}</p>{{end}}
    </a>
  </div>
  <p class="video-note"><em>Note: Video hosted on LinkedIn. Click to view in a new tab.</em></p>
</div>
`

	imageBlock = `
<figure class="post-image">
  <img src="{{.URL}}" alt="{{.Alt}}" loading="lazy">
  {{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}
</figure>
`
)

// pageTemplates holds the list and detail documents and their shared parts.
const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Description}}">
  <meta property="og:title" content="{{.OGTitle}}">
  <meta property="og:description" content="{{.OGDescription}}">
  <meta property="og:type" content="article">
  <link rel="stylesheet" href="{{(links).Stylesheet}}">
</head>
<body>
  <nav class="navbar">
    <a href="/" class="nav-logo">{{(site).Name}}</a>
    <a href="{{(links).Index}}" class="nav-link">Blog</a>
  </nav>
{{end}}

{{define "foot"}}
  <script>
    document.addEventListener('DOMContentLoaded', function () {
      setTimeout(function () {
        document.querySelectorAll('.fade-in').forEach(function (el) { el.classList.add('visible'); });
      }, 50);
    });
  </script>
</body>
</html>
{{end}}

{{define "tags"}}<div class="post-tags">{{range .}}<span class="post-tag">{{.}}</span>{{end}}</div>{{end}}

{{define "linkedin-icon"}}<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="currentColor"><path d="M19 0h-14c-2.761 0-5 2.239-5 5v14c0 2.761 2.239 5 5 5h14c2.762 0 5-2.239 5-5v-14c0-2.761-2.238-5-5-5zm-11 19h-3v-11h3v11zm-1.5-12.268c-.966 0-1.75-.79-1.75-1.764s.784-1.764 1.75-1.764 1.75.79 1.75 1.764-.783 1.764-1.75 1.764zm13.5 12.268h-3v-5.604c0-3.368-4-3.113-4 0v5.604h-3v-11h3v1.765c1.396-2.586 7-2.777 7 2.476v6.759z"/></svg>{{end}}

{{define "card"}}
    <article class="blog-post-card glass fade-in" style="transition-delay: {{.Delay}}">
      <div class="post-header">
        <div class="post-meta">
          <span class="post-date">{{.Date}}</span>
          <span class="post-author">by {{.Post.Author}}</span>
        </div>
        {{if .HasVideo}}<span class="media-indicator">📹 Video</span>{{end}}
      </div>
      <h2 class="post-title"><a href="{{.URL}}">{{.Post.Title}}</a></h2>
      <p class="post-excerpt">{{.Post.Excerpt}}</p>
      {{template "tags" .Post.Tags}}
      <div class="post-footer">
        <a href="{{.URL}}" class="read-more">
          Read Full Post
          <svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="9 18 15 12 9 6"></polyline></svg>
        </a>
        {{if .Post.LinkedInURL}}
        <a href="{{.Post.LinkedInURL}}" target="_blank" rel="noopener" class="linkedin-link" title="View on LinkedIn">
          {{template "linkedin-icon"}}
          <span>LinkedIn</span>
        </a>
        {{end}}
      </div>
    </article>
{{end}}

{{define "list"}}{{template "head" .Meta}}
  <main class="blog-container">
    <header class="blog-hero">
      <h1>Blog</h1>
    </header>
    <section class="blog-posts-grid" id="blog-posts-grid">
    {{- if .Failed}}
      <p class="error-message">` + ListErrorMessage + `</p>
    {{- else if .Empty}}
      <p class="no-posts">` + NoPostsMessage + `</p>
    {{- else}}
      {{- range .Cards}}{{template "card" .}}{{end}}
    {{- end}}
    </section>
  </main>
{{template "foot"}}{{end}}

{{define "detail"}}{{template "head" .Meta}}
  <main class="post-container">
    <div class="post-content fade-in" id="post-content">
    {{- if .Message}}
      <div class="error-message glass">
        <h2>Oops!</h2>
        <p>{{.Message}}</p>
        <a href="{{(links).Index}}" class="btn-primary">Back to Blog</a>
      </div>
    {{- else}}
      <header class="post-header glass">
        <div class="post-meta">
          <span class="post-date">{{.Date}}</span>
          <span class="post-author">by {{.Post.Author}}</span>
        </div>
        <h1 class="post-title">{{.Post.Title}}</h1>
        {{template "tags" .Post.Tags}}
        {{if .Post.LinkedInURL}}
        <a href="{{.Post.LinkedInURL}}" target="_blank" rel="noopener" class="linkedin-source">
          {{template "linkedin-icon"}}
          View Original on LinkedIn
        </a>
        {{end}}
      </header>

      <div class="post-body glass">
        {{.Body}}
      </div>

      <footer class="post-footer glass">
        <div class="post-share">
          <p>Share this post:</p>
          <div class="share-buttons">
            <a href="{{.Share.Twitter}}" target="_blank" rel="noopener" class="share-btn twitter">Twitter</a>
            <a href="{{.Share.LinkedIn}}" target="_blank" rel="noopener" class="share-btn linkedin">LinkedIn</a>
          </div>
        </div>
        <a href="{{(links).Index}}" class="back-to-blog">&larr; Back to All Posts</a>
      </footer>
    {{- end}}
    </div>
  </main>
{{template "foot"}}{{end}}
`

// Stylesheet is served and written as blog.css next to the blog pages.
const Stylesheet = `:root {
  --bg: #0b0d12;
  --fg: #e8eaf0;
  --muted: #9aa3b5;
  --accent: #5b8cff;
  --glass: rgba(255, 255, 255, 0.06);
  --border: rgba(255, 255, 255, 0.12);
}
* { box-sizing: border-box; }
body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, -apple-system, "Segoe UI", sans-serif; line-height: 1.6; }
a { color: var(--accent); }
.navbar { display: flex; gap: 1.5rem; align-items: center; padding: 1rem 2rem; border-bottom: 1px solid var(--border); }
.nav-logo { font-weight: 700; color: var(--fg); text-decoration: none; }
.glass { background: var(--glass); border: 1px solid var(--border); border-radius: 16px; backdrop-filter: blur(12px); }
.blog-container, .post-container { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; }
.blog-posts-grid { display: grid; gap: 1.5rem; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); }
.blog-post-card { padding: 1.5rem; display: flex; flex-direction: column; gap: 0.75rem; }
.post-header { display: flex; justify-content: space-between; align-items: center; flex-wrap: wrap; gap: 0.5rem; }
.post-container .post-header { display: block; padding: 2rem; }
.post-meta { display: flex; gap: 0.75rem; color: var(--muted); font-size: 0.9rem; }
.media-indicator { font-size: 0.8rem; padding: 0.2rem 0.6rem; border-radius: 999px; background: var(--glass); }
.post-title a { color: var(--fg); text-decoration: none; }
.post-excerpt { color: var(--muted); }
.post-tags { display: flex; flex-wrap: wrap; gap: 0.4rem; }
.post-tag { font-size: 0.75rem; padding: 0.15rem 0.6rem; border-radius: 999px; border: 1px solid var(--border); }
.post-footer { display: flex; justify-content: space-between; align-items: center; margin-top: auto; }
.post-container .post-footer { padding: 1.5rem 2rem; margin-top: 1.5rem; }
.read-more, .linkedin-link, .linkedin-source { display: inline-flex; gap: 0.35rem; align-items: center; text-decoration: none; }
.post-body { padding: 2rem; margin-top: 1.5rem; }
.post-body blockquote { border-left: 3px solid var(--accent); margin: 1.5rem 0; padding-left: 1rem; font-style: italic; }
.post-image img { max-width: 100%; border-radius: 12px; }
.post-image figcaption, .video-caption, .video-note { color: var(--muted); font-size: 0.9rem; }
.video-embed { margin: 1.5rem 0; }
.video-placeholder { display: flex; justify-content: center; padding: 2rem; border: 1px dashed var(--border); border-radius: 12px; }
.video-link { display: flex; flex-direction: column; align-items: center; text-decoration: none; }
.share-buttons { display: flex; gap: 0.75rem; }
.share-btn { padding: 0.4rem 0.9rem; border-radius: 8px; border: 1px solid var(--border); text-decoration: none; }
.error-message, .no-posts { text-align: center; padding: 2rem; color: var(--muted); }
.fade-in { opacity: 0; transform: translateY(16px); transition: opacity 0.5s ease, transform 0.5s ease; }
.fade-in.visible { opacity: 1; transform: none; }
`
