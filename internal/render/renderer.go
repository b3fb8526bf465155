package render

import (
	"bytes"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts raw model-generated text into HTML that is safe to insert
// into a page without further escaping. The text is untrusted: it may contain
// markdown, fenced code blocks and arbitrary inline HTML.
//
// Render is markdown -> HTML -> Sanitize. Sanitize is an allow-list filter and
// is idempotent: sanitizing already-sanitized output returns it unchanged.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				// Class-based output only; inline style attributes would be
				// stripped by the policy anyway.
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		// Raw HTML passes through the markdown stage untouched; the policy
		// below is the single enforcement point for what reaches the page.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"p", "br", "em", "strong", "code", "pre", "blockquote",
		"ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	// chroma emits token coloring as span/code/pre class attributes.
	policy.AllowAttrs("class").OnElements("span", "code", "pre", "div")
	// Links keep href but never a javascript: scheme.
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{md: md, policy: policy}
}

// Render converts untrusted markdown-ish text to sanitized HTML. It never
// fails: if the markdown stage errors the input degrades to escaped literal
// text rather than being dropped or passed through raw.
func (r *Renderer) Render(raw string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(raw), &buf); err != nil {
		log.Warn().Err(err).Msg("Markdown conversion failed, falling back to escaped text")
		return "<p>" + html.EscapeString(raw) + "</p>"
	}
	return r.Sanitize(buf.String())
}

// Sanitize strips everything outside the allow-list from an HTML fragment.
// Safe to call on its own output.
func (r *Renderer) Sanitize(fragment string) string {
	return strings.TrimSpace(r.policy.Sanitize(fragment))
}
