package render

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/modules/content/blog"
	"github.com/investordaily/blogd/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.Linkify,
		extension.Strikethrough,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// Handler serves the read-only HTML view of a published blog.
type Handler struct {
	blogs *blog.Service
}

func NewHandler(blogs *blog.Service) *Handler { return &Handler{blogs: blogs} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/render")
	g.GET("/blogs/:id", h.renderBlog)
}

func (h *Handler) renderBlog(c *gin.Context) {
	b, err := h.blogs.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if b == nil {
		response.NotFoundMsg(c, "blog does not exist")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, renderHTML(b))
}

func renderHTML(b *models.BlogModel) string {
	var body strings.Builder

	title := template.HTMLEscapeString(strings.TrimSpace(b.Title))
	body.WriteString("<h1>" + title + "</h1>\n")

	if b.HeroImageURL != "" {
		body.WriteString(`<figure><img src="` + template.HTMLEscapeString(b.HeroImageURL) + `" alt="Hero" />`)
		if strings.TrimSpace(b.HeroImageCaption) != "" {
			body.WriteString("<figcaption>" + template.HTMLEscapeString(b.HeroImageCaption) + "</figcaption>")
		}
		body.WriteString("</figure>\n")
	}

	for _, blk := range b.Blocks {
		switch blk.Kind {
		case models.BlockSubheading:
			body.WriteString("<h2>" + template.HTMLEscapeString(blk.Text) + "</h2>\n")
		case models.BlockDivider:
			body.WriteString("<hr />\n")
		case models.BlockParagraph:
			body.WriteString(renderParagraph(blk.Text))
		}
	}

	return `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>` + title + `</title>
</head>
<body>
<article>
` + body.String() + `</article>
</body>
</html>`
}

// renderParagraph runs paragraph text through the markdown engine so inline
// emphasis and links survive the block format.
func renderParagraph(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return "<p>" + template.HTMLEscapeString(text) + "</p>\n"
	}
	return buf.String()
}
