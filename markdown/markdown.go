// Package markdown renders post bodies to HTML as templ components, with
// syntax-highlighted code blocks.
package markdown

import (
	"context"
	stdhtml "html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown returns a templ.Component that renders content as HTML.
// Rendering happens lazily, at component render time.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(Render(content))
		return err
	})
}

// Render converts markdown to HTML. Raw HTML in the source is skipped,
// so post bodies cannot smuggle script tags into pages.
func Render(content string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(content))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML,
		RenderNodeHook: renderNodeHook,
	})
	return md.Render(doc, renderer)
}

func renderNodeHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, false
	}
	switch n := node.(type) {
	case *ast.CodeBlock:
		renderCodeBlock(w, n)
		return ast.SkipChildren, true
	default:
		return ast.GoToNext, false
	}
}

func renderCodeBlock(w io.Writer, block *ast.CodeBlock) {
	code := string(block.Literal)
	lexer := pickLexer(string(block.Info), code)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		renderPlainCodeBlock(w, code)
		return
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(w, styles.Fallback, iterator); err != nil {
		renderPlainCodeBlock(w, code)
	}
}

func renderPlainCodeBlock(w io.Writer, code string) {
	_, _ = io.WriteString(w, `<pre class="chroma"><code>`)
	_, _ = io.WriteString(w, stdhtml.EscapeString(code))
	_, _ = io.WriteString(w, `</code></pre>`)
}

func pickLexer(language string, code string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return lexer
		}
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// StylesheetCSS returns the chroma stylesheet matching the classes emitted
// by Render, for inclusion in the page shell.
func StylesheetCSS() (string, error) {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Fallback); err != nil {
		return "", err
	}
	return b.String(), nil
}
