package org2anki

import (
	"html"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Inline markup: /emphasis/, *strong*, =code=.
	// Code is stricter: the delimiters must be whitespace-bounded.
	emphasisPattern = regexp.MustCompile(`/([^/]+)/`)
	strongPattern   = regexp.MustCompile(`\*([^*]+)\*`)
	codePattern     = regexp.MustCompile(` =([^=]+)= `)

	// List item: optional leading whitespace, then a hyphen.
	listItemPattern = regexp.MustCompile(`^\s*-`)

	// Leading whitespace run, used to compute list nesting depth.
	leadingWhitespace = regexp.MustCompile(`^\s*`)
)

// blockTransformer abstracts text-block to HTML-fragment conversion.
type blockTransformer interface {
	Transform(text string) string
}

// orgTransformer renders org heading/body blocks as HTML fragments.
type orgTransformer struct{}

// Transform converts one org text block to an HTML fragment.
func (orgTransformer) Transform(text string) string {
	return Htmlify(text)
}

// Htmlify converts a single org text block (a heading or a body) into an
// HTML fragment. It is pure and total: any input string produces output,
// malformed markup is rendered best-effort, and an empty block yields an
// empty fragment.
//
// The block is escaped first, then the three inline passes run over the
// whole block in a fixed order (emphasis, strong, code). Each pass injects
// a space on either side of the emitted tag; that padding is part of the
// output contract. Finally the block is re-rendered line by line, turning
// hyphen-prefixed lines into nested <ul>/<li> structure driven by their
// indentation depth.
func Htmlify(text string) string {
	if text == "" {
		return ""
	}

	// Drop the org heading-level star prefix, if any.
	text = strings.TrimLeft(text, "*")

	// Escape before substitution so user content never injects raw HTML.
	// The marker characters / * = - survive escaping unchanged.
	text = html.EscapeString(text)

	text = emphasisPattern.ReplaceAllString(text, " <em>$1</em> ")
	text = strongPattern.ReplaceAllString(text, " <strong>$1</strong> ")
	text = codePattern.ReplaceAllString(text, " <code>$1</code> ")

	var out strings.Builder
	var levels []int // stack of open list indentation depths

	for _, line := range strings.Split(text, "\n") {
		if listItemPattern.MatchString(line) {
			depth := len(leadingWhitespace.FindString(line))
			switch top := len(levels) - 1; {
			case top < 0 || levels[top] < depth:
				levels = append(levels, depth)
				out.WriteString("<ul>")
			case levels[top] > depth:
				// One pop per line: a dedent across several levels at once
				// closes only one list here and leaves the rest open.
				out.WriteString("</ul>")
				levels = levels[:top]
			}
			out.WriteString("<li>")
			out.WriteString(strings.TrimSpace(line)[1:])
			out.WriteString("</li>")
		} else {
			// A non-list line ends every open list before it renders.
			for range levels {
				out.WriteString("</ul>")
			}
			levels = levels[:0]
			out.WriteString(strings.TrimSpace(line))
			out.WriteString("<br>")
		}
		out.WriteString("\n")
	}

	// Close whatever is still open so every <ul> is balanced.
	for range levels {
		out.WriteString("</ul>")
	}

	return out.String()
}
