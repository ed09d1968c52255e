package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/creditlens/internal/model"
)

// CreditLine is one <line> of a credits XML file (credits > page > line)
type CreditLine struct {
	Attrs map[string]string
	Text  string       // Descendant text with whitespace collapsed
	Parts []CreditLine // Direct <left>/<right> children, if any
}

// Attr returns an attribute value or ""
func (l CreditLine) Attr(key string) string {
	return l.Attrs[key]
}

// Elements returns the left/right columns when present, else the line itself
func (l CreditLine) Elements() []CreditLine {
	if len(l.Parts) > 0 {
		return l.Parts
	}
	return []CreditLine{l}
}

// ParseCreditLines tokenizes a credits XML file. The tokenizer tolerates the
// hand-edited markup these files ship with and honours self-closing tags
// such as <line style="break"/>.
func ParseCreditLines(data []byte) ([]CreditLine, error) {
	z := html.NewTokenizer(bytes.NewReader(data))

	var (
		stack     []string
		lines     []CreditLine
		line      *CreditLine
		part      *CreditLine
		lineDepth int
		partDepth int
		lineText  strings.Builder
		partText  strings.Builder
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if line != nil {
					if part != nil {
						part.Text = CollapseSpace(partText.String())
						line.Parts = append(line.Parts, *part)
					}
					line.Text = CollapseSpace(lineText.String())
					lines = append(lines, *line)
				}
				return lines, nil
			}
			return nil, fmt.Errorf("tokenize credits: %w", z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			attrs := readAttrs(z, hasAttr)
			selfClosing := tt == html.SelfClosingTagToken

			switch {
			case tag == "line" && line == nil && parentIs(stack, "credits", "page"):
				if selfClosing {
					lines = append(lines, CreditLine{Attrs: attrs})
					continue
				}
				line = &CreditLine{Attrs: attrs}
				lineDepth = len(stack) + 1
				lineText.Reset()
			case (tag == "left" || tag == "right") && line != nil && part == nil && len(stack) == lineDepth:
				if selfClosing {
					line.Parts = append(line.Parts, CreditLine{Attrs: attrs})
					continue
				}
				part = &CreditLine{Attrs: attrs}
				partDepth = len(stack) + 1
				partText.Reset()
			}

			if !selfClosing {
				stack = append(stack, tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			idx := lastIndex(stack, string(name))
			if idx < 0 {
				continue
			}
			stack = stack[:idx]

			if part != nil && len(stack) < partDepth {
				part.Text = CollapseSpace(partText.String())
				line.Parts = append(line.Parts, *part)
				part = nil
			}
			if line != nil && len(stack) < lineDepth {
				line.Text = CollapseSpace(lineText.String())
				lines = append(lines, *line)
				line = nil
			}

		case html.TextToken:
			if line != nil {
				text := string(z.Text())
				lineText.WriteString(text)
				if part != nil {
					partText.WriteString(text)
				}
			}
		}
	}
}

// DetectXMLFormat tells the two credits XML layouts apart: the newer one
// carries a style attribute on its first line, the older one never does
func DetectXMLFormat(lines []CreditLine) string {
	if len(lines) > 0 && lines[0].Attr("style") == "" {
		return model.FormatXMLv1
	}
	return model.FormatXMLv2
}

func readAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

func parentIs(stack []string, grandparent, parent string) bool {
	n := len(stack)
	return n >= 2 && stack[n-2] == grandparent && stack[n-1] == parent
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}
