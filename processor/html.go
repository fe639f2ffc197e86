package processor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ZaguanLabs/catalogtl"
)

// HTMLProcessor extracts and applies translations to HTML fragments such as
// the contents of a product description cell.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: catalogtl.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// textSpan is the byte range of one translatable text run in the source.
type textSpan struct {
	start, end int
	hash       string
	escaper    *strings.Replacer // nil inside raw text elements
}

// parsedFragment keeps the source so translations can be spliced in without
// re-rendering anything around them.
type parsedFragment struct {
	content string
	spans   []textSpan
}

type openElement struct {
	tag  string
	skip bool
}

var (
	textEscaper   = strings.NewReplacer("<", "&lt;")
	entityEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")
)

// Extract tokenizes an HTML fragment and extracts translatable text nodes.
// Identical texts are returned once.
func (p *HTMLProcessor) Extract(content string) (any, []TextNode, error) {
	z := html.NewTokenizer(strings.NewReader(content))
	pf := &parsedFragment{content: content}

	var (
		nodes  []TextNode
		stack  []openElement
		offset int
	)
	seenHashes := make(map[string]bool)
	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return pf, nodes, nil
			}
			return nil, nil, &catalogtl.ProcessorError{
				Message:     "failed to tokenize HTML fragment",
				Cause:       z.Err(),
				ContentType: "html",
			}

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if voidElements[atom.Lookup(name)] {
				continue
			}
			tag := string(name)
			skip := p.ignoredTags[tag] || (len(stack) > 0 && stack[len(stack)-1].skip)
			if hasAttr && !skip {
				skip = noTranslate(z)
			}
			stack = append(stack, openElement{tag: tag, skip: skip})

		case html.EndTagToken:
			name, _ := z.TagName()
			stack = closeElement(stack, string(name))

		case html.TextToken:
			var parent *openElement
			if len(stack) > 0 {
				parent = &stack[len(stack)-1]
			}
			if parent != nil && parent.skip {
				continue
			}
			trimmed := strings.TrimSpace(string(z.Text()))
			if trimmed == "" {
				continue
			}

			hash := catalogtl.HashText(trimmed)
			span := textSpan{start: start, end: offset, hash: hash}
			switch {
			case parent != nil && rawTextElements[parent.tag]:
			case html.UnescapeString(content[start:offset]) != content[start:offset]:
				span.escaper = entityEscaper
			default:
				span.escaper = textEscaper
			}
			pf.spans = append(pf.spans, span)

			if seenHashes[hash] {
				continue
			}
			seenHashes[hash] = true

			node := TextNode{
				ID:       fmt.Sprintf("node-%d", len(nodes)),
				Text:     trimmed,
				Hash:     hash,
				NodeType: "html_text",
				Metadata: map[string]string{},
			}
			if parent != nil {
				node.Metadata["parent_tag"] = parent.tag
			}
			nodes = append(nodes, node)
		}
	}
}

// Apply splices translations into the fragment source. Markup, entities and
// attribute quoting outside the translated text runs are kept byte for byte.
func (p *HTMLProcessor) Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error) {
	pf, ok := parsed.(*parsedFragment)
	if !ok {
		return "", &catalogtl.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	var b strings.Builder
	b.Grow(len(pf.content))
	last := 0
	for _, s := range pf.spans {
		translated, ok := translations[s.hash]
		if !ok {
			continue
		}
		if s.escaper != nil {
			translated = s.escaper.Replace(translated)
		}
		b.WriteString(pf.content[last:s.start])
		b.WriteString(catalogtl.PreserveWhitespace(pf.content[s.start:s.end], translated))
		last = s.end
	}
	b.WriteString(pf.content[last:])
	return b.String(), nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// voidElements never have an end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// rawTextElements hold text the tokenizer does not unescape.
var rawTextElements = map[string]bool{"script": true, "style": true}

func noTranslate(z *html.Tokenizer) bool {
	for {
		key, _, more := z.TagAttr()
		if string(key) == "data-no-translate" {
			return true
		}
		if !more {
			return false
		}
	}
}

// closeElement pops the stack down to the innermost element named tag.
// A stray end tag leaves the stack unchanged.
func closeElement(stack []openElement, tag string) []openElement {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].tag == tag {
			return stack[:i]
		}
	}
	return stack
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
