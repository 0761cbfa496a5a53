// Package text turns the HTML body of Hacker News text posts into wrapped
// plain text for the terminal.
package text

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Lines renders raw item HTML into lines no wider than width. Paragraphs are
// separated by a single blank line.
func Lines(raw string, width int) []string {
	paragraphs := Paragraphs(raw)
	if len(paragraphs) == 0 {
		return nil
	}
	out := make([]string, 0, len(paragraphs)*2)
	for i, p := range paragraphs {
		if i > 0 {
			out = append(out, "")
		}
		if p.Pre {
			for _, line := range strings.Split(p.Text, "\n") {
				out = append(out, runewidth.Truncate(line, max(1, width), "…"))
			}
			continue
		}
		out = append(out, Wrap(p.Text, width)...)
	}
	return out
}

type Paragraph struct {
	Text string
	Pre  bool
}

// Paragraphs splits HN item HTML on <p> boundaries. HN omits the opening
// <p> for the first paragraph, so text before the first tag is its own
// paragraph.
func Paragraphs(raw string) []Paragraph {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	nodes, err := nethtml.ParseFragment(strings.NewReader(raw), &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return []Paragraph{{Text: normalize(html.UnescapeString(raw))}}
	}

	var (
		out     []Paragraph
		current strings.Builder
	)
	flush := func() {
		if text := normalize(current.String()); text != "" {
			out = append(out, Paragraph{Text: text})
		}
		current.Reset()
	}
	for _, node := range nodes {
		if node.Type != nethtml.ElementNode {
			current.WriteString(inline(node))
			continue
		}
		switch strings.ToLower(node.Data) {
		case "p":
			flush()
			current.WriteString(inline(node))
			flush()
		case "pre":
			flush()
			if code := strings.TrimRight(collectRaw(node), "\n "); code != "" {
				out = append(out, Paragraph{Text: code, Pre: true})
			}
		default:
			current.WriteString(inline(node))
		}
	}
	flush()
	return out
}

func inline(node *nethtml.Node) string {
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style":
			return ""
		case "br":
			return " "
		case "a":
			label := normalize(children(node))
			href := strings.TrimSpace(attr(node, "href"))
			switch {
			case href == "":
				return label
			case label == "" || strings.EqualFold(label, href) || strings.HasSuffix(label, "..."):
				return href
			default:
				return label + " (" + href + ")"
			}
		case "pre":
			return collectRaw(node)
		default:
			return children(node)
		}
	}
	return ""
}

func children(node *nethtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(inline(child))
	}
	return b.String()
}

func collectRaw(node *nethtml.Node) string {
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRaw(child))
	}
	return b.String()
}

func attr(node *nethtml.Node, name string) string {
	for _, a := range node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Wrap word-wraps text to width terminal cells. Words longer than width are
// hard-split.
func Wrap(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words)/4+1)
	line := ""
	for _, word := range words {
		for runewidth.StringWidth(word) > width {
			if line != "" {
				out = append(out, line)
				line = ""
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			out = append(out, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		if line == "" {
			line = word
			continue
		}
		if runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width {
			line += " " + word
			continue
		}
		out = append(out, line)
		line = word
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}
