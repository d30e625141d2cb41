package plan

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// completedMarker flags a heading as a completed section, e.g. "## [x] Solution".
var completedMarker = regexp.MustCompile(`^\[(x|X)\]\s*`)

var pendingMarker = regexp.MustCompile(`^\[ \]\s*`)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type heading struct {
	node  ast.Node
	level int
	title string
}

// ParseMarkdown builds a storyboard from a markdown document. A lone level-1 heading followed by
// deeper headings becomes the document title; every heading at the shallowest remaining level
// starts a section, and deeper headings fold into the current section's content.
func ParseMarkdown(src []byte, name string) (doc Document) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc.Title = strings.TrimSuffix(strings.TrimSuffix(name, ".md"), ".markdown")
	doc.ID = slugify(doc.Title)

	var headings []heading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, heading{node: n, level: h.Level, title: extractText(n, src)})
		}
	}

	titleNode, sectionLevel := pickLevels(headings)
	if titleNode != nil {
		for _, h := range headings {
			if h.node == titleNode {
				doc.Title = h.title
				doc.ID = slugify(h.title)
			}
		}
	}

	var current *Section
	var body bytes.Buffer
	used := make(map[Kind]bool)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(body.String())
		doc.Sections = append(doc.Sections, *current)
		body.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if n == titleNode {
			continue
		}

		if h, ok := n.(*ast.Heading); ok && h.Level == sectionLevel {
			flush()
			current = newMarkdownSection(extractText(n, src), len(doc.Sections), used)
			continue
		}

		if current == nil {
			continue
		}

		t := extractText(n, src)
		if t == "" {
			continue
		}
		if body.Len() > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(t)
	}
	flush()

	return doc
}

func pickLevels(headings []heading) (titleNode ast.Node, sectionLevel int) {
	if len(headings) == 0 {
		return titleNode, sectionLevel
	}

	topLevel := 0
	for _, h := range headings {
		if h.level == 1 {
			topLevel++
		}
	}

	rest := headings
	if headings[0].level == 1 && topLevel == 1 && len(headings) > 1 {
		titleNode = headings[0].node
		rest = headings[1:]
	}

	sectionLevel = rest[0].level
	for _, h := range rest {
		if h.level < sectionLevel {
			sectionLevel = h.level
		}
	}

	return titleNode, sectionLevel
}

func newMarkdownSection(title string, index int, used map[Kind]bool) (section *Section) {
	completed := false
	if completedMarker.MatchString(title) {
		completed = true
		title = completedMarker.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(pendingMarker.ReplaceAllString(title, ""))

	kind := KindFromTitle(title)
	if kind != KindCustom && used[kind] {
		kind = KindCustom
	}
	used[kind] = true

	section = &Section{
		ID:          fmt.Sprintf("%s-%d", slugify(title), index+1),
		Kind:        kind,
		Title:       title,
		IsCompleted: completed,
		Order:       index,
		IsCustom:    kind == KindCustom,
	}
	return section
}

// KindFromTitle maps a human heading such as "Target Customer" to a section kind.
func KindFromTitle(title string) (kind Kind) {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "problem"):
		kind = KindProblem
	case strings.Contains(lower, "solution"):
		kind = KindSolution
	case strings.Contains(lower, "customer"):
		kind = KindCustomer
	case strings.Contains(lower, "revenue"):
		kind = KindRevenue
	case strings.Contains(lower, "risk"):
		kind = KindRisks
	default:
		kind = KindCustom
	}
	return kind
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			v := line.Value(src)
			buf.Write(v)
			if len(v) > 0 && v[len(v)-1] != '\n' {
				buf.WriteByte('\n')
			}
		}
		if lines.Len() > 0 {
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
			buf.WriteByte(' ')
		}
	}
	return strings.TrimSpace(buf.String())
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "section"
	}
	return s
}
