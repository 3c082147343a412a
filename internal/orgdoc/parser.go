package orgdoc

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Heading line: one or more stars, whitespace, then the heading text.
	headingPattern = regexp.MustCompile(`^(\*+)\s+(.*)$`)

	// Trailing tag group on a heading: " :tag1:tag2:".
	tagGroupPattern = regexp.MustCompile(`^(.*?)\s+((?::[^:\s]+)+:)\s*$`)

	// One property drawer entry: ":KEY: value".
	propertyPattern = regexp.MustCompile(`^\s*:([^:\s]+):\s*(.*)$`)
)

// Parse reads org text into a Document. It never fails: lines that do not
// form headings or drawers are body text, and an empty input is a document
// with an empty preamble and no nodes.
func Parse(src string) *Document {
	doc := &Document{}
	lines := strings.Split(normalizeLineEndings(src), "\n")

	var stack []*Node // ancestors of the node being read, outermost first
	var current *Node
	var body []string

	flush := func() {
		text := strings.TrimSuffix(strings.Join(body, "\n"), "\n")
		if current == nil {
			doc.Preamble = text
		} else {
			current.Body = text
		}
		body = body[:0]
	}

	i := 0
	for i < len(lines) {
		m := headingPattern.FindStringSubmatch(lines[i])
		if m == nil {
			body = append(body, lines[i])
			i++
			continue
		}

		flush()

		level := len(m[1])
		heading, tags := splitTags(m[2])

		// Pop the stack to this node's parent level.
		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}

		current = &Node{Level: level, Heading: heading, Tags: tags}
		if len(stack) > 0 {
			current.parent = stack[len(stack)-1]
		}
		stack = append(stack, current)
		doc.Nodes = append(doc.Nodes, current)
		i++

		// A property drawer directly under the heading belongs to the
		// node's metadata, not its body.
		i = parseDrawer(lines, i, current)
	}

	flush()
	return doc
}

// splitTags separates a heading's trailing tag group from its text.
func splitTags(heading string) (string, []string) {
	m := tagGroupPattern.FindStringSubmatch(heading)
	if m == nil {
		return strings.TrimRight(heading, " \t"), nil
	}
	raw := strings.Trim(m[2], ":")
	return m[1], strings.Split(raw, ":")
}

// parseDrawer consumes a :PROPERTIES: drawer starting at lines[i], if one
// is present, storing its entries on n. It returns the index of the first
// line after the drawer. A malformed or unterminated drawer is left alone
// and flows into the body as plain text.
func parseDrawer(lines []string, i int, n *Node) int {
	if i >= len(lines) || strings.TrimSpace(lines[i]) != ":PROPERTIES:" {
		return i
	}

	type entry struct{ key, value string }
	var entries []entry

	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == ":END:" {
			for _, e := range entries {
				n.SetProperty(e.key, e.value)
			}
			return j + 1
		}
		m := propertyPattern.FindStringSubmatch(lines[j])
		if m == nil {
			return i
		}
		entries = append(entries, entry{key: m[1], value: m[2]})
	}
	return i
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}
