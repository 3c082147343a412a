// Package orgdoc models org-mode outline documents: an optional preamble
// followed by a tree of headed nodes carrying tags, a property drawer, and
// a plain-text body. It parses documents from text and serializes them
// back, preserving enough raw structure for round-trip rewrites.
package orgdoc

import (
	"sort"
	"strings"
)

// PropertyID is the conventional drawer key under which a node's stable
// identifier is stored.
const PropertyID = "ID"

// Node is one outline heading with its attached content.
type Node struct {
	Level   int      // number of leading stars
	Heading string   // heading text without stars and tags
	Tags    []string // tags declared on this heading line
	Body    string   // text below the heading, property drawer excluded

	parent    *Node
	props     map[string]string
	propOrder []string
}

// Property returns the value stored under key, or "" when absent.
func (n *Node) Property(key string) string {
	return n.props[key]
}

// SetProperty stores value under key. New keys keep insertion order, so a
// freshly assigned identifier serializes at the end of the drawer.
func (n *Node) SetProperty(key, value string) {
	if n.props == nil {
		n.props = make(map[string]string)
	}
	if _, ok := n.props[key]; !ok {
		n.propOrder = append(n.propOrder, key)
	}
	n.props[key] = value
}

// PropertyKeys returns the drawer keys in serialization order.
func (n *Node) PropertyKeys() []string {
	return n.propOrder
}

// EffectiveTags returns the node's tags including those inherited from
// every ancestor, sorted and deduplicated.
func (n *Node) EffectiveTags() []string {
	set := make(map[string]struct{})
	for node := n; node != nil; node = node.parent {
		for _, tag := range node.Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// HasTag reports whether tag is among the node's effective tags.
func (n *Node) HasTag(tag string) bool {
	for node := n; node != nil; node = node.parent {
		for _, t := range node.Tags {
			if t == tag {
				return true
			}
		}
	}
	return false
}

// Document is a parsed org file: preamble text before the first heading,
// then every node in document order.
type Document struct {
	Preamble string
	Nodes    []*Node
}

// String serializes the document back to org text. Headings are written as
// stars, heading text, and (when the node declares tags of its own) the
// sorted effective tag set; the property drawer and raw body follow.
func (d *Document) String() string {
	var b strings.Builder

	b.WriteString(d.Preamble)
	b.WriteString("\n")

	for _, n := range d.Nodes {
		b.WriteString(strings.Repeat("*", n.Level))
		b.WriteString(" ")
		b.WriteString(n.Heading)
		if len(n.Tags) > 0 {
			b.WriteString(" ")
			for _, tag := range n.EffectiveTags() {
				b.WriteString(":")
				b.WriteString(tag)
			}
			b.WriteString(":")
		}
		b.WriteString("\n")

		if len(n.propOrder) > 0 {
			b.WriteString(":PROPERTIES:\n")
			for _, key := range n.propOrder {
				b.WriteString(":")
				b.WriteString(key)
				b.WriteString(": ")
				b.WriteString(n.props[key])
				b.WriteString("\n")
			}
			b.WriteString(":END:\n")
		}

		b.WriteString(n.Body)
		b.WriteString("\n")
	}

	return b.String()
}
