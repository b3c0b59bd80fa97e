// Package corpus is the read-only query API over a tagged Greek New
// Testament: nodes, their object types and ranks, section addressing,
// feature values and text formats.
//
// Slots are words, numbered 1..W in text order. Every other node (book,
// chapter, verse, lexeme) covers a set of slots. A Corpus is built once by
// a Builder and never changes afterwards, so it can be shared between
// goroutines without locking.
package corpus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node identifies one object in the corpus. Zero is never a valid node.
type Node int

// Section is the (book, chapter, verse) address of a node. Chapter and Verse
// are zero for coarser sections.
type Section struct {
	Book    string
	Chapter int
	Verse   int
}

// Label renders the section with the given separators, e.g. "Matthew 1:1".
func (s Section) Label(bookSep, verseSep string) string {
	var sb strings.Builder
	sb.WriteString(s.Book)
	if s.Chapter > 0 {
		sb.WriteString(bookSep)
		sb.WriteString(strconv.Itoa(s.Chapter))
		if s.Verse > 0 {
			sb.WriteString(verseSep)
			sb.WriteString(strconv.Itoa(s.Verse))
		}
	}
	return sb.String()
}

// String returns the label with the default separators.
func (s Section) String() string {
	return s.Label(" ", ":")
}

// API is the query surface the renderers consume.
type API interface {
	// SlotType is the type of the atomic units (always Word here).
	SlotType() OType
	// OType returns the type of n, or Unknown for nodes outside the corpus.
	OType(n Node) OType
	// Rank orders object types by granularity.
	Rank(t OType) int
	// SlotRange returns the first and last slot covered by n.
	SlotRange(n Node) (first, last Node)
	// Descendants lists the nodes of type t embedded in n, in slot order.
	Descendants(n Node, t OType) []Node
	// Feature returns the value of a feature for n, or "" when absent.
	Feature(name string, n Node) string
	// SectionFromNode resolves the section that contains n.
	SectionFromNode(n Node) Section
	// NodeFromSection finds the section node for s.
	NodeFromSection(s Section) (Node, bool)
	// Text materializes the text of nodes in a named format.
	Text(nodes []Node, format string) string
	// Formats lists the valid text format names.
	Formats() []string
	// DefaultFormat is the format used when none is requested.
	DefaultFormat() string
}

type nodeInfo struct {
	otype   OType
	first   Node
	last    Node
	slots   []Node // set only for objects with gaps (lexemes)
	section Section
}

// Corpus is an immutable in-memory corpus.
type Corpus struct {
	Name    string
	Version string

	nodes     []nodeInfo // indexed by Node; entry 0 is unused
	slotCount int
	byType    map[OType][]Node // each list sorted by first slot
	features  map[string][]string
	sections  map[Section]Node
}

var _ API = (*Corpus)(nil)

func (c *Corpus) valid(n Node) bool {
	return n > 0 && int(n) < len(c.nodes)
}

// MaxNode returns the highest node number.
func (c *Corpus) MaxNode() Node {
	return Node(len(c.nodes) - 1)
}

// SlotCount returns the number of words.
func (c *Corpus) SlotCount() int {
	return c.slotCount
}

// SlotType implements API.
func (c *Corpus) SlotType() OType {
	return Word
}

// OType implements API.
func (c *Corpus) OType(n Node) OType {
	if !c.valid(n) {
		return Unknown
	}
	return c.nodes[n].otype
}

// Rank implements API.
func (c *Corpus) Rank(t OType) int {
	return t.Rank()
}

// SlotRange implements API. Invalid nodes yield (0, 0).
func (c *Corpus) SlotRange(n Node) (Node, Node) {
	if !c.valid(n) {
		return 0, 0
	}
	info := c.nodes[n]
	return info.first, info.last
}

// Descendants implements API. Slots have no descendants; a node never
// contains objects of its own rank or above.
func (c *Corpus) Descendants(n Node, t OType) []Node {
	if !c.valid(n) {
		return nil
	}
	info := c.nodes[n]
	if info.otype == Word || t.Rank() >= info.otype.Rank() {
		return nil
	}

	if t == Word {
		if info.slots != nil {
			return append([]Node(nil), info.slots...)
		}
		out := make([]Node, 0, info.last-info.first+1)
		for s := info.first; s <= info.last; s++ {
			out = append(out, s)
		}
		return out
	}

	candidates := c.byType[t]
	start := sort.Search(len(candidates), func(i int) bool {
		return c.nodes[candidates[i]].first >= info.first
	})
	var out []Node
	for _, m := range candidates[start:] {
		mi := c.nodes[m]
		if mi.first > info.last {
			break
		}
		if mi.last <= info.last {
			out = append(out, m)
		}
	}
	return out
}

// NodesOfType lists all nodes of type t in slot order.
func (c *Corpus) NodesOfType(t OType) []Node {
	return append([]Node(nil), c.byType[t]...)
}

// Feature implements API.
func (c *Corpus) Feature(name string, n Node) string {
	values, ok := c.features[name]
	if !ok || !c.valid(n) {
		return ""
	}
	return values[n]
}

// FeatureNames lists the loaded features in sorted order.
func (c *Corpus) FeatureNames() []string {
	names := make([]string, 0, len(c.features))
	for name := range c.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SectionFromNode implements API. Unknown nodes resolve to the zero Section.
func (c *Corpus) SectionFromNode(n Node) Section {
	if !c.valid(n) {
		return Section{}
	}
	return c.nodes[n].section
}

// NodeFromSection implements API.
func (c *Corpus) NodeFromSection(s Section) (Node, bool) {
	n, ok := c.sections[s]
	return n, ok
}

// Formats implements API.
func (c *Corpus) Formats() []string {
	return append([]string(nil), formatOrder...)
}

// DefaultFormat implements API.
func (c *Corpus) DefaultFormat() string {
	return FormatOrigFull
}

// Text implements API. Non-slot nodes contribute the text of their words.
// An unknown format falls back to the default format.
func (c *Corpus) Text(nodes []Node, format string) string {
	feature, ok := formatFeatures[format]
	if !ok {
		feature = formatFeatures[c.DefaultFormat()]
	}
	var sb strings.Builder
	for _, n := range nodes {
		if !c.valid(n) {
			continue
		}
		if c.nodes[n].otype != Word {
			for _, s := range c.Descendants(n, Word) {
				c.writeSlot(&sb, s, feature)
			}
			continue
		}
		c.writeSlot(&sb, n, feature)
	}
	return sb.String()
}

func (c *Corpus) writeSlot(sb *strings.Builder, s Node, feature string) {
	sb.WriteString(c.Feature(feature, s))
	sb.WriteString(c.Feature("after", s))
}

// String summarizes the corpus size.
func (c *Corpus) String() string {
	return fmt.Sprintf("%s %s: %d words, %d verses, %d chapters, %d books, %d lexemes",
		c.Name, c.Version, c.slotCount, len(c.byType[Verse]), len(c.byType[Chapter]),
		len(c.byType[Book]), len(c.byType[Lexeme]))
}
