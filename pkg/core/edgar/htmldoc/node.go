// Package htmldoc implements the HTML Document Parser (spec.md §4.2)
// and the Section Detector & Chunker (spec.md §4.10): a three-phase
// (preprocess/parse/postprocess) pipeline over a filing's primary
// HTML document, producing a semantic Node tree plus Markdown and
// plain-text renderers.
package htmldoc

// NodeKind tags a Node's role in the semantic document tree.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindSection
	KindHeading
	KindParagraph
	KindText
	KindTable
	KindList
	KindListItem
	KindXBRLFact // an ix:nonFraction/ix:nonNumeric tagged span
)

// NodeID is an arena index into a Document's node slice (spec.md §9
// redesign note: the HTML tree uses integer indices rather than
// pointers, avoiding the cyclic parent/child pointer structures the
// teacher's own DOM-walking code built up ad hoc, and making a parsed
// document trivially shareable read-only once built).
type NodeID int32

// NoNodeID is the sentinel "no parent"/"not found" id.
const NoNodeID NodeID = -1

// Node is one element of the semantic document tree.
type Node struct {
	Kind     NodeKind
	Text     string // KindText/KindHeading/KindParagraph inline text
	Level    int    // heading level (1-6) for KindHeading
	Table    *TableMatrix
	XBRL     *XBRLTag

	Style    StyleID
	Parent   NodeID
	Children []NodeID
}

// XBRLTag carries the inline-XBRL metadata recovered from an
// ix:nonFraction/ix:nonNumeric span during parsing, so a fact
// extracted from HTML can be cross-referenced against the instance
// document's Fact Store by (concept, contextRef).
type XBRLTag struct {
	Concept    string
	ContextRef string
	UnitRef    string
	Sign       string // "-" if the ix:sign attribute negates the displayed value
	Scale      int    // ix:scale attribute; 0 if absent
	Format     string
}

// Document is the arena-backed semantic tree produced by Parse.
type Document struct {
	Nodes []Node
	Root  NodeID
	Styles *StylePool
}

// NewDocument creates an empty document with just a root node.
func NewDocument() *Document {
	d := &Document{Styles: NewStylePool()}
	d.Root = d.addNode(Node{Kind: KindDocument, Parent: NoNodeID})
	return d
}

func (d *Document) addNode(n Node) NodeID {
	id := NodeID(len(d.Nodes))
	d.Nodes = append(d.Nodes, n)
	return id
}

// AddChild appends a new node as a child of parent and returns its id.
func (d *Document) AddChild(parent NodeID, n Node) NodeID {
	n.Parent = parent
	id := d.addNode(n)
	p := d.Node(parent)
	p.Children = append(p.Children, id)
	return id
}

// Node returns a pointer to the node at id, or nil if out of range.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.Nodes) {
		return nil
	}
	return &d.Nodes[id]
}

// Walk performs a depth-first, pre-order traversal starting at id.
// Returning false from visit skips that node's children.
func (d *Document) Walk(id NodeID, visit func(id NodeID, n *Node) bool) {
	n := d.Node(id)
	if n == nil {
		return
	}
	if !visit(id, n) {
		return
	}
	for _, c := range n.Children {
		d.Walk(c, visit)
	}
}

// TextContent concatenates the text of every KindText/KindHeading/
// KindParagraph descendant of id, depth-first, space-separated.
func (d *Document) TextContent(id NodeID) string {
	var out []byte
	d.Walk(id, func(_ NodeID, n *Node) bool {
		switch n.Kind {
		case KindText, KindHeading, KindParagraph:
			if n.Text != "" {
				if len(out) > 0 {
					out = append(out, ' ')
				}
				out = append(out, n.Text...)
			}
		}
		return true
	})
	return string(out)
}
