// Package pullparser implements a streaming, pull-style decoder over the
// FBX binary node tree: callers drive NextEvent in a loop and receive
// StartNode/EndNode/EndFbx events without the parser ever materializing
// more than one node's attributes at a time.
package pullparser

import (
	"fmt"
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/source"
)

// Health is the parser's lifecycle state.
type Health int

const (
	// Running accepts further NextEvent calls.
	Running Health = iota
	// Finished means EndFbx was already returned; no further events.
	Finished
	// Aborted means a structural error occurred; no further events.
	Aborted
)

func (h Health) String() string {
	switch h {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// EventKind distinguishes the three event shapes NextEvent can return.
type EventKind int

const (
	EventStartNode EventKind = iota
	EventEndNode
	EventEndFbx
)

// Event is one step of the node-tree traversal.
type Event struct {
	Kind EventKind

	// Name and Attributes are set for EventStartNode.
	Name       string
	Attributes *Attributes

	// Footer and FooterErr are set for EventEndFbx. FooterErr reports a
	// broken footer without aborting the parser: the node tree was read
	// completely and correctly regardless of the trailer's validity.
	Footer    low.Footer
	FooterErr error
}

type startedNode struct {
	name               string
	startOffset        uint64
	endOffset          uint64
	attributesEndPos   uint64
	knownChildrenCount int
	attributes         *Attributes
}

// Parser drives a single top-to-bottom pass over one FBX binary document.
type Parser struct {
	source                  source.Source
	fbxVersion              low.FbxVersion
	health                  Health
	abortedPos              ferr.SyntacticPosition
	startedNodes            []*startedNode
	knownToplevelNodesCount int
	lastEventWasStart       bool
	warningHandler          ferr.WarningHandler
}

const implName = "fbx/pullparser (v7400)"

// NewFromReader wraps r as a forward-only source and reads the FBX
// header, failing if the embedded version is unsupported.
func NewFromReader(r io.Reader) (*Parser, error) {
	return newParser(source.NewPlainSource(r))
}

// NewFromSeekableReader wraps rs, enabling true backward-free seeks
// during array/binary/string skipping instead of discard-reads.
func NewFromSeekableReader(rs io.ReadSeeker) (*Parser, error) {
	return newParser(source.NewSeekableSource(rs))
}

func newParser(src source.Source) (*Parser, error) {
	header, err := low.LoadFbxHeader(src)
	if err != nil {
		return nil, ferr.New(err)
	}
	if !header.Version.Supported() {
		return nil, ferr.NewUnsupportedFbxVersion(implName, header.Version.Raw())
	}
	return &Parser{source: src, fbxVersion: header.Version, health: Running}, nil
}

// FbxVersion returns the version declared in the file header.
func (p *Parser) FbxVersion() low.FbxVersion { return p.fbxVersion }

// Health returns the parser's current lifecycle state.
func (p *Parser) Health() Health { return p.health }

// SetWarningHandler installs the callback used to report non-fatal
// anomalies. Returning a non-nil error from it promotes the warning to
// a hard parse error. A nil handler (the default) ignores all warnings.
func (p *Parser) SetWarningHandler(h ferr.WarningHandler) { p.warningHandler = h }

// CurrentNodeName returns the name of the innermost node currently
// open, or "" at the document root.
func (p *Parser) CurrentNodeName() string {
	if len(p.startedNodes) == 0 {
		return ""
	}
	return p.startedNodes[len(p.startedNodes)-1].name
}

// CurrentDepth returns how many nodes are currently open.
func (p *Parser) CurrentDepth() int { return len(p.startedNodes) }

func (p *Parser) checkRunning() error {
	switch p.health {
	case Aborted:
		return ferr.New(ferr.ErrAlreadyAborted).(*ferr.Error).WithPosition(p.abortedPos)
	case Finished:
		return ferr.ErrAlreadyFinished
	default:
		return nil
	}
}

func (p *Parser) abort(err error) {
	p.health = Aborted
	p.abortedPos = p.Position()
}

// Position returns the current syntactic position, derived from the
// stack of currently-open nodes and the source's absolute byte offset.
func (p *Parser) Position() ferr.SyntacticPosition {
	pos := ferr.SyntacticPosition{BytePos: p.source.Position()}
	if len(p.startedNodes) == 0 {
		pos.ComponentBytePos = pos.BytePos
		return pos
	}

	indices := make([]int, len(p.startedNodes))
	indices[0] = p.knownToplevelNodesCount - 1
	for i := 0; i < len(p.startedNodes)-1; i++ {
		indices[i+1] = p.startedNodes[i].knownChildrenCount - 1
	}

	path := make([]ferr.NodePathEntry, len(p.startedNodes))
	for i, n := range p.startedNodes {
		path[i] = ferr.NodePathEntry{SiblingIndex: indices[i], Name: n.name}
	}
	pos.NodePath = path
	pos.ComponentBytePos = p.startedNodes[len(p.startedNodes)-1].startOffset
	return pos
}

func (p *Parser) warn(w ferr.Warning) error {
	if p.warningHandler == nil {
		return nil
	}
	pos := p.Position()
	if err := p.warningHandler(w, pos); err != nil {
		return ferr.New(err).(*ferr.Error).WithPosition(pos)
	}
	return nil
}

func (p *Parser) currentNode() *startedNode {
	if len(p.startedNodes) == 0 {
		return nil
	}
	return p.startedNodes[len(p.startedNodes)-1]
}

// NextEvent advances the parser by one step. Call it in a loop until it
// returns an EventEndFbx event or a non-nil error.
func (p *Parser) NextEvent() (Event, error) {
	if err := p.checkRunning(); err != nil {
		return Event{}, err
	}

	ev, err := p.nextEventImpl()
	if err != nil {
		p.abort(err)
		return Event{}, err
	}
	return ev, nil
}

func (p *Parser) nextEventImpl() (Event, error) {
	if cur := p.currentNode(); cur != nil && cur.attributes != nil {
		if err := cur.attributes.skipRest(); err != nil {
			return Event{}, err
		}
	}

	if cur := p.currentNode(); cur != nil && p.source.Position() == cur.endOffset {
		if cur.knownChildrenCount > 0 || cur.attributes.TotalCount() == 0 {
			if werr := p.warn(ferr.Warning{Kind: ferr.WarnMissingNodeEndMarker}); werr != nil {
				return Event{}, werr
			}
		}
		return p.popNode(), nil
	}

	startOffset := p.source.Position()
	header, err := low.ReadNodeHeader(p.source, p.fbxVersion)
	if err != nil {
		return Event{}, ferr.New(err)
	}

	if header.IsEnd() {
		if p.currentNode() == nil {
			return p.finishTopLevel()
		}
		cur := p.currentNode()
		if cur.knownChildrenCount == 0 && cur.attributes.TotalCount() > 0 {
			if werr := p.warn(ferr.Warning{Kind: ferr.WarnExtraNodeEndMarker}); werr != nil {
				return Event{}, werr
			}
		}
		if p.source.Position() != cur.endOffset {
			actual := p.source.Position()
			return Event{}, ferr.New(ferr.NewNodeLengthMismatch(cur.endOffset, &actual))
		}
		return p.popNode(), nil
	}

	name, err := low.ReadNodeName(p.source, header.BytelenName)
	if err != nil {
		return Event{}, err
	}

	if header.BytelenName == 0 {
		if werr := p.warn(ferr.Warning{Kind: ferr.WarnEmptyNodeName}); werr != nil {
			return Event{}, werr
		}
	}

	if parent := p.currentNode(); parent != nil {
		parent.knownChildrenCount++
	} else {
		p.knownToplevelNodesCount++
	}

	attrs := newAttributes(p, header.NumAttributes)
	attributesStart := p.source.Position()
	attrs.nextAttrStartOffset = attributesStart

	node := &startedNode{
		name:             name,
		startOffset:      startOffset,
		endOffset:        header.EndOffset,
		attributesEndPos: attributesStart + header.BytelenAttributes,
		attributes:       attrs,
	}
	p.startedNodes = append(p.startedNodes, node)

	return Event{Kind: EventStartNode, Name: name, Attributes: attrs}, nil
}

func (p *Parser) popNode() Event {
	p.startedNodes = p.startedNodes[:len(p.startedNodes)-1]
	return Event{Kind: EventEndNode}
}

func (p *Parser) finishTopLevel() (Event, error) {
	footerStart := p.source.Position()
	footer, warnings, err := low.ReadFooter(p.source, p.fbxVersion)
	p.health = Finished
	if err == nil {
		if w := low.CheckPaddingLen(footerStart+16, int(footer.PaddingLen)); w != nil {
			warnings = append(warnings, *w)
		}
	}
	for _, w := range warnings {
		var kind ferr.WarningKind
		switch w.Kind {
		case low.FooterUnexpectedFieldValue:
			kind = ferr.WarnUnexpectedFooterFieldValue
		case low.FooterInvalidPaddingLength:
			kind = ferr.WarnInvalidFooterPaddingLength
		}
		if werr := p.warn(ferr.Warning{Kind: kind, Expected: w.Expected, Got: w.Got}); werr != nil {
			return Event{}, werr
		}
	}
	return Event{Kind: EventEndFbx, Footer: footer, FooterErr: ferr.New(err)}, nil
}

// SkipCurrentNode discards the remainder of the innermost open node —
// its unread attributes and all descendants — without emitting further
// StartNode/EndNode events for them. The following NextEvent call
// returns that node's EndNode event.
func (p *Parser) SkipCurrentNode() error {
	cur := p.currentNode()
	if cur == nil {
		return fmt.Errorf("pullparser: SkipCurrentNode called at document root")
	}
	if err := p.checkRunning(); err != nil {
		return err
	}
	if err := p.source.SkipToAbsolute(cur.endOffset); err != nil {
		p.abort(err)
		return err
	}
	if cur.attributes != nil {
		cur.attributes.restCount = 0
	}
	return nil
}
