package tree

import (
	"io"

	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/pullparser"
)

// LoadFromReader drains p to EndFbx, materializing every event into a
// Tree, and returns the tree together with the parsed footer. It uses
// pullparser.DirectLoader for every attribute, so arrays are always
// fully materialized in memory; callers needing streaming access to
// large arrays should drive the pullparser directly instead.
func LoadFromReader(p *pullparser.Parser) (*Tree, low.Footer, error) {
	t := New()
	stack := []NodeId{RootID}
	loader := pullparser.NewDirectLoader()

	for {
		ev, err := p.NextEvent()
		if err != nil {
			return nil, low.Footer{}, err
		}
		switch ev.Kind {
		case pullparser.EventStartNode:
			parent := stack[len(stack)-1]
			id := t.AppendNew(parent, ev.Name)
			if err := appendAttributes(t, id, ev.Attributes, loader); err != nil {
				return nil, low.Footer{}, err
			}
			stack = append(stack, id)
		case pullparser.EventEndNode:
			stack = stack[:len(stack)-1]
		case pullparser.EventEndFbx:
			return t, ev.Footer, ev.FooterErr
		}
	}
}

// Load is a convenience wrapper around pullparser.NewFromReader and
// LoadFromReader for callers that don't need to drive the parser
// themselves.
func Load(r io.Reader) (*Tree, low.Footer, error) {
	p, err := pullparser.NewFromReader(r)
	if err != nil {
		return nil, low.Footer{}, err
	}
	return LoadFromReader(p)
}

func appendAttributes(t *Tree, id NodeId, attrs *pullparser.Attributes, loader pullparser.DirectLoader) error {
	for {
		v, ok, err := pullparser.LoadNext(attrs, loader)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		t.AppendAttribute(id, v)
	}
}
