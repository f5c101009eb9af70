package ferr

import "fmt"

// DomError reports a structural problem in the semantic object graph
// built on top of a well-formed node tree (package dom/v7400), as
// opposed to a problem with the tree itself.
type DomError struct {
	kind     domKind
	objectID int64
	nodeName string
}

type domKind int

const (
	// DomMissingObjectsNode: the document has no top-level Objects node.
	domMissingObjectsNode domKind = iota
	// DomMissingDocumentsNode: the document has no top-level Documents
	// node.
	domMissingDocumentsNode
	// DomDuplicateObjectId: two Objects children declared the same
	// object id.
	domDuplicateObjectId
	// DomDuplicateConnection: two Connections/C entries declared the
	// identical (source, destination, label) triple.
	domDuplicateConnection
)

func NewMissingObjectsNode() error   { return &DomError{kind: domMissingObjectsNode} }
func NewMissingDocumentsNode() error { return &DomError{kind: domMissingDocumentsNode} }

func NewDuplicateObjectId(id int64) error {
	return &DomError{kind: domDuplicateObjectId, objectID: id}
}

func NewDuplicateConnection(sourceID, destID int64) error {
	return &DomError{kind: domDuplicateConnection, objectID: sourceID, nodeName: fmt.Sprintf("%d", destID)}
}

func (e *DomError) Error() string {
	switch e.kind {
	case domMissingObjectsNode:
		return "document has no top-level Objects node"
	case domMissingDocumentsNode:
		return "document has no top-level Documents node"
	case domDuplicateObjectId:
		return fmt.Sprintf("duplicate object id: %d", e.objectID)
	case domDuplicateConnection:
		return fmt.Sprintf("duplicate connection: source=%d dest=%s", e.objectID, e.nodeName)
	default:
		return "dom error"
	}
}

func (e *DomError) Is(target error) bool {
	other, ok := target.(*DomError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}
