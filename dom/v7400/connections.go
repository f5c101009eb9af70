package v7400

import "sort"

// ConnectedNodeType distinguishes the two things a connection endpoint
// can refer to.
type ConnectedNodeType int

const (
	// ConnObject: the endpoint is an object (by ObjectId).
	ConnObject ConnectedNodeType = iota
	// ConnProperty: the endpoint is a named property on an object.
	ConnProperty
)

// Connection is one /Connections/C entry: an edge from Source to
// Destination, each tagged with whether it names an object or one of
// that object's properties, and an optional label (used e.g. for
// "OP"-typed property connections like diffuse texture slots).
type Connection struct {
	Index           ConnectionIndex
	Source          ObjectId
	Destination     ObjectId
	SourceKind      ConnectedNodeType
	DestinationKind ConnectedNodeType
	Label           *LabelSym
}

// connKindsFromTypeString maps a /Connections/C entry's 2-character type string
// to (destination kind, source kind): "OO" object-object, "OP"
// object-property (destination is the object, source is the named
// property), "PO" property-object, "PP" property-property.
func connKindsFromTypeString(s string) (destKind, srcKind ConnectedNodeType, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	kindOf := func(b byte) (ConnectedNodeType, bool) {
		switch b {
		case 'O':
			return ConnObject, true
		case 'P':
			return ConnProperty, true
		default:
			return 0, false
		}
	}
	d, ok1 := kindOf(s[0])
	src, ok2 := kindOf(s[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return d, src, true
}

// ConnectionsCache is the flattened, queryable connection graph: a flat
// list of connections in wire order, plus two index vectors sorted by
// source id and by destination id respectively, to answer outgoing and
// incoming queries with a binary search.
type ConnectionsCache struct {
	labels *symTable

	connections []Connection

	// sortedBySrc/sortedByDest hold indices into connections, sorted by
	// Source/Destination respectively. Within equal keys, wire order
	// (connection Index) is preserved, matching a stable sort.
	sortedBySrc  []int
	sortedByDest []int
}

func newConnectionsCache() *ConnectionsCache {
	return &ConnectionsCache{labels: newSymTable()}
}

// LabelName returns the interned string for a LabelSym.
func (c *ConnectionsCache) LabelName(s LabelSym) string { return c.labels.String(int(s)) }

// All returns every connection in wire order. The slice is owned by the
// cache and must not be mutated.
func (c *ConnectionsCache) All() []Connection { return c.connections }

// buildSortedIndices must run once after every connection has been
// appended; it is the step that fixes the "incoming" lookup to use the
// destination-sorted index rather than (incorrectly) reusing the
// source-sorted one.
func (c *ConnectionsCache) buildSortedIndices() {
	n := len(c.connections)
	c.sortedBySrc = make([]int, n)
	c.sortedByDest = make([]int, n)
	for i := range c.connections {
		c.sortedBySrc[i] = i
		c.sortedByDest[i] = i
	}
	sort.SliceStable(c.sortedBySrc, func(i, j int) bool {
		return c.connections[c.sortedBySrc[i]].Source < c.connections[c.sortedBySrc[j]].Source
	})
	sort.SliceStable(c.sortedByDest, func(i, j int) bool {
		return c.connections[c.sortedByDest[i]].Destination < c.connections[c.sortedByDest[j]].Destination
	})
}

// OutgoingConnections returns every connection whose Source is id, in
// the order they were declared on the wire.
func (c *ConnectionsCache) OutgoingConnections(id ObjectId) []Connection {
	return c.connectionsByIndex(c.sortedBySrc, id, func(conn Connection) ObjectId { return conn.Source })
}

// IncomingConnections returns every connection whose Destination is id,
// in the order they were declared on the wire. This must search
// sortedByDest, not sortedBySrc: the two indices disagree whenever an
// object is a destination in more connections than it is a source in
// (or vice versa), and using the wrong index silently drops or
// misattributes connections.
func (c *ConnectionsCache) IncomingConnections(id ObjectId) []Connection {
	return c.connectionsByIndex(c.sortedByDest, id, func(conn Connection) ObjectId { return conn.Destination })
}

func (c *ConnectionsCache) connectionsByIndex(sorted []int, id ObjectId, key func(Connection) ObjectId) []Connection {
	lo := sort.Search(len(sorted), func(i int) bool {
		return key(c.connections[sorted[i]]) >= id
	})
	var out []Connection
	for i := lo; i < len(sorted) && key(c.connections[sorted[i]]) == id; i++ {
		out = append(out, c.connections[sorted[i]])
	}
	return out
}
