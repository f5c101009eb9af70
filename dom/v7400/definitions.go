package v7400

import "github.com/scigolib/fbx/tree"

// definitionKey identifies one property template: the object-node-name
// (e.g. "Model", "Material") a /Definitions/ObjectType entry names, and
// the PropertyTemplate's native type string (e.g. "FbxNode").
type definitionKey struct {
	objectNodeName string
	nativeType     string
}

// SkippedDefinitionReason explains why a /Definitions entry could not
// be indexed.
type SkippedDefinitionReason int

const (
	// SkippedMissingNativeType: a PropertyTemplate child had no Type
	// attribute to key on.
	SkippedMissingNativeType SkippedDefinitionReason = iota
	// SkippedMissingProperties70: a PropertyTemplate child had no
	// Properties70 subnode to point at.
	SkippedMissingProperties70
	// SkippedMalformedObjectType: an ObjectType node had no leading
	// name attribute.
	SkippedMalformedObjectType
)

// SkippedDefinition records one non-fatal anomaly found while indexing
// /Definitions: the entry is skipped, Load continues, and the anomaly
// is surfaced here instead of aborting the whole document.
type SkippedDefinition struct {
	NodeID tree.NodeId
	Reason SkippedDefinitionReason
}

// DefinitionsCache maps (object-node-name, native-type) to the
// Properties70 node holding that type's default property values.
type DefinitionsCache struct {
	templates map[definitionKey]tree.NodeId
	skipped   []SkippedDefinition
}

func newDefinitionsCache() *DefinitionsCache {
	return &DefinitionsCache{templates: make(map[definitionKey]tree.NodeId)}
}

// Properties70For returns the Properties70 node-id registered for
// (objectNodeName, nativeType), or false if no template matched.
func (c *DefinitionsCache) Properties70For(objectNodeName, nativeType string) (tree.NodeId, bool) {
	id, ok := c.templates[definitionKey{objectNodeName, nativeType}]
	return id, ok
}

// Skipped returns every non-fatal anomaly encountered while indexing
// /Definitions, in the order they were found.
func (c *DefinitionsCache) Skipped() []SkippedDefinition { return c.skipped }

func (c *DefinitionsCache) register(objectNodeName, nativeType string, properties70 tree.NodeId) {
	c.templates[definitionKey{objectNodeName, nativeType}] = properties70
}

func (c *DefinitionsCache) skip(nodeID tree.NodeId, reason SkippedDefinitionReason) {
	c.skipped = append(c.skipped, SkippedDefinition{NodeID: nodeID, Reason: reason})
}
