package v7400

// TypedKind is the exhaustive (class, subclass) dispatch table for
// objects this package assigns specific navigation behavior to. An
// object whose (class, subclass) pair is not listed here still exists
// in the Document and is reachable via Document.Object; it simply has
// no typed handle.
type TypedKind int

const (
	KindDeformerBlendShape TypedKind = iota
	KindDeformerSkin
	KindSubDeformerBlendShapeChannel
	KindSubDeformerCluster
	KindGeometryMesh
	KindGeometryShape
	KindMaterial
	KindModelCamera
	KindModelLight
	KindModelLimbNode
	KindModelMesh
	KindModelNull
	KindNodeAttributeCamera
	KindNodeAttributeLight
	KindNodeAttributeLimbNode
	KindNodeAttributeNull
	KindTexture
	KindVideoClip
)

func (k TypedKind) String() string {
	switch k {
	case KindDeformerBlendShape:
		return "Deformer/BlendShape"
	case KindDeformerSkin:
		return "Deformer/Skin"
	case KindSubDeformerBlendShapeChannel:
		return "SubDeformer/BlendShapeChannel"
	case KindSubDeformerCluster:
		return "SubDeformer/Cluster"
	case KindGeometryMesh:
		return "Geometry/Mesh"
	case KindGeometryShape:
		return "Geometry/Shape"
	case KindMaterial:
		return "Material"
	case KindModelCamera:
		return "Model/Camera"
	case KindModelLight:
		return "Model/Light"
	case KindModelLimbNode:
		return "Model/LimbNode"
	case KindModelMesh:
		return "Model/Mesh"
	case KindModelNull:
		return "Model/Null"
	case KindNodeAttributeCamera:
		return "NodeAttribute/Camera"
	case KindNodeAttributeLight:
		return "NodeAttribute/Light"
	case KindNodeAttributeLimbNode:
		return "NodeAttribute/LimbNode"
	case KindNodeAttributeNull:
		return "NodeAttribute/Null"
	case KindTexture:
		return "Texture"
	case KindVideoClip:
		return "Video/Clip"
	default:
		return "Unknown"
	}
}

// typedDispatch is the exhaustive class/subclass -> TypedKind table.
// Every entry keys on (class, subclass). Classes with a single recognized
// variant (Material, Texture) are listed under the empty subclass, so
// they match only objects whose subclass is empty.
var typedDispatch = map[string]map[string]TypedKind{
	"Deformer": {
		"BlendShape": KindDeformerBlendShape,
		"Skin":       KindDeformerSkin,
	},
	"SubDeformer": {
		"BlendShapeChannel": KindSubDeformerBlendShapeChannel,
		"Cluster":           KindSubDeformerCluster,
	},
	"Geometry": {
		"Mesh":  KindGeometryMesh,
		"Shape": KindGeometryShape,
	},
	"Material": {
		"": KindMaterial,
	},
	"Model": {
		"Camera":   KindModelCamera,
		"Light":    KindModelLight,
		"LimbNode": KindModelLimbNode,
		"Mesh":     KindModelMesh,
		"Null":     KindModelNull,
	},
	"NodeAttribute": {
		"Camera":   KindNodeAttributeCamera,
		"Light":    KindNodeAttributeLight,
		"LimbNode": KindNodeAttributeLimbNode,
		"Null":     KindNodeAttributeNull,
	},
	"Texture": {
		"": KindTexture,
	},
	"Video": {
		"Clip": KindVideoClip,
	},
}

// Typed resolves h's (class, subclass) pair against the exhaustive
// dispatch table, returning false if the pair isn't one of the
// recognized variants.
func (h ObjectHandle) Typed() (TypedKind, bool) {
	bySubclass, ok := typedDispatch[h.Class()]
	if !ok {
		return 0, false
	}
	kind, ok := bySubclass[h.Subclass()]
	return kind, ok
}
