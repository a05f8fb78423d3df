// gltf_types.go contains the subset of the glTF 2.0 JSON schema the loader reads: the node hierarchy, skins and
// mesh morph targets. Geometry, materials and animations are left to the renderer of the host.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

// gltfDocument represents the root of a glTF JSON document.
type gltfDocument struct {
	Asset  gltfAsset   `json:"asset"`
	Scene  *int        `json:"scene,omitempty"`
	Scenes []gltfScene `json:"scenes,omitempty"`
	Nodes  []gltfNode  `json:"nodes,omitempty"`
	Meshes []gltfMesh  `json:"meshes,omitempty"`
	Skins  []gltfSkin  `json:"skins,omitempty"`
}

// gltfAsset contains metadata about the glTF asset.
type gltfAsset struct {
	// Version is the glTF version (required, must be "2.0").
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// gltfScene is a set of root nodes.
type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is one element of the node hierarchy. Either Matrix or the TRS properties describe its local transform.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
type gltfNode struct {
	Name        string       `json:"name,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Skin        *int         `json:"skin,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`
	Translation *[3]float32  `json:"translation,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`
	Scale       *[3]float32  `json:"scale,omitempty"`
	Weights     []float32    `json:"weights,omitempty"`
}

// gltfMesh carries the morph target names. glTF has no standard place for them; exporters (Blender, VRM, UniVRM)
// write them to extras.targetNames.
type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
	Weights    []float32       `json:"weights,omitempty"`
	Extras     gltfMeshExtras  `json:"extras,omitempty"`
}

type gltfMeshExtras struct {
	TargetNames []string `json:"targetNames,omitempty"`
}

// gltfPrimitive is only read for its morph target count.
type gltfPrimitive struct {
	Targets []map[string]int `json:"targets,omitempty"`
}

// gltfSkin lists the joint nodes of a skeleton.
type gltfSkin struct {
	Name     string `json:"name,omitempty"`
	Joints   []int  `json:"joints"`
	Skeleton *int   `json:"skeleton,omitempty"`
}

// --- GLB container ---

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0"
)

// gltfGLBHeader is the 12-byte GLB file header.
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader precedes every GLB chunk.
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}
