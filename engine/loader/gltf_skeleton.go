package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-fx/engine/model"
)

// extractSkeleton builds a parent-first skeleton from the joints of a skin. With skinIndex < 0 every node of
// the document becomes a bone, which keeps unskinned rigs (a common export of accessory models) bindable.
func extractSkeleton(doc *gltfDocument, skinIndex int) (*model.Skeleton, error) {
	var nodes []int
	switch {
	case skinIndex >= len(doc.Skins):
		return nil, fmt.Errorf("skin index %d out of range", skinIndex)
	case skinIndex >= 0:
		nodes = doc.Skins[skinIndex].Joints
	default:
		nodes = make([]int, len(doc.Nodes))
		for i := range nodes {
			nodes[i] = i
		}
	}

	nodeToBone := make(map[int]int32, len(nodes))
	bones := make([]model.Bone, len(nodes))
	for i, nodeIdx := range nodes {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
			return nil, fmt.Errorf("joint %d: invalid node index %d", i, nodeIdx)
		}
		node := &doc.Nodes[nodeIdx]
		bones[i] = model.Bone{
			Name:           node.Name,
			ParentIndex:    -1,
			LocalTransform: gltfExtractNodeTransform(node),
		}
		if bones[i].Name == "" {
			bones[i].Name = fmt.Sprintf("bone_%d", i)
		}
		nodeToBone[nodeIdx] = int32(i)
	}

	for nodeIdx, node := range doc.Nodes {
		parent, ok := nodeToBone[nodeIdx]
		if !ok {
			continue
		}
		for _, child := range node.Children {
			if boneIdx, ok := nodeToBone[child]; ok {
				bones[boneIdx].ParentIndex = parent
			}
		}
	}

	return model.NewSkeleton(gltfTopologicalSortBones(bones)...), nil
}

// gltfExtractNodeTransform extracts the TRS transform of a glTF node.
func gltfExtractNodeTransform(node *gltfNode) model.Transform {
	if node.Matrix != nil {
		return gltfDecomposeMatrix(*node.Matrix)
	}

	transform := model.IdentityTransform()
	if node.Translation != nil {
		transform.Translation = *node.Translation
	}
	if node.Rotation != nil {
		transform.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		transform.Scale = *node.Scale
	}
	return transform
}

// gltfDecomposeMatrix decomposes a column-major matrix into translation, rotation and scale. Shear is ignored.
func gltfDecomposeMatrix(m [16]float32) model.Transform {
	var t model.Transform
	t.Translation = [3]float32{m[12], m[13], m[14]}

	sx := gltfVectorLength(m[0], m[1], m[2])
	sy := gltfVectorLength(m[4], m[5], m[6])
	sz := gltfVectorLength(m[8], m[9], m[10])
	t.Scale = [3]float32{sx, sy, sz}

	if sx < 0.0001 {
		sx = 1
	}
	if sy < 0.0001 {
		sy = 1
	}
	if sz < 0.0001 {
		sz = 1
	}

	// Row-major rotation: element (row, col) of the column-major source is m[col*4+row].
	r := [9]float32{
		m[0] / sx, m[4] / sy, m[8] / sz,
		m[1] / sx, m[5] / sy, m[9] / sz,
		m[2] / sx, m[6] / sy, m[10] / sz,
	}
	t.Rotation = gltfMatrixToQuaternion(r)
	return t
}

func gltfVectorLength(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// gltfMatrixToQuaternion converts a row-major 3x3 rotation matrix to a normalized quaternion (x, y, z, w).
func gltfMatrixToQuaternion(m [9]float32) [4]float32 {
	r00, r01, r02 := m[0], m[1], m[2]
	r10, r11, r12 := m[3], m[4], m[5]
	r20, r21, r22 := m[6], m[7], m[8]

	var x, y, z, w float32
	switch trace := r00 + r11 + r22; {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1.0))) * 2
		w = 0.25 * s
		x = (r21 - r12) / s
		y = (r02 - r20) / s
		z = (r10 - r01) / s
	case r00 > r11 && r00 > r22:
		s := float32(math.Sqrt(float64(1.0+r00-r11-r22))) * 2
		w = (r21 - r12) / s
		x = 0.25 * s
		y = (r01 + r10) / s
		z = (r02 + r20) / s
	case r11 > r22:
		s := float32(math.Sqrt(float64(1.0+r11-r00-r22))) * 2
		w = (r02 - r20) / s
		x = (r01 + r10) / s
		y = 0.25 * s
		z = (r12 + r21) / s
	default:
		s := float32(math.Sqrt(float64(1.0+r22-r00-r11))) * 2
		w = (r10 - r01) / s
		x = (r02 + r20) / s
		y = (r12 + r21) / s
		z = 0.25 * s
	}

	if length := float32(math.Sqrt(float64(x*x + y*y + z*z + w*w))); length > 0.0001 {
		x /= length
		y /= length
		z /= length
		w /= length
	}
	return [4]float32{x, y, z, w}
}

// gltfTopologicalSortBones reorders bones so that parents always precede their children and remaps parent indices.
// Bones unreachable from a root (a parent cycle) are appended as roots.
func gltfTopologicalSortBones(bones []model.Bone) []model.Bone {
	children := make(map[int32][]int32)
	var queue []int32
	for i, bone := range bones {
		if bone.ParentIndex >= 0 {
			children[bone.ParentIndex] = append(children[bone.ParentIndex], int32(i))
		} else {
			queue = append(queue, int32(i))
		}
	}

	sorted := make([]int32, 0, len(bones))
	visited := make([]bool, len(bones))
	for len(queue) > 0 {
		oldIdx := queue[0]
		queue = queue[1:]
		sorted = append(sorted, oldIdx)
		visited[oldIdx] = true
		queue = append(queue, children[oldIdx]...)
	}
	for i := range bones {
		if !visited[i] {
			bones[i].ParentIndex = -1
			sorted = append(sorted, int32(i))
		}
	}

	oldToNew := make(map[int32]int32, len(sorted))
	for newIdx, oldIdx := range sorted {
		oldToNew[oldIdx] = int32(newIdx)
	}

	out := make([]model.Bone, len(sorted))
	for newIdx, oldIdx := range sorted {
		bone := bones[oldIdx]
		if bone.ParentIndex >= 0 {
			bone.ParentIndex = oldToNew[bone.ParentIndex]
		}
		out[newIdx] = bone
	}
	return out
}
