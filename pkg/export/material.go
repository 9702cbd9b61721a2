package export

import "github.com/vipasu/goifc/pkg/bim"

// ResolveMaterial selects the single material id best describing a geometry
// collection. Mesh tags are scanned first (first tagged mesh sets the
// candidate), then each solid contributes its dominant face material. The
// candidate survives only while every subsequent tagged item agrees with
// it; one disagreement collapses the result to MaterialNone, so
// heterogeneous geometry never gets a misleading uniform style.
func ResolveMaterial(objects []bim.GeometryObject) bim.MaterialID {
	candidate := bim.MaterialNone

	accept := func(id bim.MaterialID) bool {
		if id == bim.MaterialNone {
			return true
		}
		if candidate == bim.MaterialNone {
			candidate = id
			return true
		}
		return candidate == id
	}

	for _, obj := range objects {
		if mesh, ok := obj.(*bim.Mesh); ok {
			if !accept(mesh.Material) {
				return bim.MaterialNone
			}
		}
	}
	for _, obj := range objects {
		if solid, ok := obj.(*bim.Solid); ok {
			if !accept(DominantMaterial(solid)) {
				return bim.MaterialNone
			}
		}
	}
	return candidate
}

// DominantMaterial returns the most frequently tagged material among a
// solid's faces, ties broken by first appearance; MaterialNone if no face
// is tagged.
func DominantMaterial(s *bim.Solid) bim.MaterialID {
	counts := make(map[bim.MaterialID]int)
	best := bim.MaterialNone
	bestCount := 0
	for _, f := range s.Faces {
		if f.Material == bim.MaterialNone {
			continue
		}
		counts[f.Material]++
		// strictly-greater keeps the first-seen winner on ties
		if counts[f.Material] > bestCount {
			best = f.Material
			bestCount = counts[f.Material]
		}
	}
	return best
}
