package export

import (
	"log"

	"github.com/vipasu/goifc/pkg/analysis"
	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
	"github.com/vipasu/goifc/pkg/ifc"
)

// exportState tracks the body-export decision machine:
//
//	TryExtrusion -> ExtrusionSucceeded            (every item swept)
//	TryExtrusion -> FallbackToBRep                (any item failed)
//	FallbackToBRep -> FacetedBrep | SurfaceModel  (all-or-nothing)
//	-> Done, or CompletelyClipped as a terminal
type exportState int

const (
	stateTryExtrusion exportState = iota
	stateExtrusionSucceeded
	stateFallbackToBRep
	stateFacetedBrep
	stateSurfaceModel
	stateCompletelyClipped
	stateDone
)

// BodyExporter converts one body's geometry objects into a single IFC shape
// representation, choosing the representation kind globally per call so one
// compound body never mixes kinds.
type BodyExporter struct {
	session *Session
	opts    Options
}

// NewBodyExporter creates an exporter writing through the given session
func NewBodyExporter(session *Session, opts Options) *BodyExporter {
	return &BodyExporter{session: session, opts: opts}
}

// exportItem is one geometry piece being exported: a split solid or a mesh,
// plus everything derived from it along the way
type exportItem struct {
	solid    *bim.Solid
	mesh     *bim.Mesh
	source   int // index of the originating geometry object
	material bim.MaterialID

	candidate *ExtrusionCandidate
	faces     []exportFace
	shell     *bim.TriangleShell
	closed    bool
	skipped   bool

	voidOf int   // index of the item this one is a cavity of, -1 otherwise
	voids  []int // indices of cavity items carved out of this one
}

// exportFace is one face ready for emission: an outer boundary and holes,
// in world coordinates
type exportFace struct {
	outer []geometry.Vector3
	inner [][]geometry.Vector3
}

// Export converts the geometry objects of one body into an IFC shape
// representation. name labels diagnostics only.
//
// An empty input list, or one where every object was skipped after
// recoverable failures, yields an empty Result and no error: the caller
// simply has nothing to export. A non-empty list whose every object carries
// no geometry (everything clipped away) returns ErrCompletelyClipped and
// the caller must abort the owning element.
//
// The sink is transactional per call: a failed attempt rolls back every
// entity it allocated.
func (e *BodyExporter) Export(name string, objects []bim.GeometryObject, ectx *ExtrusionContext) (*Result, error) {
	if len(objects) == 0 {
		return &Result{}, nil
	}
	eps := e.opts.tolerance()

	live := 0
	for _, obj := range objects {
		if obj != nil && !obj.IsEmpty() {
			live++
		}
	}
	if live == 0 {
		// terminal: stateCompletelyClipped
		return nil, ErrCompletelyClipped
	}

	items := e.collectItems(objects, eps)

	// stateTryExtrusion is only entered when the options ask for it
	state := stateFallbackToBRep
	if e.opts.TryExtrusion {
		state = e.detectExtrusions(items, ectx, eps)
	}

	if state != stateExtrusionSucceeded {
		state = e.buildFallbacks(name, items, state, eps)
	}

	usable := 0
	for _, item := range items {
		if !item.skipped {
			usable++
		}
	}
	if usable == 0 {
		return &Result{}, nil
	}

	mark := e.session.File.Mark()
	result, err := e.write(items, state, eps)
	if err != nil {
		e.session.File.Rollback(mark)
		log.Printf("export: body %q: representation creation failed: %v", name, err)
		return &Result{}, nil
	}
	return result, nil
}

// collectItems splits solids into disjoint volumes and flattens everything
// into the per-item work list. Split pieces share the input solid's faces
// and live only for this call.
func (e *BodyExporter) collectItems(objects []bim.GeometryObject, eps float64) []*exportItem {
	var items []*exportItem
	for oi, obj := range objects {
		switch g := obj.(type) {
		case *bim.Solid:
			if g.IsEmpty() {
				continue
			}
			for _, piece := range SplitDisjointVolumes(g, eps) {
				items = append(items, &exportItem{
					solid:    piece,
					source:   oi,
					material: DominantMaterial(piece),
					voidOf:   -1,
				})
			}
		case *bim.Mesh:
			if g.IsEmpty() {
				continue
			}
			items = append(items, &exportItem{
				mesh:     g,
				source:   oi,
				material: g.Material,
				voidOf:   -1,
			})
		}
	}
	return items
}

// detectExtrusions runs the extrusion detector over every item. All items
// must succeed for the swept-solid path; otherwise candidates are kept only
// when mixed representations are allowed.
func (e *BodyExporter) detectExtrusions(items []*exportItem, ectx *ExtrusionContext, eps float64) exportState {
	allSwept := true
	for _, item := range items {
		if item.solid == nil {
			// meshes carry no topology to detect against
			allSwept = false
			continue
		}
		if c, ok := DetectExtrusion(item.solid, ectx, eps); ok {
			item.candidate = c
		} else {
			allSwept = false
		}
	}
	if allSwept {
		return stateExtrusionSucceeded
	}
	if !e.opts.AllowMixedRepresentations {
		// abandon extrusion for every item: one body, one representation kind
		for _, item := range items {
			item.candidate = nil
		}
	}
	return stateFallbackToBRep
}

// buildFallbacks prepares face sets for every item without an extrusion,
// then settles the global BRep-vs-surface-model decision: the moment any
// single item fails closed-shell validation, every item becomes a surface
// model.
func (e *BodyExporter) buildFallbacks(name string, items []*exportItem, state exportState, eps float64) exportState {
	for _, item := range items {
		if item.candidate != nil {
			continue
		}
		if err := e.buildFallback(item, eps); err != nil {
			// recoverable: this item is lost, siblings still export
			log.Printf("export: body %q: tessellation failed, skipping item: %v", name, err)
			item.skipped = true
		}
	}

	allClosed := true
	for _, item := range items {
		if item.candidate != nil || item.skipped {
			continue
		}
		report := ValidateShell(e.validationFaces(item, eps))
		item.closed = report.Closed
		if !report.Closed {
			allClosed = false
		}
	}
	if !allClosed {
		return stateSurfaceModel
	}
	detectVoids(items, eps)
	return stateFacetedBrep
}

// buildFallback converts one item into exportable faces: planar solids go
// straight from their edge loops, everything else through tessellation and
// the facet merger.
func (e *BodyExporter) buildFallback(item *exportItem, eps float64) error {
	switch {
	case item.mesh != nil:
		item.shell = &item.mesh.Shell
	case IsPlanarPolygonal(item.solid, eps):
		item.faces = facesFromSolid(item.solid)
		if !item.solid.HasInnerLoops() {
			// a shell alongside the direct faces feeds metrics and dedupe
			if shell, err := item.solid.Tessellate(eps); err == nil {
				item.shell = shell
			}
		}
		return nil
	default:
		shell, err := item.solid.Tessellate(eps)
		if err != nil {
			return err
		}
		item.shell = shell
	}

	var facets []Facet
	if e.opts.MergeCoplanarFacets {
		facets = MergeCoplanarFacets(item.shell, eps)
	} else {
		facets = make([]Facet, len(item.shell.Triangles))
		for i, tri := range item.shell.Triangles {
			facets[i] = triangleFacet(tri)
		}
	}
	item.faces = facesFromFacets(item.shell, facets)
	return nil
}

// validationFaces rewelds an item's faces into index space for the
// closed-shell check
func (e *BodyExporter) validationFaces(item *exportItem, eps float64) []ShellFace {
	index := make(map[geometry.FuzzyPoint]int)
	id := func(p geometry.Vector3) int {
		key := geometry.NewFuzzyPoint(p, eps)
		if i, ok := index[key]; ok {
			return i
		}
		i := len(index)
		index[key] = i
		return i
	}
	ids := func(points []geometry.Vector3) []int {
		out := make([]int, len(points))
		for i, p := range points {
			out[i] = id(p)
		}
		return out
	}

	out := make([]ShellFace, 0, len(item.faces))
	for _, f := range item.faces {
		sf := ShellFace{Outer: ids(f.outer)}
		for _, inner := range f.inner {
			sf.Inner = append(sf.Inner, ids(inner))
		}
		out = append(out, sf)
	}
	return out
}

// detectVoids pairs inward-oriented closed pieces (cavities) with the
// sibling piece that contains them, so the BRep writer can emit them as
// voids instead of free-floating shells.
func detectVoids(items []*exportItem, eps float64) {
	for i, cavity := range items {
		if cavity.skipped || !cavity.closed || cavity.shell == nil || cavity.candidate != nil {
			continue
		}
		if analysis.MeasureShell(cavity.shell).Volume >= 0 {
			continue
		}
		for j, host := range items {
			if i == j || host.skipped || !host.closed || host.shell == nil || host.candidate != nil {
				continue
			}
			if host.source != cavity.source {
				continue
			}
			if analysis.MeasureShell(host.shell).Volume <= 0 {
				continue
			}
			if host.shell.BoundingBox().Contains(cavity.shell.BoundingBox(), eps) {
				cavity.voidOf = j
				host.voids = append(host.voids, i)
				break
			}
		}
	}
}

// write emits all items into the sink and assembles the Result
func (e *BodyExporter) write(items []*exportItem, state exportState, eps float64) (*Result, error) {
	file := e.session.File

	offset := e.recenterOffset(items, state)

	var (
		itemHandles []ifc.Handle
		sweptCount  int
		mappedCount int
	)
	for _, item := range items {
		if item.skipped || item.voidOf >= 0 {
			continue
		}

		var handle ifc.Handle
		switch {
		case item.candidate != nil:
			handle = e.writeExtrusion(item.candidate)
			sweptCount++
		case state == stateFacetedBrep:
			var mapped bool
			handle, mapped = e.writeBrep(items, item, offset, eps)
			if mapped {
				mappedCount++
			}
		default:
			handle = e.writeSurfaceModel(item, offset)
		}

		if style, ok := e.session.surfaceStyle(item.material); ok {
			file.StyledItem(handle, style)
		}
		itemHandles = append(itemHandles, handle)
	}

	if len(itemHandles) == 0 {
		return nil, errNothingWritten
	}

	result := &Result{
		Items:     itemHandles,
		Materials: distinctMaterials(items),
		Offset:    offset,
	}
	switch {
	case mappedCount > 0:
		result.Kind = KindMappedItem
	case sweptCount == len(itemHandles):
		result.Kind = KindSweptSolid
	case state == stateFacetedBrep:
		result.Kind = KindBrep
	default:
		result.Kind = KindSurfaceModel
	}

	repType := result.Kind.String()
	if sweptCount > 0 && sweptCount < len(itemHandles) {
		repType = "SolidModel"
	}
	result.Shape = file.ShapeRepresentation(e.session.Context, "Body", repType, itemHandles)
	return result, nil
}

// recenterOffset computes the translation pulling raw BRep geometry toward
// the origin. Extrusions are position-anchored and never recentered, so a
// mixed body skips recentering entirely, as does a mapped body whose source
// geometry must stay in its own frame.
func (e *BodyExporter) recenterOffset(items []*exportItem, state exportState) geometry.Vector3 {
	if state == stateExtrusionSucceeded || e.opts.EnableMapping {
		return geometry.Vector3{}
	}
	bbox := geometry.NewBoundingBox()
	for _, item := range items {
		if item.skipped {
			continue
		}
		if item.candidate != nil {
			// mixed body: keep everything in world coordinates
			return geometry.Vector3{}
		}
		for _, f := range item.faces {
			bbox.ExtendAll(f.outer)
		}
	}
	if bbox.Empty() {
		return geometry.Vector3{}
	}
	return bbox.Center()
}

func (e *BodyExporter) writeExtrusion(c *ExtrusionCandidate) ifc.Handle {
	file := e.session.File

	outer2D, inner2D := c.Profile2D()
	outerCurve := file.Polyline2D(outer2D)
	var profile ifc.Handle
	if len(inner2D) > 0 {
		innerCurves := make([]ifc.Handle, len(inner2D))
		for i, loop := range inner2D {
			innerCurves[i] = file.Polyline2D(loop)
		}
		profile = file.ArbitraryProfileDefWithVoids(outerCurve, innerCurves)
	} else {
		profile = file.ArbitraryClosedProfileDef(outerCurve)
	}

	origin, refDir := c.ProfilePlacement()
	axis := c.Direction
	position := file.Axis2Placement3D(origin, &axis, &refDir)

	// the sweep direction is expressed in profile coordinates: local z
	return file.ExtrudedAreaSolid(profile, position, geometry.NewVector3(0, 0, 1), c.Length)
}

// writeBrep emits one closed item, as a mapped instance when deduplication
// finds (or registers) a geometrically identical shape
func (e *BodyExporter) writeBrep(items []*exportItem, item *exportItem, offset geometry.Vector3, eps float64) (ifc.Handle, bool) {
	file := e.session.File

	if e.opts.EnableMapping && item.shell != nil && len(item.voids) == 0 {
		metrics := shellMetrics(item)
		if entry, transform, ok := e.session.dedupe.Match(metrics, item.shell); ok && entry.MapHandle != ifc.Nil {
			op := file.CartesianTransformationOperator3D(transform)
			return file.MappedItem(entry.MapHandle, op), true
		}

		brep := file.FacetedBrep(e.writeShell(item, offset))
		if entry := e.session.dedupe.Register(metrics, item.shell); entry != nil {
			inner := file.ShapeRepresentation(e.session.Context, "Body", "Brep", []ifc.Handle{brep})
			mapOrigin := file.Axis2Placement3D(geometry.Vector3{}, nil, nil)
			entry.MapHandle = file.RepresentationMap(mapOrigin, inner)
			op := file.CartesianTransformationOperator3D(geometry.IdentityTransform())
			return file.MappedItem(entry.MapHandle, op), true
		}
		return brep, false
	}

	shell := e.writeShell(item, offset)
	if len(item.voids) > 0 {
		voidShells := make([]ifc.Handle, len(item.voids))
		for i, vi := range item.voids {
			voidShells[i] = e.writeShell(items[vi], offset)
		}
		return file.FacetedBrepWithVoids(shell, voidShells), false
	}
	return file.FacetedBrep(shell), false
}

func (e *BodyExporter) writeShell(item *exportItem, offset geometry.Vector3) ifc.Handle {
	return e.session.File.ClosedShell(e.writeFaces(item.faces, offset))
}

func (e *BodyExporter) writeSurfaceModel(item *exportItem, offset geometry.Vector3) ifc.Handle {
	file := e.session.File
	faceSet := file.ConnectedFaceSet(e.writeFaces(item.faces, offset))
	return file.FaceBasedSurfaceModel([]ifc.Handle{faceSet})
}

func (e *BodyExporter) writeFaces(faces []exportFace, offset geometry.Vector3) []ifc.Handle {
	file := e.session.File
	handles := make([]ifc.Handle, 0, len(faces))
	for _, f := range faces {
		bounds := []ifc.Handle{
			file.FaceOuterBound(file.PolyLoop(translated(f.outer, offset)), true),
		}
		for _, inner := range f.inner {
			bounds = append(bounds, file.FaceBound(file.PolyLoop(translated(inner, offset)), true))
		}
		handles = append(handles, file.Face(bounds))
	}
	return handles
}

func translated(points []geometry.Vector3, offset geometry.Vector3) []geometry.Vector3 {
	if offset == (geometry.Vector3{}) {
		return points
	}
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[i] = p.Sub(offset)
	}
	return out
}

func shellMetrics(item *exportItem) SolidMetrics {
	m := analysis.MeasureShell(item.shell)
	metrics := SolidMetrics{
		FaceCount:   len(item.faces),
		EdgeCount:   m.EdgeCount,
		SurfaceArea: m.SurfaceArea,
		Volume:      m.Volume,
	}
	if item.solid != nil {
		metrics.FaceCount, metrics.EdgeCount = analysis.SolidCounts(item.solid)
	}
	return metrics
}

func facesFromSolid(s *bim.Solid) []exportFace {
	faces := make([]exportFace, 0, len(s.Faces))
	for _, f := range s.Faces {
		ef := exportFace{outer: f.Outer.Points()}
		for _, inner := range f.Inner {
			ef.inner = append(ef.inner, inner.Points())
		}
		faces = append(faces, ef)
	}
	return faces
}

func facesFromFacets(shell *bim.TriangleShell, facets []Facet) []exportFace {
	faces := make([]exportFace, len(facets))
	for i, facet := range facets {
		points := make([]geometry.Vector3, len(facet.Indices))
		for j, vi := range facet.Indices {
			points[j] = shell.Vertices[vi]
		}
		faces[i] = exportFace{outer: points}
	}
	return faces
}

func distinctMaterials(items []*exportItem) []bim.MaterialID {
	var out []bim.MaterialID
	seen := make(map[bim.MaterialID]bool)
	for _, item := range items {
		if item.skipped || item.material == bim.MaterialNone || seen[item.material] {
			continue
		}
		seen[item.material] = true
		out = append(out, item.material)
	}
	return out
}
