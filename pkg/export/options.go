// Package export is the body-export decision engine: it turns host solids
// and meshes into the most compact IFC representation it can prove correct,
// preferring extrusion over faceted BRep over face-based surface model.
package export

import (
	"errors"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
	"github.com/vipasu/goifc/pkg/ifc"
)

// DefaultTolerance is the default numeric tolerance for vertex welding,
// planarity checks and fuzzy comparisons. Callers can override per export.
const DefaultTolerance = 1e-6

// Options controls one body-export call
type Options struct {
	// TryExtrusion enables the swept-solid fast path
	TryExtrusion bool
	// AllowMixedRepresentations lets items that detected an extrusion keep
	// it even when sibling items fall back to BRep. When false, a single
	// extrusion failure abandons extrusion for every item so one body never
	// mixes representation kinds.
	AllowMixedRepresentations bool
	// MergeCoplanarFacets runs the planar facet merger over tessellated
	// shells before emitting faces
	MergeCoplanarFacets bool
	// EnableMapping turns on the experimental geometry deduplicator,
	// replacing repeated shapes with mapped items
	EnableMapping bool
	// Tolerance is the numeric epsilon threaded through all geometry
	// comparisons; zero means DefaultTolerance
	Tolerance float64
}

// DefaultOptions returns the production defaults: extrusion on, facet
// merging on, deduplication off.
func DefaultOptions() Options {
	return Options{
		TryExtrusion:        true,
		MergeCoplanarFacets: true,
		Tolerance:           DefaultTolerance,
	}
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// ExtrusionContext carries caller preferences for extrusion detection
type ExtrusionContext struct {
	// PreferredAxis is tried before the world axes when not nil
	PreferredAxis *geometry.Vector3
	// InnerLoopsAsOpenings converts profile holes into profile voids.
	// When false, any inner loop fails detection and forces fallback.
	InnerLoopsAsOpenings bool
}

// RepresentationKind tags the representation a body export produced
type RepresentationKind int

const (
	// KindNone means nothing was exported
	KindNone RepresentationKind = iota
	// KindSweptSolid is an IfcExtrudedAreaSolid representation
	KindSweptSolid
	// KindBrep is an IfcFacetedBrep representation
	KindBrep
	// KindSurfaceModel is an IfcFaceBasedSurfaceModel representation
	KindSurfaceModel
	// KindMappedItem is a deduplicated representation reusing a map
	KindMappedItem
)

func (k RepresentationKind) String() string {
	switch k {
	case KindSweptSolid:
		return "SweptSolid"
	case KindBrep:
		return "Brep"
	case KindSurfaceModel:
		return "SurfaceModel"
	case KindMappedItem:
		return "MappedRepresentation"
	default:
		return "None"
	}
}

// Result is the outcome of one body-export call, immutable after return
type Result struct {
	// Kind tags the representation type shared by all items
	Kind RepresentationKind
	// Shape is the IfcShapeRepresentation handle, Nil when empty
	Shape ifc.Handle
	// Items are the representation item handles, one or more per geometry
	// object
	Items []ifc.Handle
	// Materials lists the distinct material ids referenced, in first-seen
	// order
	Materials []bim.MaterialID
	// Offset is the recentering translation applied to BRep and surface
	// geometry for numeric stability; the element placement must add it
	// back. Always zero for extrusions.
	Offset geometry.Vector3
}

// Empty reports whether the export produced nothing. Callers treat this as
// "nothing to export", never as an error.
func (r *Result) Empty() bool {
	return r == nil || r.Kind == KindNone
}

// ErrCompletelyClipped signals that every input object had its geometry
// clipped away. The caller must abort exporting the owning element, not
// just this body.
var ErrCompletelyClipped = errors.New("export: geometry completely clipped away")

// errNothingWritten triggers the transactional rollback when no item
// survived to the sink
var errNothingWritten = errors.New("export: no representation items written")
