package ifc

import "github.com/vipasu/goifc/pkg/geometry"

// Geometric entity constructors. Each method allocates one or more entity
// instances and returns the handle of the outermost one. Attribute order is
// fixed by the IFC4 schema.

// CartesianPoint creates an IfcCartesianPoint from a 3D point
func (f *File) CartesianPoint(v geometry.Vector3) Handle {
	return f.add("IFCCARTESIANPOINT", []any{v.X, v.Y, v.Z})
}

// CartesianPoint2D creates a 2D IfcCartesianPoint (profile space)
func (f *File) CartesianPoint2D(x, y float64) Handle {
	return f.add("IFCCARTESIANPOINT", []any{x, y})
}

// Direction creates an IfcDirection from a 3D vector
func (f *File) Direction(v geometry.Vector3) Handle {
	return f.add("IFCDIRECTION", []any{v.X, v.Y, v.Z})
}

// PolyLoop creates an IfcPolyLoop through the given points, allocating one
// IfcCartesianPoint per vertex
func (f *File) PolyLoop(points []geometry.Vector3) Handle {
	list := make([]Handle, len(points))
	for i, p := range points {
		list[i] = f.CartesianPoint(p)
	}
	return f.add("IFCPOLYLOOP", handles(list))
}

// FaceOuterBound creates an IfcFaceOuterBound over a loop
func (f *File) FaceOuterBound(loop Handle, sameSense bool) Handle {
	return f.add("IFCFACEOUTERBOUND", loop, sameSense)
}

// FaceBound creates an IfcFaceBound over a loop (inner boundaries)
func (f *File) FaceBound(loop Handle, sameSense bool) Handle {
	return f.add("IFCFACEBOUND", loop, sameSense)
}

// Face creates an IfcFace from its bounds
func (f *File) Face(bounds []Handle) Handle {
	return f.add("IFCFACE", handles(bounds))
}

// ClosedShell creates an IfcClosedShell from faces
func (f *File) ClosedShell(faces []Handle) Handle {
	return f.add("IFCCLOSEDSHELL", handles(faces))
}

// ConnectedFaceSet creates an IfcConnectedFaceSet from faces (open face sets)
func (f *File) ConnectedFaceSet(faces []Handle) Handle {
	return f.add("IFCCONNECTEDFACESET", handles(faces))
}

// FacetedBrep creates an IfcFacetedBrep over a closed shell
func (f *File) FacetedBrep(shell Handle) Handle {
	return f.add("IFCFACETEDBREP", shell)
}

// FacetedBrepWithVoids creates an IfcFacetedBrepWithVoids over an outer
// shell and its interior cavity shells
func (f *File) FacetedBrepWithVoids(outer Handle, voids []Handle) Handle {
	return f.add("IFCFACETEDBREPWITHVOIDS", outer, handles(voids))
}

// FaceBasedSurfaceModel creates an IfcFaceBasedSurfaceModel from face sets
func (f *File) FaceBasedSurfaceModel(faceSets []Handle) Handle {
	return f.add("IFCFACEBASEDSURFACEMODEL", handles(faceSets))
}

// Polyline2D creates a closed IfcPolyline through 2D profile points,
// repeating the first point at the end
func (f *File) Polyline2D(points [][2]float64) Handle {
	list := make([]Handle, 0, len(points)+1)
	for _, p := range points {
		list = append(list, f.CartesianPoint2D(p[0], p[1]))
	}
	if len(list) > 0 {
		list = append(list, list[0])
	}
	return f.add("IFCPOLYLINE", handles(list))
}

// ArbitraryClosedProfileDef creates an area profile bounded by a curve
func (f *File) ArbitraryClosedProfileDef(outerCurve Handle) Handle {
	return f.add("IFCARBITRARYCLOSEDPROFILEDEF", enum("AREA"), nil, outerCurve)
}

// ArbitraryProfileDefWithVoids creates an area profile with inner voids
func (f *File) ArbitraryProfileDefWithVoids(outerCurve Handle, innerCurves []Handle) Handle {
	return f.add("IFCARBITRARYPROFILEDEFWITHVOIDS", enum("AREA"), nil, outerCurve, handles(innerCurves))
}

// Axis2Placement3D creates a placement at origin with optional axis (local
// z) and reference direction (local x); nil axes mean schema defaults
func (f *File) Axis2Placement3D(origin geometry.Vector3, axis, refDir *geometry.Vector3) Handle {
	location := f.CartesianPoint(origin)
	axisH, refH := Nil, Nil
	if axis != nil {
		axisH = f.Direction(*axis)
	}
	if refDir != nil {
		refH = f.Direction(*refDir)
	}
	return f.add("IFCAXIS2PLACEMENT3D", location, nilable(axisH), nilable(refH))
}

// ExtrudedAreaSolid creates an IfcExtrudedAreaSolid sweeping a profile from
// a position along a direction by depth
func (f *File) ExtrudedAreaSolid(profile, position Handle, direction geometry.Vector3, depth float64) Handle {
	return f.add("IFCEXTRUDEDAREASOLID", profile, position, f.Direction(direction), depth)
}

// CartesianTransformationOperator3D creates the rigid-transform operator
// used as a mapped-item target. Schema order interleaves the origin between
// the second and third axes.
func (f *File) CartesianTransformationOperator3D(t geometry.RigidTransform) Handle {
	return f.add("IFCCARTESIANTRANSFORMATIONOPERATOR3D",
		f.Direction(t.XAxis),
		f.Direction(t.YAxis),
		f.CartesianPoint(t.Origin),
		nil, // scale defaults to 1
		f.Direction(t.ZAxis),
	)
}

// RepresentationMap creates an IfcRepresentationMap sharing a representation
func (f *File) RepresentationMap(origin, representation Handle) Handle {
	return f.add("IFCREPRESENTATIONMAP", origin, representation)
}

// MappedItem creates an IfcMappedItem instancing a representation map
func (f *File) MappedItem(source, target Handle) Handle {
	return f.add("IFCMAPPEDITEM", source, target)
}

// ColourRgb creates an IfcColourRgb
func (f *File) ColourRgb(name string, r, g, b float64) Handle {
	return f.add("IFCCOLOURRGB", nilableString(name), r, g, b)
}

// SurfaceStyle creates an IfcSurfaceStyle with a flat rendering of the
// given colour applied to both sides
func (f *File) SurfaceStyle(name string, colour Handle, transparency float64) Handle {
	rendering := f.add("IFCSURFACESTYLERENDERING",
		colour, transparency, nil, nil, nil, nil, nil, nil, enum("NOTDEFINED"))
	return f.add("IFCSURFACESTYLE", nilableString(name), enum("BOTH"), []any{rendering})
}

// StyledItem attaches a surface style to a representation item
func (f *File) StyledItem(item, style Handle) Handle {
	return f.add("IFCSTYLEDITEM", item, []any{style}, nil)
}

// ShapeRepresentation creates an IfcShapeRepresentation of the given type
// ("SweptSolid", "Brep", "SurfaceModel", "MappedRepresentation")
func (f *File) ShapeRepresentation(context Handle, identifier, repType string, items []Handle) Handle {
	return f.add("IFCSHAPEREPRESENTATION", context, identifier, repType, handles(items))
}

// ProductDefinitionShape creates an IfcProductDefinitionShape over shape
// representations
func (f *File) ProductDefinitionShape(representations []Handle) Handle {
	return f.add("IFCPRODUCTDEFINITIONSHAPE", nil, nil, handles(representations))
}

// nilable maps the zero handle to the STEP null attribute
func nilable(h Handle) any {
	if h == Nil {
		return nil
	}
	return h
}

// nilableString maps the empty string to the STEP null attribute
func nilableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
