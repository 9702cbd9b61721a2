package ifc

import "github.com/vipasu/goifc/pkg/geometry"

// Skeleton is the minimal spatial structure a standalone IFC file needs:
// a project with units and a geometric context, one site, one building.
// Exported products hang off the building via containment relationships.
type Skeleton struct {
	Context  Handle
	Project  Handle
	Site     Handle
	Building Handle

	buildingPlacement Handle
	elements          []Handle
}

// NewSkeleton allocates the project/site/building scaffolding in the file.
// precision becomes the geometric context precision attribute.
func (f *File) NewSkeleton(projectName string, precision float64) *Skeleton {
	worldOrigin := f.Axis2Placement3D(geometry.Vector3{}, nil, nil)
	context := f.add("IFCGEOMETRICREPRESENTATIONCONTEXT",
		nil, "Model", 3, precision, worldOrigin, Nil)

	lengthUnit := f.add("IFCSIUNIT", derived{}, enum("LENGTHUNIT"), nil, enum("METRE"))
	areaUnit := f.add("IFCSIUNIT", derived{}, enum("AREAUNIT"), nil, enum("SQUARE_METRE"))
	volumeUnit := f.add("IFCSIUNIT", derived{}, enum("VOLUMEUNIT"), nil, enum("CUBIC_METRE"))
	units := f.add("IFCUNITASSIGNMENT", []any{lengthUnit, areaUnit, volumeUnit})

	project := f.add("IFCPROJECT", NewGlobalID(), nil, projectName,
		nil, nil, nil, nil, []any{context}, units)

	sitePlacement := f.localPlacement(Nil, geometry.Vector3{})
	site := f.add("IFCSITE", NewGlobalID(), nil, "Site", nil, nil,
		sitePlacement, Nil, nil, enum("ELEMENT"), nil, nil, nil, nil, nil)

	buildingPlacement := f.localPlacement(sitePlacement, geometry.Vector3{})
	building := f.add("IFCBUILDING", NewGlobalID(), nil, "Building", nil, nil,
		buildingPlacement, Nil, nil, enum("ELEMENT"), nil, nil, nil)

	f.relAggregates(project, []Handle{site})
	f.relAggregates(site, []Handle{building})

	return &Skeleton{
		Context:           context,
		Project:           project,
		Site:              site,
		Building:          building,
		buildingPlacement: buildingPlacement,
	}
}

// AddProxyElement creates an IfcBuildingElementProxy carrying the given
// shape, placed at offset relative to the building, and records it for
// containment. Returns the element handle.
func (s *Skeleton) AddProxyElement(f *File, name string, shape Handle, offset geometry.Vector3) Handle {
	placement := f.localPlacement(s.buildingPlacement, offset)
	element := f.add("IFCBUILDINGELEMENTPROXY", NewGlobalID(), nil,
		nilableString(name), nil, nil, placement, shape, nil, enum("NOTDEFINED"))
	s.elements = append(s.elements, element)
	return element
}

// Finish emits the containment relationship linking all added elements to
// the building. Call once after the last element.
func (s *Skeleton) Finish(f *File) {
	if len(s.elements) == 0 {
		return
	}
	f.add("IFCRELCONTAINEDINSPATIALSTRUCTURE", NewGlobalID(), nil,
		nil, nil, handles(s.elements), s.Building)
}

func (f *File) localPlacement(relTo Handle, origin geometry.Vector3) Handle {
	placement := f.Axis2Placement3D(origin, nil, nil)
	return f.add("IFCLOCALPLACEMENT", nilable(relTo), placement)
}

func (f *File) relAggregates(parent Handle, children []Handle) Handle {
	return f.add("IFCRELAGGREGATES", NewGlobalID(), nil, nil, nil,
		parent, handles(children))
}
