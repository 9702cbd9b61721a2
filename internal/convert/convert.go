// Package convert wires the pipeline together: STL in, decision engine in
// the middle, STEP file out.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/export"
	"github.com/vipasu/goifc/pkg/ifc"
	"github.com/vipasu/goifc/pkg/stl"
)

// Options configures one conversion
type Options struct {
	Export export.Options

	ProjectName  string
	Author       string
	Organization string

	// Material, when set, styles every exported element
	Material   bim.MaterialID
	MaterialDef export.MaterialDef
}

// DefaultOptions returns conversion defaults on top of the export defaults
func DefaultOptions() Options {
	return Options{
		Export:      export.DefaultOptions(),
		ProjectName: "Converted model",
	}
}

// Summary reports what a conversion produced
type Summary struct {
	Kind      export.RepresentationKind
	Triangles int
	Items     int
	Entities  int
}

func (o Options) tolerance() float64 {
	if o.Export.Tolerance <= 0 {
		return export.DefaultTolerance
	}
	return o.Export.Tolerance
}

// File converts one STL file into an IFC file on disk
func File(inputPath, outputPath string, opts Options) (*Summary, error) {
	mesh, err := stl.Read(inputPath, opts.tolerance())
	if err != nil {
		return nil, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	summary, err := Mesh(out, mesh, opts)
	if err != nil {
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Mesh converts an in-memory mesh and writes the STEP document to w
func Mesh(w io.Writer, mesh *bim.Mesh, opts Options) (*Summary, error) {
	if mesh.Material == bim.MaterialNone {
		mesh.Material = opts.Material
	}
	return run(w, mesh.Name, []bim.GeometryObject{mesh}, opts)
}

// Objects converts a set of geometry objects as one building element
func Objects(w io.Writer, name string, objects []bim.GeometryObject, opts Options) (*Summary, error) {
	return run(w, name, objects, opts)
}

func run(w io.Writer, name string, objects []bim.GeometryObject, opts Options) (*Summary, error) {
	file := ifc.NewFile(name + ".ifc")
	file.Author = opts.Author
	file.Organization = opts.Organization

	skeleton := file.NewSkeleton(opts.ProjectName, opts.tolerance())
	session := export.NewSession(file, skeleton.Context, opts.tolerance())
	if opts.Material != bim.MaterialNone {
		session.RegisterMaterial(opts.Material, opts.MaterialDef)
	}

	exporter := export.NewBodyExporter(session, opts.Export)
	result, err := exporter.Export(name, objects, nil)
	if err != nil {
		return nil, fmt.Errorf("export of %q failed: %w", name, err)
	}
	if result.Empty() {
		return nil, fmt.Errorf("nothing exportable in %q", name)
	}

	shape := file.ProductDefinitionShape([]ifc.Handle{result.Shape})
	skeleton.AddProxyElement(file, name, shape, result.Offset)
	skeleton.Finish(file)

	if err := file.WriteSTEP(w); err != nil {
		return nil, fmt.Errorf("failed to write STEP: %w", err)
	}

	summary := &Summary{
		Kind:     result.Kind,
		Items:    len(result.Items),
		Entities: file.Count(),
	}
	for _, obj := range objects {
		if m, ok := obj.(*bim.Mesh); ok {
			summary.Triangles += len(m.Shell.Triangles)
		}
	}
	return summary, nil
}
