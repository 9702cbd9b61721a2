// Package stl loads STL files (ASCII and binary) into welded triangle
// meshes ready for export.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

// Read loads an STL file into a mesh, detecting the format from the file
// content. Vertices are welded at tolerance eps while reading, so the
// resulting mesh has shared indices suitable for shell validation and
// facet merging. Normals stored in the file are ignored: they are
// recomputed from the winding wherever needed.
func Read(filename string, eps float64) (*bim.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return ReadFrom(file, name, eps)
}

// ReadFrom loads STL data from a seekable reader
func ReadFrom(r io.ReadSeeker, name string, eps float64) (*bim.Mesh, error) {
	header := make([]byte, 5)
	n, err := r.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset reader: %w", err)
	}

	builder := bim.NewMeshBuilder(name, eps)
	if n >= 5 && string(header[:5]) == "solid" {
		err = readASCII(r, builder)
	} else {
		err = readBinary(r, builder)
	}
	if err != nil {
		return nil, err
	}

	mesh := builder.Mesh()
	if mesh.IsEmpty() {
		return nil, fmt.Errorf("STL %q contains no triangles", name)
	}
	return mesh, nil
}

func readASCII(r io.Reader, builder *bim.MeshBuilder) error {
	scanner := bufio.NewScanner(r)
	var vertices []geometry.Vector3

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return fmt.Errorf("line %d: facet has %d vertices, want 3", line, len(vertices))
			}
			builder.Add(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	var coords [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("bad coordinate %q: %w", field, err)
		}
		coords[i] = v
	}
	return geometry.NewVector3(coords[0], coords[1], coords[2]), nil
}

func readBinary(r io.Reader, builder *bim.MeshBuilder) error {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read triangle count: %w", err)
	}

	// 12 floats (normal + 3 vertices) plus the attribute byte count
	var record struct {
		Normal     [3]float32
		V1, V2, V3 [3]float32
		Attribute  uint16
	}
	buf := bufio.NewReader(r)
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(buf, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		builder.Add(vertex(record.V1), vertex(record.V2), vertex(record.V3))
	}
	return nil
}

func vertex(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// WriteBinary writes a mesh as a binary STL file, mostly for round-trip
// tests and debugging exports
func WriteBinary(w io.Writer, mesh *bim.Mesh) error {
	header := make([]byte, 80)
	copy(header, mesh.Name)
	if _, err := w.Write(header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(mesh.Shell.Triangles))); err != nil {
		return err
	}

	for i := range mesh.Shell.Triangles {
		tri := mesh.Shell.Triangle(i)
		n := tri.CalculateNormal()
		record := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(tri.V1.X), float32(tri.V1.Y), float32(tri.V1.Z),
			float32(tri.V2.X), float32(tri.V2.Y), float32(tri.V2.Z),
			float32(tri.V3.X), float32(tri.V3.Y), float32(tri.V3.Z),
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}
