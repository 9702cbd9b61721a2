package export

import (
	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/ifc"
)

// MaterialDef describes how a host material renders: a display name and an
// RGB surface colour
type MaterialDef struct {
	Name         string
	R, G, B      float64
	Transparency float64
}

// Session is the per-document export context. It owns the caches shared
// across body-export calls (surface styles, deduplication state) and is
// passed explicitly to every exporter: created at export-session start,
// discarded at session end, never a package-level singleton.
type Session struct {
	File *ifc.File
	// Context is the geometric representation context new shapes attach to
	Context ifc.Handle

	materials  map[bim.MaterialID]MaterialDef
	styleCache map[bim.MaterialID]ifc.Handle
	dedupe     *Deduplicator
}

// NewSession creates a session writing into the given file and context
func NewSession(file *ifc.File, context ifc.Handle, tolerance float64) *Session {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Session{
		File:       file,
		Context:    context,
		materials:  make(map[bim.MaterialID]MaterialDef),
		styleCache: make(map[bim.MaterialID]ifc.Handle),
		dedupe:     NewDeduplicator(tolerance),
	}
}

// RegisterMaterial declares a host material so exported faces referencing
// it get a surface style
func (s *Session) RegisterMaterial(id bim.MaterialID, def MaterialDef) {
	s.materials[id] = def
}

// surfaceStyle returns the cached IfcSurfaceStyle for a material, creating
// it on first use. Unregistered materials produce no style.
func (s *Session) surfaceStyle(id bim.MaterialID) (ifc.Handle, bool) {
	if id == bim.MaterialNone {
		return ifc.Nil, false
	}
	if style, ok := s.styleCache[id]; ok {
		return style, true
	}
	def, ok := s.materials[id]
	if !ok {
		return ifc.Nil, false
	}
	colour := s.File.ColourRgb(def.Name, def.R, def.G, def.B)
	style := s.File.SurfaceStyle(def.Name, colour, def.Transparency)
	s.styleCache[id] = style
	return style, true
}
