// Package ifc is the entity-instance sink: it allocates immutable IFC
// entity instances, links them by handle and serializes the result as an
// ISO 10303-21 (STEP physical file) document. Entity names and attribute
// order follow the IFC4 schema and must not be rearranged.
package ifc

// Handle references an entity instance inside a File. The zero handle is
// never allocated and encodes as the STEP null token.
type Handle int

// Nil is the absent-handle value, serialized as "$"
const Nil Handle = 0

// enum is an IFC enumeration literal, serialized as .VALUE.
type enum string

// derived marks an attribute value overridden by a subtype, serialized as "*"
type derived struct{}

type entity struct {
	typ   string
	attrs []any
}

// File is an append-only store of IFC entity instances plus the STEP header
// fields needed for serialization.
type File struct {
	Name         string
	Author       string
	Organization string
	entities     []entity
}

// NewFile creates an empty IFC file
func NewFile(name string) *File {
	return &File{Name: name}
}

// add allocates the next entity instance. Attribute values may be Handle,
// string, float64, int, bool, enum, derived, nil or nested []any lists.
func (f *File) add(typ string, attrs ...any) Handle {
	f.entities = append(f.entities, entity{typ: typ, attrs: attrs})
	return Handle(len(f.entities))
}

// Count returns the number of allocated entities
func (f *File) Count() int {
	return len(f.entities)
}

// Mark captures the current end of the entity store. Rolling back to a mark
// discards everything allocated after it, which keeps a failed body-export
// attempt from leaving fragments behind. Safe because construction only
// ever references backwards: no surviving entity can point at a discarded
// one.
type Mark int

// Mark returns a rollback point at the current store size
func (f *File) Mark() Mark {
	return Mark(len(f.entities))
}

// Rollback discards all entities allocated after the mark
func (f *File) Rollback(m Mark) {
	f.entities = f.entities[:m]
}

// handles converts a Handle slice into a generic attribute list
func handles(hs []Handle) []any {
	list := make([]any, len(hs))
	for i, h := range hs {
		list[i] = h
	}
	return list
}
