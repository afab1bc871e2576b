// Package fieldmap copies named fields between two record
// representations in a single pass, dispatching each field to a
// mandatory or optional handler.
package fieldmap

import (
	"fmt"
	"sort"
)

// Record is one table row keyed by field name.
type Record = map[string]any

// Params carries caller-supplied parameters through to the field
// handlers, unchanged. May be nil.
type Params = map[string]any

// Descriptor names one field to copy. An empty Target means the field
// keeps its source name.
type Descriptor struct {
	Source string
	Target string
}

// TargetName returns the destination field name.
func (d Descriptor) TargetName() string {
	if d.Target != "" {
		return d.Target
	}
	return d.Source
}

// Spec maps each field descriptor to whether the field is mandatory.
type Spec map[Descriptor]bool

// FieldFunc handles one field of a mapping pass.
type FieldFunc func(d Descriptor, src, dst Record, params Params) error

// Mapper copies fields between records. Mandatory handles fields that
// must be present in the source; Optional handles fields that may be
// absent.
type Mapper struct {
	Mandatory FieldFunc
	Optional  FieldFunc
}

// New returns a Mapper with the default handlers: MandatoryField and
// OptionalField.
func New() *Mapper {
	return &Mapper{
		Mandatory: MandatoryField,
		Optional:  OptionalField,
	}
}

// MapAll copies every field of spec from src into dst, dispatching
// each field to the mandatory or optional handler. It stops at the
// first handler error. dst must be non-nil; src fields not named in
// spec are ignored.
func (m *Mapper) MapAll(src, dst Record, spec Spec, params Params) error {
	for _, d := range sortedDescriptors(spec) {
		handler := m.Optional
		if spec[d] {
			handler = m.Mandatory
		}
		if err := handler(d, src, dst, params); err != nil {
			return fmt.Errorf("field %s: %w", d.Source, err)
		}
	}
	return nil
}

// MandatoryField copies d from src to dst, failing with a
// MissingFieldError when the source field is absent.
func MandatoryField(d Descriptor, src, dst Record, _ Params) error {
	v, ok := src[d.Source]
	if !ok {
		return &MissingFieldError{Field: d.Source}
	}
	dst[d.TargetName()] = v
	return nil
}

// OptionalField copies d from src to dst, silently skipping absent
// source fields.
func OptionalField(d Descriptor, src, dst Record, _ Params) error {
	if v, ok := src[d.Source]; ok {
		dst[d.TargetName()] = v
	}
	return nil
}

// sortedDescriptors orders spec's keys by source then target name so a
// mapping pass is deterministic.
func sortedDescriptors(spec Spec) []Descriptor {
	ds := make([]Descriptor, 0, len(spec))
	for d := range spec {
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Source != ds[j].Source {
			return ds[i].Source < ds[j].Source
		}
		return ds[i].Target < ds[j].Target
	})
	return ds
}

// Clone returns a shallow copy of r.
func Clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// MissingFieldError reports a mandatory field absent from the source
// record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mandatory field %q missing from source", e.Field)
}
