package snapshot

import (
	"maps"
	"slices"
)

// Version is one snapshot of the content library collection.
type Version struct {
	// ID identifies the version (e.g. "2024-06").
	ID string `json:"id" yaml:"id" validate:"required"`

	Libraries  map[string]*Library   `json:"libraries" yaml:"libraries" validate:"dive,required"`
	Threats    map[string]*Threat    `json:"threats,omitempty" yaml:"threats,omitempty" validate:"dive,required"`
	Weaknesses map[string]*Weakness  `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty" validate:"dive,required"`
	Controls   map[string]*Control   `json:"controls,omitempty" yaml:"controls,omitempty" validate:"dive,required"`
	UseCases   map[string]*UseCase   `json:"usecases,omitempty" yaml:"usecases,omitempty" validate:"dive,required"`
	References map[string]*Reference `json:"references,omitempty" yaml:"references,omitempty" validate:"dive,required"`
	Categories map[string]*Category  `json:"categories,omitempty" yaml:"categories,omitempty" validate:"dive,required"`
}

// NewVersion returns an empty Version with all tables initialized.
func NewVersion(id string) *Version {
	return &Version{
		ID:         id,
		Libraries:  make(map[string]*Library),
		Threats:    make(map[string]*Threat),
		Weaknesses: make(map[string]*Weakness),
		Controls:   make(map[string]*Control),
		UseCases:   make(map[string]*UseCase),
		References: make(map[string]*Reference),
		Categories: make(map[string]*Category),
	}
}

// Library returns the library with the given ref, or nil.
func (v *Version) Library(ref string) *Library {
	if v == nil {
		return nil
	}
	return v.Libraries[ref]
}

// LibraryRefs returns the refs of all libraries in sorted order.
func (v *Version) LibraryRefs() []string {
	return SortedKeys(v.Libraries)
}

// AddLibrary inserts or replaces a library keyed by its ref.
func (v *Version) AddLibrary(lib *Library) *Version {
	if v.Libraries == nil {
		v.Libraries = make(map[string]*Library)
	}
	v.Libraries[lib.Ref] = lib
	return v
}

// Normalize fills nil tables so lookups never have to nil-check the maps.
// Entities decoded from YAML or JSON keep their map key as ref when the ref
// field itself was omitted. Null entries are left in place for validation
// to reject.
func (v *Version) Normalize() *Version {
	if v.Libraries == nil {
		v.Libraries = make(map[string]*Library)
	}
	if v.Threats == nil {
		v.Threats = make(map[string]*Threat)
	}
	if v.Weaknesses == nil {
		v.Weaknesses = make(map[string]*Weakness)
	}
	if v.Controls == nil {
		v.Controls = make(map[string]*Control)
	}
	if v.UseCases == nil {
		v.UseCases = make(map[string]*UseCase)
	}
	if v.References == nil {
		v.References = make(map[string]*Reference)
	}
	if v.Categories == nil {
		v.Categories = make(map[string]*Category)
	}
	for k, lib := range v.Libraries {
		if lib == nil {
			continue
		}
		if lib.Ref == "" {
			lib.Ref = k
		}
		lib.normalize()
	}
	for k, t := range v.Threats {
		if t == nil {
			continue
		}
		if t.Ref == "" {
			t.Ref = k
		}
	}
	for k, w := range v.Weaknesses {
		if w == nil {
			continue
		}
		if w.Ref == "" {
			w.Ref = k
		}
	}
	for k, c := range v.Controls {
		if c == nil {
			continue
		}
		if c.Ref == "" {
			c.Ref = k
		}
	}
	for k, u := range v.UseCases {
		if u == nil {
			continue
		}
		if u.Ref == "" {
			u.Ref = k
		}
	}
	for k, r := range v.References {
		if r == nil {
			continue
		}
		if r.Ref == "" {
			r.Ref = k
		}
	}
	for k, c := range v.Categories {
		if c == nil {
			continue
		}
		if c.Ref == "" {
			c.Ref = k
		}
	}
	return v
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
