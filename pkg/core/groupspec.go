// Package core provides the fixed-shape data model shared by every stage of
// the SPORES engine: the technology group specification, capacity and weight
// snapshots laid out over it, and deployment-history aggregation.
package core

import (
	"fmt"
	"sort"
)

// Key identifies one tracked capacity leaf: a component kind (e.g.
// "Generator"), the sizing attribute optimized for that kind (e.g. "p_nom"),
// and a technology identifier (e.g. "solar").
type Key struct {
	Kind       string
	Attribute  string
	Technology string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Kind, k.Attribute, k.Technology)
}

// Group is one (kind, attribute) variable group and the technologies tracked
// under it.
type Group struct {
	Kind         string
	Attribute    string
	Technologies []string
}

// GroupSpec is the fixed shape every snapshot and weight structure mirrors.
// The key order is computed once at construction (kinds, attributes, and
// technologies each sorted) and never changes, so all per-leaf operations
// reduce to index arithmetic over flat value arrays.
type GroupSpec struct {
	keys   []Key
	groups []Group
	index  map[Key]int
}

// NewGroupSpec builds a GroupSpec from the nested configuration document
// {kind: {attribute: [technology, ...]}}. An empty document is valid; a
// technology repeated within one (kind, attribute) group is not.
func NewGroupSpec(techs map[string]map[string][]string) (*GroupSpec, error) {
	s := &GroupSpec{index: make(map[Key]int)}

	kinds := make([]string, 0, len(techs))
	for kind := range techs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		attrs := make([]string, 0, len(techs[kind]))
		for attr := range techs[kind] {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)

		for _, attr := range attrs {
			group := Group{Kind: kind, Attribute: attr}
			sorted := append([]string(nil), techs[kind][attr]...)
			sort.Strings(sorted)
			for _, tech := range sorted {
				key := Key{Kind: kind, Attribute: attr, Technology: tech}
				if _, dup := s.index[key]; dup {
					return nil, fmt.Errorf("duplicate technology %q under %s/%s", tech, kind, attr)
				}
				s.index[key] = len(s.keys)
				s.keys = append(s.keys, key)
				group.Technologies = append(group.Technologies, tech)
			}
			s.groups = append(s.groups, group)
		}
	}
	return s, nil
}

// Len returns the number of leaves.
func (s *GroupSpec) Len() int { return len(s.keys) }

// Keys returns the ordered leaf keys. The returned slice is shared and must
// not be modified.
func (s *GroupSpec) Keys() []Key { return s.keys }

// Groups returns the ordered (kind, attribute) groups. The returned slice is
// shared and must not be modified.
func (s *GroupSpec) Groups() []Group { return s.groups }

// Index returns the position of key in the fixed leaf order.
func (s *GroupSpec) Index(key Key) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}
