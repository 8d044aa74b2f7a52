package domain

import (
	"encoding/json"
	"sort"
)

// PermissionSet is a set of flat permission identifiers (e.g. "view_reports").
// Using a real set type makes the intersection applied during tenant
// suspension explicit and testable, instead of ad-hoc membership checks over
// a list.
type PermissionSet map[string]struct{}

// NewPermissionSet creates a PermissionSet from the given identifiers.
func NewPermissionSet(permissions ...string) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether the set grants the given permission.
// The reserved wildcard PermissionAll grants every permission.
func (s PermissionSet) Contains(permission string) bool {
	if _, ok := s[PermissionAll]; ok {
		return true
	}
	_, ok := s[permission]
	return ok
}

// Intersect returns the permissions present in both sets. The wildcard is not
// expanded here: "all" survives an intersection only if both sets carry it.
func (s PermissionSet) Intersect(other PermissionSet) PermissionSet {
	result := make(PermissionSet)
	for p := range s {
		if _, ok := other[p]; ok {
			result[p] = struct{}{}
		}
	}
	return result
}

// Union returns the permissions present in either set.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	result := make(PermissionSet, len(s)+len(other))
	for p := range s {
		result[p] = struct{}{}
	}
	for p := range other {
		result[p] = struct{}{}
	}
	return result
}

// Equal reports whether both sets contain exactly the same permissions.
func (s PermissionSet) Equal(other PermissionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if _, ok := other[p]; !ok {
			return false
		}
	}
	return true
}

// List returns the permissions as a sorted slice for deterministic
// serialization and display.
func (s PermissionSet) List() []string {
	list := make([]string, 0, len(s))
	for p := range s {
		list = append(list, p)
	}
	sort.Strings(list)
	return list
}

// MarshalJSON serializes the set as a sorted JSON array.
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON deserializes a JSON array into the set.
func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewPermissionSet(list...)
	return nil
}
