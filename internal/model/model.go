// Package model defines the parliamentary record types returned by the
// upstream data source, together with the fixed CSV column schema for
// each kind. A record is "current" when its end-date field is absent,
// null, or an empty string; the definition is uniform across all kinds.
package model

func dateEmpty(d *string) bool {
	return d == nil || *d == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
