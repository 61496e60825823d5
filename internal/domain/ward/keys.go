package ward

import (
	"fmt"
	"strings"
)

// DeriveFieldKey builds a storage key from a field label: lowercase, Latin
// letters, digits and Thai characters kept, everything else collapsed to a
// single underscore. A label with no usable characters gets a positional
// fallback key.
func DeriveFieldKey(label string, position int) string {
	lower := strings.ToLower(label)
	var b strings.Builder
	pendingSep := false
	for _, r := range lower {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || (r >= 'ก' && r <= '๙')
		if keep {
			if pendingSep && b.Len() > 0 {
				b.WriteRune('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	key := b.String()
	if key == "" {
		return fmt.Sprintf("field_%d", position)
	}
	return key
}

// Normalize fills in missing field keys from labels and disambiguates
// derived keys that collide by appending a numeric suffix. Explicitly set
// keys are never rewritten.
func (fc *FieldsConfig) Normalize() {
	if fc == nil {
		return
	}
	used := make(map[string]bool)
	for _, g := range fc.Groups {
		for _, f := range g.Fields {
			if f.Key != "" {
				used[f.Key] = true
			}
		}
	}

	pos := 0
	for gi := range fc.Groups {
		for fi := range fc.Groups[gi].Fields {
			f := &fc.Groups[gi].Fields[fi]
			if f.Key != "" {
				pos++
				continue
			}
			key := DeriveFieldKey(f.Label, pos)
			if used[key] {
				for n := 2; ; n++ {
					candidate := fmt.Sprintf("%s_%d", key, n)
					if !used[candidate] {
						key = candidate
						break
					}
				}
			}
			f.Key = key
			used[key] = true
			pos++
		}
	}
}

// Validate rejects configs whose keys still collide after normalization,
// which can only happen when two fields carry the same explicit key.
func (fc *FieldsConfig) Validate() error {
	if fc == nil {
		return nil
	}
	seen := make(map[string]string)
	for _, g := range fc.Groups {
		for _, f := range g.Fields {
			if f.Key == "" {
				return fmt.Errorf("field %q has no key", f.Label)
			}
			if other, dup := seen[f.Key]; dup {
				return fmt.Errorf("duplicate field key %q (labels %q and %q)", f.Key, other, f.Label)
			}
			seen[f.Key] = f.Label
		}
	}
	return nil
}
