// Package router resolves incoming tag scans to the reminders they complete.
package router

import (
	"github.com/ferrylab/tagmind/internal/model"
	"github.com/ferrylab/tagmind/internal/registry"
)

// Route determines which reminders a scanned tag completes, returning their
// normalized names.
//
// Groups take precedence: a tag identifier configured as a group key resolves
// through the group's fan-out list only, never additionally through a direct
// binding for the same tag. Group members that do not name a configured
// reminder are silently dropped. With no group match, a direct tag binding
// resolves to that single reminder. An unrecognized tag resolves to nothing;
// that is a no-op, not an error.
func Route(tagID string, reg *registry.Registry) []string {
	if members, ok := reg.Group(tagID); ok {
		var names []string
		seen := make(map[string]bool)
		for _, member := range members {
			key := model.NormalizeName(member)
			if seen[key] {
				continue
			}
			if _, configured := reg.ByKey(key); !configured {
				continue
			}
			seen[key] = true
			names = append(names, key)
		}
		return names
	}

	if rem, ok := reg.ByTag(tagID); ok {
		return []string{rem.Key()}
	}

	return nil
}
