package history

import "reflect"

// Change records one top-level field transition within a single write
type Change struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Previous interface{} `json:"previous,omitempty"`
}

// Diff compares two flat field snapshots and returns a change for every
// top-level field whose value differs, in the iteration order of newDoc's
// declared fields. Arrays and nested objects are compared as whole values,
// matching the shallow-merge write semantics. For a create, oldDoc is nil.
func Diff(oldDoc map[string]interface{}, newDoc map[string]interface{}, fields []string) []Change {
	var changes []Change
	for _, name := range fields {
		newVal, inNew := newDoc[name]
		if !inNew {
			continue
		}
		oldVal, inOld := oldDoc[name]
		if inOld && equal(oldVal, newVal) {
			continue
		}
		change := Change{Name: name, Value: newVal}
		if inOld {
			change.Previous = oldVal
		}
		changes = append(changes, change)
	}
	return changes
}

func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
