package history

import (
	"testing"
)

var fields = []string{"swName", "owner", "status", "vvProcLoc"}

func TestDiff_Create(t *testing.T) {
	newDoc := map[string]interface{}{
		"swName": "Beast",
		"owner":  "Jane Doe",
		"status": "DEVEL",
	}

	changes := Diff(nil, newDoc, fields)

	if len(changes) != 3 {
		t.Fatalf("Expected 3 changes, got %d: %v", len(changes), changes)
	}

	// Changes are reported in declared field order
	if changes[0].Name != "swName" || changes[1].Name != "owner" || changes[2].Name != "status" {
		t.Errorf("Unexpected change order: %v", changes)
	}

	for _, c := range changes {
		if c.Previous != nil {
			t.Errorf("Expected no previous value on create, got %v for %s", c.Previous, c.Name)
		}
	}
}

func TestDiff_SingleFieldChange(t *testing.T) {
	oldDoc := map[string]interface{}{
		"swName": "Beast",
		"owner":  "Jane Doe",
		"status": "DEVEL",
	}
	newDoc := map[string]interface{}{
		"swName": "Beast",
		"owner":  "John Doe",
		"status": "DEVEL",
	}

	changes := Diff(oldDoc, newDoc, fields)

	if len(changes) != 1 {
		t.Fatalf("Expected exactly 1 change, got %d: %v", len(changes), changes)
	}
	if changes[0].Name != "owner" {
		t.Errorf("Expected change for owner, got %s", changes[0].Name)
	}
	if changes[0].Value != "John Doe" {
		t.Errorf("Expected new value John Doe, got %v", changes[0].Value)
	}
	if changes[0].Previous != "Jane Doe" {
		t.Errorf("Expected previous value Jane Doe, got %v", changes[0].Previous)
	}
}

func TestDiff_NoChange(t *testing.T) {
	doc := map[string]interface{}{
		"swName": "Beast",
		"owner":  "Jane Doe",
	}

	changes := Diff(doc, doc, fields)
	if len(changes) != 0 {
		t.Errorf("Expected empty change set, got %v", changes)
	}
}

func TestDiff_ArraysComparedAsWholeValues(t *testing.T) {
	oldDoc := map[string]interface{}{
		"vvProcLoc": []interface{}{"https://docs.example.org/a"},
	}
	same := map[string]interface{}{
		"vvProcLoc": []interface{}{"https://docs.example.org/a"},
	}
	reordered := map[string]interface{}{
		"vvProcLoc": []interface{}{"https://docs.example.org/b", "https://docs.example.org/a"},
	}

	if changes := Diff(oldDoc, same, fields); len(changes) != 0 {
		t.Errorf("Expected equal arrays to produce no change, got %v", changes)
	}

	changes := Diff(oldDoc, reordered, fields)
	if len(changes) != 1 || changes[0].Name != "vvProcLoc" {
		t.Errorf("Expected one change for vvProcLoc, got %v", changes)
	}
}

func TestDiff_NilToValue(t *testing.T) {
	oldDoc := map[string]interface{}{"owner": nil}
	newDoc := map[string]interface{}{"owner": "Jane Doe"}

	changes := Diff(oldDoc, newDoc, fields)
	if len(changes) != 1 || changes[0].Name != "owner" {
		t.Fatalf("Expected one change for owner, got %v", changes)
	}
	if changes[0].Previous != nil {
		t.Errorf("Expected nil previous, got %v", changes[0].Previous)
	}
}

func TestDiff_FieldAbsentFromNewIsSkipped(t *testing.T) {
	oldDoc := map[string]interface{}{"owner": "Jane Doe"}
	newDoc := map[string]interface{}{"swName": "Beast"}

	changes := Diff(oldDoc, newDoc, fields)
	if len(changes) != 1 || changes[0].Name != "swName" {
		t.Errorf("Expected only the swName change, got %v", changes)
	}
}
