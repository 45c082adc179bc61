package catalog

import "testing"

func dropDownTask(value interface{}) *Task {
	return &Task{
		ID:   "t1",
		Name: "Blade",
		CustomFields: []CustomField{
			{
				ID:    "field-ws",
				Type:  "drop_down",
				Value: value,
				TypeConfig: &TypeConfig{
					Options: []FieldOption{
						{ID: "opt-a", Name: "Woodshop", OrderIndex: 0},
						{ID: "opt-b", Name: "Lasers", OrderIndex: 1},
					},
				},
			},
		},
	}
}

func TestExtractField_DropDownByOrderIndex(t *testing.T) {
	// JSON numbers decode as float64
	got, ok := ExtractField(dropDownTask(float64(1)), "field-ws")
	if !ok || got != "Lasers" {
		t.Fatalf("expected Lasers/true, got %q/%v", got, ok)
	}
}

func TestExtractField_DropDownByOptionID(t *testing.T) {
	got, ok := ExtractField(dropDownTask("opt-a"), "field-ws")
	if !ok || got != "Woodshop" {
		t.Fatalf("expected Woodshop/true, got %q/%v", got, ok)
	}
}

func TestExtractField_DropDownStringIndex(t *testing.T) {
	// some lists store the orderindex as a string
	got, ok := ExtractField(dropDownTask("0"), "field-ws")
	if !ok || got != "Woodshop" {
		t.Fatalf("expected Woodshop/true, got %q/%v", got, ok)
	}
}

func TestExtractField_NoMatchingOption(t *testing.T) {
	if got, ok := ExtractField(dropDownTask(float64(9)), "field-ws"); ok {
		t.Fatalf("expected no value for unmatched index, got %q", got)
	}
}

func TestExtractField_MissingOrNil(t *testing.T) {
	task := &Task{
		ID: "t1",
		CustomFields: []CustomField{
			{ID: "field-empty", Type: "drop_down", Value: nil},
		},
	}
	if _, ok := ExtractField(task, "field-empty"); ok {
		t.Fatal("expected false for nil value")
	}
	if _, ok := ExtractField(task, "field-absent"); ok {
		t.Fatal("expected false for absent field")
	}
	if _, ok := ExtractField(nil, "field-ws"); ok {
		t.Fatal("expected false for nil task")
	}
}

func TestExtractField_PlainValues(t *testing.T) {
	task := &Task{
		ID: "t1",
		CustomFields: []CustomField{
			{ID: "f-str", Value: "  https://supplier.example  "},
			{ID: "f-num", Value: float64(42)},
			{ID: "f-bool", Value: true},
			{ID: "f-rel", Value: []interface{}{
				map[string]interface{}{"name": "Consumables"},
				map[string]interface{}{"name": "Safety"},
			}},
		},
	}

	if got, _ := ExtractField(task, "f-str"); got != "https://supplier.example" {
		t.Fatalf("string value not trimmed: %q", got)
	}
	if got, _ := ExtractField(task, "f-num"); got != "42" {
		t.Fatalf("number value mismatch: %q", got)
	}
	if got, _ := ExtractField(task, "f-bool"); got != "true" {
		t.Fatalf("bool value mismatch: %q", got)
	}
	if got, _ := ExtractField(task, "f-rel"); got != "Consumables, Safety" {
		t.Fatalf("relation value mismatch: %q", got)
	}
}

func TestRawFieldValue(t *testing.T) {
	task := dropDownTask(float64(1))
	if got := RawFieldValue(task, "field-ws"); got != float64(1) {
		t.Fatalf("expected raw value 1, got %v", got)
	}
	if got := RawFieldValue(task, "absent"); got != nil {
		t.Fatalf("expected nil for absent field, got %v", got)
	}
}
