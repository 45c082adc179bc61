package catalog

import (
	"strconv"
	"strings"
)

// ExtractField returns the human-readable value of a custom field, resolving
// drop_down selections through the field's option table. It reports false for
// absent, unset, or malformed data; missing data never produces an error.
func ExtractField(task *Task, fieldID string) (string, bool) {
	if task == nil || fieldID == "" {
		return "", false
	}

	for _, field := range task.CustomFields {
		if field.ID != fieldID {
			continue
		}
		if field.Value == nil {
			return "", false
		}

		if field.Type == "drop_down" {
			return resolveDropDown(field)
		}

		switch v := field.Value.(type) {
		case string:
			return strings.TrimSpace(v), true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(v), true
		case []interface{}:
			return joinListValue(v)
		}
		return "", false
	}
	return "", false
}

// RawFieldValue returns a custom field's value exactly as the API delivered
// it, for copying attributes verbatim onto a new record. Nil when absent.
func RawFieldValue(task *Task, fieldID string) interface{} {
	if task == nil || fieldID == "" {
		return nil
	}
	for _, field := range task.CustomFields {
		if field.ID == fieldID {
			return field.Value
		}
	}
	return nil
}

// resolveDropDown maps a drop_down value (option id string or orderindex
// number) to the matching option's display name.
func resolveDropDown(field CustomField) (string, bool) {
	if field.TypeConfig == nil {
		return "", false
	}
	options := field.TypeConfig.Options

	switch v := field.Value.(type) {
	case string:
		for _, opt := range options {
			if opt.ID == v {
				return opt.Name, true
			}
		}
		// some lists store the orderindex as a string
		if idx, err := strconv.Atoi(v); err == nil {
			return resolveByOrderIndex(options, idx)
		}
	case float64:
		return resolveByOrderIndex(options, int(v))
	}
	return "", false
}

func resolveByOrderIndex(options []FieldOption, idx int) (string, bool) {
	for _, opt := range options {
		if opt.OrderIndex == idx {
			return opt.Name, true
		}
	}
	return "", false
}

func joinListValue(list []interface{}) (string, bool) {
	var parts []string
	for _, item := range list {
		switch it := item.(type) {
		case string:
			parts = append(parts, strings.TrimSpace(it))
		case map[string]interface{}:
			name, ok := it["name"].(string)
			if !ok {
				return "", false
			}
			parts = append(parts, name)
		default:
			return "", false
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}
