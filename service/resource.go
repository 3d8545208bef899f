package service

import (
	"fmt"
	"strings"
)

// Resource is one collection definition: its name and the fields every
// create or replace payload must carry. The required set is fixed at service
// definition time.
type Resource struct {
	Name     string
	Required []string
}

// Validate fails when any required field is missing or falsy (absent, null,
// empty string, zero or false). Merge payloads are never validated.
func (r *Resource) Validate(record map[string]any) error {

	for _, field := range r.Required {
		value, exists := record[field]
		if !exists || isFalsy(value) {
			return &ValidationError{
				Message: "must include " + strings.Join(r.Required, " and "),
			}
		}
	}

	return nil
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	}
	return false
}

// ParseResources reads definitions like "dogs:name,weight;hubs:name" into
// resource schemas. A resource without fields ("logs") requires nothing.
func ParseResources(definitions string) ([]*Resource, error) {

	result := []*Resource{}

	for _, definition := range strings.Split(definitions, ";") {
		definition = strings.TrimSpace(definition)
		if definition == "" {
			continue
		}

		name, fields, _ := strings.Cut(definition, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("resource definition '%s': empty name", definition)
		}

		r := &Resource{Name: name}
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			r.Required = append(r.Required, field)
		}

		result = append(result, r)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no resources defined")
	}

	return result, nil
}
