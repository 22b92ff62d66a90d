package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation of a catalog document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog schema validation failed:")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateDocument checks a YAML (or JSON) catalog document against the
// embedded schema.
func ValidateDocument(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse catalog document: %w", err)
	}
	if doc == nil {
		return &SchemaError{Errors: []FieldError{{Field: "(root)", Message: "document is empty"}}}
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert catalog document: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(b),
	)
	if err != nil {
		return fmt.Errorf("load catalog schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	se := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		se.Errors = append(se.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return se
}
