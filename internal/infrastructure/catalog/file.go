package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
)

// Document is the on-disk catalog: the catalog spec plus an optional
// interview question bank.
type Document struct {
	skillgap.CatalogSpec `yaml:",inline"`
	QuestionBank         []interview.Topic `json:"question_bank,omitempty" yaml:"question_bank,omitempty"`
}

func ParseDocument(raw []byte) (Document, error) {
	if err := ValidateDocument(raw); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode catalog document: %w", err)
	}
	return doc, nil
}

func ReadFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read catalog file: %w", err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func MarshalDocument(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
