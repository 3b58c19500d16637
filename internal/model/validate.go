package model

import (
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"

	"resume-builder/internal/domain"
)

//go:embed resume.schema.json
var resumeSchema string

// ValidateDocument validates a document against the embedded resume schema.
// Called before every store write, so a malformed merge never reaches the
// database.
func ValidateDocument(doc *domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewStringLoader(resumeSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
