package history

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/adaptive/internal/adaptive"
)

//go:embed attempts.schema.json
var schemaJSON []byte

const schemaURL = "schema://adaptive/attempts.json"

var compiled = sync.OnceValues(compileSchema)

// Document is an attempt history plus optional context. The JSON form is
// either a bare array of attempts or an object with an "attempts" key.
type Document struct {
	ChildID  string             `json:"child_id,omitempty"`
	Subject  string             `json:"subject,omitempty"`
	Attempts []adaptive.Attempt `json:"attempts"`
}

// InvalidError indicates input that does not match the history schema.
type InvalidError struct {
	Err error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid attempt history: %v", e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

// Read parses and validates a history document from r.
func Read(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<20))
	if err != nil {
		return Document{}, fmt.Errorf("read history: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw against the history schema and decodes it.
func Parse(raw []byte) (Document, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Document{}, &InvalidError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiled()
	if err != nil {
		return Document{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Document{}, &InvalidError{Err: err}
	}

	var doc Document
	if _, isArray := parsed.([]any); isArray {
		err = json.Unmarshal(raw, &doc.Attempts)
	} else {
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return Document{}, &InvalidError{Err: err}
	}
	return doc, nil
}

// IsInvalid reports whether err came from schema or JSON validation.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}

func compileSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse history schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add history schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile history schema: %w", err)
	}
	return s, nil
}
