// Package validation checks compiled quiz documents against the embedded
// JSON schema before consolidation merges them.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrPayloadMalformed = errors.New("payload is not valid JSON")
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const documentSchemaName = "schemas/quiz_document.schema.json"

// Problem is one schema violation. Pointer is the JSON pointer of the
// offending value, empty for the document root.
type Problem struct {
	Pointer string
	Reason  string
}

func (p Problem) String() string {
	pointer := "#" + strings.TrimPrefix(strings.TrimSpace(p.Pointer), "#")
	if p.Reason == "" {
		return pointer
	}
	return pointer + ": " + p.Reason
}

// DocumentError lists every violation found in one document.
type DocumentError struct {
	Problems []Problem
	cause    error
}

func (e *DocumentError) Error() string {
	if len(e.Problems) == 0 {
		if e.cause != nil {
			return e.cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return strings.Join(lines, "; ")
}

func (e *DocumentError) Unwrap() error { return ErrSchemaValidation }

// Problems returns the violations carried by err. Errors that did not come
// from schema validation are reported as a single root problem.
func Problems(err error) []Problem {
	if err == nil {
		return nil
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return docErr.Problems
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) {
		return leafProblems(schemaErr)
	}
	return []Problem{{Reason: err.Error()}}
}

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := schemaFiles.ReadFile(documentSchemaName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(documentSchemaName, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	schema, err := compiler.Compile(documentSchemaName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return schema, nil
})

// DocumentSchema returns the compiled single-locale document schema.
func DocumentSchema() (*jsonschema.Schema, error) {
	return documentSchema()
}

// ValidateDocument checks that data has the shape of a compiled
// single-locale quiz document.
func ValidateDocument(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}

	var payload any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadMalformed, err)
	}

	if err := schema.Validate(payload); err != nil {
		return &DocumentError{Problems: Problems(err), cause: err}
	}
	return nil
}

// leafProblems flattens the cause tree, keeping only the leaves, ordered
// by pointer.
func leafProblems(root *jsonschema.ValidationError) []Problem {
	var out []Problem
	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		node := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if node == nil {
			continue
		}
		if len(node.Causes) == 0 {
			out = append(out, Problem{
				Pointer: strings.TrimSpace(node.InstanceLocation),
				Reason:  strings.TrimSpace(node.Message),
			})
			continue
		}
		pending = append(pending, node.Causes...)
	}
	slices.SortStableFunc(out, func(a, b Problem) int {
		return strings.Compare(a.Pointer, b.Pointer)
	})
	return out
}
