// Package jsonschema valida los cierres importados en JSON contra el schema embebido.
package jsonschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
)

//go:embed closure.schema.json
var closureSchema []byte

var _ appclosure.SchemaValidator = (*Validator)(nil)

// Validator implementa closure.SchemaValidator. El schema se compila una sola vez.
type Validator struct {
	schema *jsonschema.Schema
}

// New compila el schema embebido.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("closure.schema.json", bytes.NewReader(closureSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("closure.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateClosure valida el JSON crudo.
func (v *Validator) ValidateClosure(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
