package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

//go:embed command.schema.json
var commandSchemaJSON string

const commandSchemaURL = "https://shared-garden.local/schemas/command.schema.json"

// compileCommandSchema compiles the embedded command schema.
func compileCommandSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(commandSchemaURL, strings.NewReader(commandSchemaJSON)); err != nil {
		return nil, fmt.Errorf("httpapi: cannot load command schema: %w", err)
	}
	s, err := c.Compile(commandSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("httpapi: cannot compile command schema: %w", err)
	}
	return s, nil
}

// parseCommand validates raw against the schema and decodes it.
func parseCommand(schema *jsonschema.Schema, raw []byte) (garden.Command, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return garden.Command{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return garden.Command{}, err
	}
	var cmd garden.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return garden.Command{}, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}
