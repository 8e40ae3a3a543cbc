// Command actionschema writes a JSON schema for the room protocol's action
// union, for non-Go clients that want to validate wire messages.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	server "tilerooms/server"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

// actionVariants lists every concrete action, in protocol order.
var actionVariants = []struct {
	name  string
	value any
}{
	{server.TypeWelcome, server.WelcomeAction{}},
	{server.TypeUpdateRoom, server.UpdateRoomAction{}},
	{server.TypePlaceTile, server.PlaceTileAction{}},
	{server.TypeUse, server.UseAction{}},
	{server.TypeUpdateBlueprint, server.UpdateBlueprintAction{}},
	{server.TypeMoveMember, server.MoveMemberAction{}},
	{server.TypeFailed, server.FailedAction{}},
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	variants := make([]*jsonschema.Schema, 0, len(actionVariants))
	for _, variant := range actionVariants {
		variantSchema := reflector.ReflectFromType(reflect.TypeOf(variant.value))
		variantSchema.Version = ""
		variantSchema.Title = variant.name
		if property, ok := variantSchema.Properties.Get("type"); ok {
			if typeSchema, ok := property.(*jsonschema.Schema); ok {
				typeSchema.Enum = []any{variant.name}
			}
		}
		variants = append(variants, variantSchema)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Room Action",
		Description: "Protocol messages exchanged over a room's websocket channel, discriminated by the type field.",
		OneOf:       variants,
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
